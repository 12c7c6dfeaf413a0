// Package frametable defines the canonical per-video table aligning frame
// indices with elapsed time, category labels, and optional frame artifact
// paths, and merges externally recorded time series into it by
// interpolation. Elapsed time is float64 seconds throughout; it is never
// coerced to an integer-precision duration.
package frametable
