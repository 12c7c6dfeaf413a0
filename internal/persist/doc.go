// Package persist composes savers and loaders over composite, possibly
// partial datasets. Loads signal recoverable absence through a boolean flag
// instead of a raised error; everything else propagates. The triplet
// specialization captures the train/validation/test layout where the
// validation split may legitimately be missing.
package persist
