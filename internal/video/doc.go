// Package video models one experimental video recording: its artifact
// paths, its per-video metadata, the lifecycle of its decoding handle, and
// the derivation of the canonical frame table that downstream dataset
// construction consumes. A Record owns its VideoData and cached table
// exclusively; concurrent processing happens across records, not within
// one.
package video
