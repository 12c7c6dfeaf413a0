// Package chunkpath maps flat frame index spaces onto bounded-fanout
// directory hierarchies and normalizes user-supplied filename templates.
//
// Large extractions produce hundreds of thousands of per-frame files.
// Sharding them into nested "<min>-<max>" bucket directories keeps every
// directory at a manageable size while the mapping from index to path stays
// a pure function.
package chunkpath
