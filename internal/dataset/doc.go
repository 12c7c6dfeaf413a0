// Package dataset persists frame datasets: a canonical measurement table
// plus the frame artifacts its rows describe, laid out as a self-contained
// directory tree. Train/validation/test splits reuse the generic triplet
// persistence so a missing validation partition loads as an absent slot,
// not a failure.
package dataset
