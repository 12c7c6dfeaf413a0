// Command framelab turns video recordings into frame datasets: it extracts
// frames with ffmpeg, derives per-frame measurement tables, merges external
// time series, and persists train/validation/test dataset splits.
package main
