package chunkpath

import (
	"fmt"
	"path/filepath"
	"strconv"

	"framelab/internal/faults"
)

// Namer maps a frame index to a path, usually relative to an output root.
type Namer func(index int) string

// Map shards index into a nested bucket hierarchy derived from chunkSizes
// and returns the relative path ending in leafName(index).
//
// Bucket widths are the cumulative products of chunkSizes: the first size is
// the innermost bucket, each later size multiplies the width of the bucket
// outside it. Every bucket directory is named "<min>-<max>" after the index
// range it covers. Empty chunkSizes yields leafName(index) unchanged.
func Map(index int, chunkSizes []int, leafName Namer) (string, error) {
	widths, err := bucketWidths(chunkSizes)
	if err != nil {
		return "", err
	}
	if leafName == nil {
		return "", faults.Wrap(faults.ErrConfiguration, "chunkpath", "map", "leaf namer required", nil)
	}
	if index < 0 {
		return "", faults.Wrap(faults.ErrConfiguration, "chunkpath", "map", fmt.Sprintf("negative index %d", index), nil)
	}
	return shard(index, widths, leafName(index)), nil
}

// NewNamer validates chunkSizes once and returns a Namer that joins the
// sharded relative path under root. Use it when the same chunk layout is
// applied to many indices.
func NewNamer(root string, chunkSizes []int, leafName Namer) (Namer, error) {
	widths, err := bucketWidths(chunkSizes)
	if err != nil {
		return nil, err
	}
	if leafName == nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "chunkpath", "namer", "leaf namer required", nil)
	}
	return func(index int) string {
		return filepath.Join(root, shard(index, widths, leafName(index)))
	}, nil
}

func bucketWidths(chunkSizes []int) ([]int, error) {
	widths := make([]int, 0, len(chunkSizes))
	width := 1
	for _, size := range chunkSizes {
		if size < 1 {
			return nil, faults.Wrap(faults.ErrConfiguration, "chunkpath", "chunk sizes", fmt.Sprintf("invalid chunk size %d", size), nil)
		}
		width *= size
		widths = append(widths, width)
	}
	return widths, nil
}

func shard(index int, widths []int, leaf string) string {
	current := leaf
	for _, width := range widths {
		min := (index / width) * width
		max := min + width - 1
		current = filepath.Join(bucketName(min, max), current)
	}
	return current
}

func bucketName(min, max int) string {
	return strconv.Itoa(min) + "-" + strconv.Itoa(max)
}
