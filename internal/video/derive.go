package video

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"framelab/internal/faults"
	"framelab/internal/frametable"
)

// FrameCounter reports how many frames a video contains. Implemented by the
// extractor collaborator; whether a fast codec-level query or a full decode
// is used is the implementation's concern.
type FrameCounter interface {
	Count(ctx context.Context, videoPath string) (int, error)
}

// TableStore persists canonical tables. Implemented by tablestore.
type TableStore interface {
	Save(table *frametable.Table, path string) error
	Load(path string) (*frametable.Table, error)
}

// DeriveOptions controls canonical table derivation.
type DeriveOptions struct {
	// Recalculate discards any cached table and recomputes.
	Recalculate bool
	// ExistLoad loads a previously persisted table from the record's table
	// path instead of recomputing, when one exists. Requires Store.
	ExistLoad bool
	// EnforceTime fails derivation when the time basis is incomplete
	// instead of omitting the elapsed-time column.
	EnforceTime bool
	// Store backs ExistLoad.
	Store TableStore
}

// DeriveTable builds (or returns the cached) canonical table for the
// record: one row per frame index, with name and category columns broadcast
// and elapsed time computed from the time basis as an exact affine
// relation, elapsed(i) = ref + (i - refIndex)/fps, in float64 seconds.
//
// The table is memoized on the record until VideoData is replaced or
// Recalculate is requested.
func (r *Record) DeriveTable(ctx context.Context, counter FrameCounter, opts DeriveOptions) (*frametable.Table, error) {
	r.mu.Lock()
	cached := r.cached
	data := r.data
	r.mu.Unlock()

	if !opts.Recalculate && cached != nil {
		return cached, nil
	}

	if opts.ExistLoad && r.tablePath != "" {
		if opts.Store == nil {
			return nil, faults.Wrap(faults.ErrConfiguration, "video", "derive", "exist-load requires a table store", nil)
		}
		table, err := opts.Store.Load(r.tablePath)
		switch {
		case err == nil:
			r.setCached(table)
			return table, nil
		case errors.Is(err, faults.ErrNotFound) || errors.Is(err, fs.ErrNotExist):
			// Not persisted yet; fall through to computation.
		default:
			return nil, err
		}
	}

	if data == nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "video", "derive", "video data must be set before deriving the table", nil)
	}
	if counter == nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "video", "derive", "frame counter required", nil)
	}

	count, err := counter.Count(ctx, r.videoPath)
	if err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, faults.Wrap(faults.ErrDataConsistency, "video", "derive", fmt.Sprintf("negative frame count %d", count), nil)
	}

	table := frametable.New()

	indices := make([]int, count)
	names := make([]string, count)
	for i := range indices {
		indices[i] = i
		names[i] = r.name
	}
	if err := table.AddInts(r.columns.Index, indices); err != nil {
		return nil, err
	}
	if err := table.AddStrings(r.columns.Name, names); err != nil {
		return nil, err
	}

	switch {
	case data.HasTimeBasis():
		elapsed := make([]float64, count)
		fps := *data.FPS
		refIndex := *data.RefIndex
		refElapsed := *data.RefElapsed
		for i := range elapsed {
			elapsed[i] = refElapsed + float64(i-refIndex)/fps
		}
		if err := table.AddFloats(r.columns.ElapsedTime, elapsed); err != nil {
			return nil, err
		}
	case opts.EnforceTime:
		return nil, faults.Wrap(faults.ErrConfiguration, "video", "derive",
			"missing time basis: fps, reference index and reference elapsed time are all required", nil)
	}

	categoryNames := make([]string, 0, len(data.Categories))
	for name := range data.Categories {
		categoryNames = append(categoryNames, name)
	}
	sort.Strings(categoryNames)
	for _, name := range categoryNames {
		values := make([]string, count)
		for i := range values {
			values[i] = data.Categories[name]
		}
		if err := table.AddStrings(name, values); err != nil {
			return nil, err
		}
	}

	if r.columns.Path != "" {
		paths, err := r.GlobFrames()
		if err != nil {
			return nil, err
		}
		if len(paths) != count {
			return nil, faults.Wrap(faults.ErrDataConsistency, "video", "derive",
				fmt.Sprintf("frame count %d and file count %d disagree", count, len(paths)), nil)
		}
		if err := table.AddStrings(r.columns.Path, paths); err != nil {
			return nil, err
		}
	}

	r.setCached(table)
	return table, nil
}

// SyncSeries merges an externally recorded time series into the canonical
// table by interpolation at each frame's elapsed time. The table is derived
// with time enforcement first when not already cached.
func (r *Record) SyncSeries(ctx context.Context, counter FrameCounter, src *frametable.Table, timeColumn string, opts frametable.MergeOptions) (*frametable.Table, error) {
	table, err := r.DeriveTable(ctx, counter, DeriveOptions{EnforceTime: true})
	if err != nil {
		return nil, err
	}
	if err := frametable.Merge(table, r.columns.ElapsedTime, src, timeColumn, opts); err != nil {
		return nil, err
	}
	r.setCached(table)
	return table, nil
}

// SaveTable persists the cached canonical table at the record's table path.
func (r *Record) SaveTable(store TableStore) error {
	r.mu.Lock()
	cached := r.cached
	r.mu.Unlock()
	if cached == nil {
		return faults.Wrap(faults.ErrConfiguration, "video", "save table", "no table derived", nil)
	}
	if r.tablePath == "" {
		return faults.Wrap(faults.ErrConfiguration, "video", "save table", "record has no table path", nil)
	}
	return store.Save(cached, r.tablePath)
}

// LoadTable loads the persisted canonical table into the cache.
func (r *Record) LoadTable(store TableStore) (*frametable.Table, error) {
	if r.tablePath == "" {
		return nil, faults.Wrap(faults.ErrConfiguration, "video", "load table", "record has no table path", nil)
	}
	table, err := store.Load(r.tablePath)
	if err != nil {
		return nil, err
	}
	r.setCached(table)
	return table, nil
}

// CachedTable returns the memoized table, or nil.
func (r *Record) CachedTable() *frametable.Table {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cached
}

// InvalidateTable drops the memoized table.
func (r *Record) InvalidateTable() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cached = nil
}

func (r *Record) setCached(table *frametable.Table) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cached = table
}

// GlobFrames walks the frames tree collecting artifacts with the record's
// frame suffix, sorted by filename stem with trailing frame numbers compared
// numerically. The walk covers the sharded layout as well as the flat one.
func (r *Record) GlobFrames() ([]string, error) {
	return GlobFrames(r.framesPath, r.frameSuffix)
}

// GlobFrames collects every file beneath root carrying suffix. A missing
// root yields an empty result, not an error.
func GlobFrames(root, suffix string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path == root {
				return nil
			}
			return err
		}
		if entry.IsDir() {
			return nil
		}
		if strings.HasSuffix(entry.Name(), suffix) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("glob frames: %w", err)
	}
	sort.Slice(paths, func(a, b int) bool {
		return lessFrameStem(stem(paths[a]), stem(paths[b]))
	})
	return paths, nil
}

// lessFrameStem orders "v_frame2" before "v_frame10": stems are compared by
// their non-numeric prefix first, then by the trailing number.
func lessFrameStem(a, b string) bool {
	prefixA, numberA, okA := splitTrailingNumber(a)
	prefixB, numberB, okB := splitTrailingNumber(b)
	if okA && okB && prefixA == prefixB {
		return numberA < numberB
	}
	return a < b
}

func splitTrailingNumber(s string) (string, int, bool) {
	end := len(s)
	start := end
	for start > 0 && s[start-1] >= '0' && s[start-1] <= '9' {
		start--
	}
	if start == end {
		return s, 0, false
	}
	number, err := strconv.Atoi(s[start:end])
	if err != nil {
		return s, 0, false
	}
	return s[:start], number, true
}
