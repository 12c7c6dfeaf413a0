package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"framelab/internal/chunkpath"
	"framelab/internal/faults"
	"framelab/internal/fileutil"
	"framelab/internal/frametable"
	"framelab/internal/persist"
	"framelab/internal/tablestore"
	"framelab/internal/video"
)

// Layout of a persisted dataset tree.
const (
	ImagesDir          = "images"
	DefaultTableName   = "table.csv"
	DefaultFrameSuffix = ".png"
)

// Frames couples the canonical measurement table with the frame artifacts
// its rows describe. FramePaths is row-aligned with Table.
type Frames struct {
	Table      *frametable.Table
	FramePaths []string
}

// Len reports the number of rows (and frames) in the dataset.
func (f *Frames) Len() int {
	if f == nil || f.Table == nil {
		return 0
	}
	return f.Table.Len()
}

// Options controls the on-disk layout of a persisted dataset.
type Options struct {
	// ChunkSizes shards images/ into nested index buckets. Empty means a
	// flat directory.
	ChunkSizes []int
	// FrameSuffix is the frame artifact extension, including the dot.
	FrameSuffix string
	// TableName is the table file name beneath the root. A .gz suffix
	// compresses the table.
	TableName string
	// Store persists the table. Defaults to the CSV store.
	Store video.TableStore
}

func (o Options) withDefaults() Options {
	if o.FrameSuffix == "" {
		o.FrameSuffix = DefaultFrameSuffix
	}
	if o.TableName == "" {
		o.TableName = DefaultTableName
	}
	if o.Store == nil {
		o.Store = tablestore.New()
	}
	return o
}

// Save writes the dataset beneath root: every frame artifact is copied into
// images/ under a canonical frame<i> name (sharded when chunk sizes are
// configured) and the table is written next to it.
func Save(ds *Frames, root string, opts Options) error {
	if ds == nil || ds.Table == nil {
		return faults.Wrap(faults.ErrConfiguration, "dataset", "save", "dataset with a table required", nil)
	}
	if ds.Table.Len() != len(ds.FramePaths) {
		return faults.Wrap(faults.ErrDataConsistency, "dataset", "save",
			fmt.Sprintf("table has %d rows but %d frame paths", ds.Table.Len(), len(ds.FramePaths)), nil)
	}
	opts = opts.withDefaults()

	imagesRoot := filepath.Join(root, ImagesDir)
	namer, err := chunkpath.NewNamer(imagesRoot, opts.ChunkSizes, func(index int) string {
		return "frame" + strconv.Itoa(index) + opts.FrameSuffix
	})
	if err != nil {
		return fmt.Errorf("build frame namer: %w", err)
	}
	if err := os.MkdirAll(imagesRoot, 0o755); err != nil {
		return fmt.Errorf("create images directory: %w", err)
	}

	for i, src := range ds.FramePaths {
		if err := fileutil.CopyFileVerified(src, namer(i)); err != nil {
			return fmt.Errorf("copy frame %d: %w", i, err)
		}
	}
	if err := opts.Store.Save(ds.Table, filepath.Join(root, opts.TableName)); err != nil {
		return fmt.Errorf("save table: %w", err)
	}
	return nil
}

// Load reconstructs a dataset persisted by Save. A missing root reports
// not-found so callers can treat absence as a recoverable state.
func Load(root string, opts Options) (*Frames, error) {
	opts = opts.withDefaults()
	if _, err := os.Stat(root); err != nil {
		if os.IsNotExist(err) {
			return nil, faults.Wrap(faults.ErrNotFound, "dataset", "load",
				fmt.Sprintf("no dataset at %s", root), err)
		}
		return nil, fmt.Errorf("stat dataset root: %w", err)
	}

	table, err := opts.Store.Load(filepath.Join(root, opts.TableName))
	if err != nil {
		return nil, fmt.Errorf("load table: %w", err)
	}
	frames, err := video.GlobFrames(filepath.Join(root, ImagesDir), opts.FrameSuffix)
	if err != nil {
		return nil, err
	}
	if table.Len() != len(frames) {
		return nil, faults.Wrap(faults.ErrDataConsistency, "dataset", "load",
			fmt.Sprintf("table has %d rows but %d frame files", table.Len(), len(frames)), nil)
	}
	return &Frames{Table: table, FramePaths: frames}, nil
}

// Saver adapts Save to the generic persistence contract.
func Saver(opts Options) persist.Saver[*Frames] {
	return func(ds *Frames, path string) error {
		return Save(ds, path, opts)
	}
}

// Loader adapts Load to the generic persistence contract.
func Loader(opts Options) persist.Loader[*Frames] {
	return func(path string) (*Frames, error) {
		return Load(path, opts)
	}
}

// TripletSaver persists a train/validation/test split under
// <root>/{train,val,test}.
func TripletSaver(opts Options) persist.Saver[persist.Triplet[*Frames]] {
	return persist.TripletSaver(Saver(opts))
}

// TripletLoader loads a split persisted by TripletSaver. Missing splits are
// reported through the flag, never as errors.
func TripletLoader(opts Options) persist.FlaggedLoader[persist.Triplet[*Frames]] {
	return persist.TripletLoader(persist.WithBoolFlag(Loader(opts)))
}
