package video

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"framelab/internal/chunkpath"
	"framelab/internal/faults"
	"framelab/internal/frametable"
)

// Options configures a Record. For each artifact family, exactly one of the
// directory and explicit-path forms may be set: a directory derives the
// path from the record name, an explicit path is used as-is. Frames are
// required; audio and table are optional and absent when neither form is
// given.
type Options struct {
	// Name overrides the record name. Defaults to the video filename stem.
	Name string

	FramesDir  string
	FramesPath string
	// FrameSuffix must start with a dot. Defaults to ".png".
	FrameSuffix string

	AudioDir  string
	AudioPath string
	// AudioSuffix must start with a dot. Defaults to ".m4a".
	AudioSuffix string

	TableDir  string
	TablePath string
	// TableSuffix must start with a dot. Defaults to ".csv".
	TableSuffix string

	// Columns fixes the canonical column naming. Zero value means
	// frametable.DefaultNames (no path column).
	Columns frametable.Names
}

// Record is one physical video recording and the sole owner of its
// VideoData and derived canonical table.
type Record struct {
	name        string
	videoPath   string
	framesPath  string
	frameSuffix string
	audioPath   string
	tablePath   string
	columns     frametable.Names

	mu     sync.Mutex
	data   *VideoData
	cached *frametable.Table
	handle Frames
}

// NewRecord validates the path wiring and constructs a Record.
func NewRecord(videoPath string, opts Options) (*Record, error) {
	if strings.TrimSpace(videoPath) == "" {
		return nil, faults.Wrap(faults.ErrConfiguration, "video", "new record", "video path required", nil)
	}

	name := opts.Name
	if name == "" {
		name = stem(videoPath)
	}

	frameSuffix, err := normalizeSuffix(opts.FrameSuffix, ".png", "frame suffix")
	if err != nil {
		return nil, err
	}
	audioSuffix, err := normalizeSuffix(opts.AudioSuffix, ".m4a", "audio suffix")
	if err != nil {
		return nil, err
	}
	tableSuffix, err := normalizeSuffix(opts.TableSuffix, ".csv", "table suffix")
	if err != nil {
		return nil, err
	}

	framesPath, err := resolveArtifact("frames", opts.FramesDir, opts.FramesPath, name, "", true)
	if err != nil {
		return nil, err
	}
	audioPath, err := resolveArtifact("audio", opts.AudioDir, opts.AudioPath, name, audioSuffix, false)
	if err != nil {
		return nil, err
	}
	tablePath, err := resolveArtifact("table", opts.TableDir, opts.TablePath, name, tableSuffix, false)
	if err != nil {
		return nil, err
	}

	columns := opts.Columns
	if columns == (frametable.Names{}) {
		columns = frametable.DefaultNames()
	}

	return &Record{
		name:        name,
		videoPath:   videoPath,
		framesPath:  framesPath,
		frameSuffix: frameSuffix,
		audioPath:   audioPath,
		tablePath:   tablePath,
		columns:     columns,
	}, nil
}

// resolveArtifact applies the exactly-one-of (dir, path) rule. Optional
// artifacts may leave both empty.
func resolveArtifact(what, dir, path, name, suffix string, required bool) (string, error) {
	hasDir := strings.TrimSpace(dir) != ""
	hasPath := strings.TrimSpace(path) != ""
	switch {
	case hasDir && hasPath:
		return "", faults.Wrap(faults.ErrConfiguration, "video", "new record",
			fmt.Sprintf("exactly one of %s dir and %s path may be given", what, what), nil)
	case hasPath:
		return path, nil
	case hasDir:
		return filepath.Join(dir, name+suffix), nil
	case required:
		return "", faults.Wrap(faults.ErrConfiguration, "video", "new record",
			fmt.Sprintf("one of %s dir and %s path is required", what, what), nil)
	default:
		return "", nil
	}
}

func normalizeSuffix(value, fallback, what string) (string, error) {
	if value == "" {
		return fallback, nil
	}
	if !strings.HasPrefix(value, ".") {
		return "", faults.Wrap(faults.ErrConfiguration, "video", "new record",
			fmt.Sprintf("%s %q must start with a dot", what, value), nil)
	}
	return value, nil
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Name returns the record name.
func (r *Record) Name() string { return r.name }

// VideoPath returns the path of the source recording.
func (r *Record) VideoPath() string { return r.videoPath }

// FramesPath returns the root directory for extracted frame artifacts.
func (r *Record) FramesPath() string { return r.framesPath }

// FrameSuffix returns the frame artifact extension, including the dot.
func (r *Record) FrameSuffix() string { return r.frameSuffix }

// AudioPath returns the audio artifact path, or "" when not configured.
func (r *Record) AudioPath() string { return r.audioPath }

// TablePath returns the canonical table path, or "" when not configured.
func (r *Record) TablePath() string { return r.tablePath }

// Columns returns the canonical column naming for this record.
func (r *Record) Columns() frametable.Names { return r.columns }

// SetVideoPath replaces the source path, e.g. after conversion.
func (r *Record) SetVideoPath(path string) { r.videoPath = path }

// FrameStem returns the filename stem for a frame index.
func (r *Record) FrameStem(index int) string {
	return r.name + "_frame" + strconv.Itoa(index)
}

// FrameName returns the frame artifact filename for an index.
func (r *Record) FrameName(index int) string {
	return r.FrameStem(index) + r.frameSuffix
}

// FrameLeaf returns the leaf namer used for sharded frame layouts.
func (r *Record) FrameLeaf() chunkpath.Namer {
	return func(index int) string { return r.FrameName(index) }
}

// SetData replaces the record's VideoData and invalidates any cached table.
// VideoData is immutable once set unless explicitly replaced through this
// method.
func (r *Record) SetData(data VideoData) {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := data.clone()
	r.data = &copied
	r.cached = nil
}

// Data returns the record's VideoData, or nil when unset.
func (r *Record) Data() *VideoData {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.data
}
