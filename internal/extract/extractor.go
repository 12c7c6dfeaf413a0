package extract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"framelab/internal/chunkpath"
	"framelab/internal/faults"
	"framelab/internal/video"
)

var commandContext = exec.CommandContext

// Extractor invokes ffmpeg/ffprobe to decompose videos into per-frame
// artifacts. Frames are decoded into a staging directory and renamed into
// their final paths one file at a time, so a partially finished extraction
// never exposes half-written artifacts under the output root.
type Extractor struct {
	ffmpeg  string
	ffprobe string
}

// Option configures the extractor.
type Option func(*Extractor)

// WithFFmpeg overrides the ffmpeg binary name.
func WithFFmpeg(binary string) Option {
	return func(e *Extractor) {
		if binary != "" {
			e.ffmpeg = binary
		}
	}
}

// WithFFprobe overrides the ffprobe binary name.
func WithFFprobe(binary string) Option {
	return func(e *Extractor) {
		if binary != "" {
			e.ffprobe = binary
		}
	}
}

// New constructs an extractor using defaults.
func New(opts ...Option) *Extractor {
	e := &Extractor{ffmpeg: "ffmpeg", ffprobe: "ffprobe"}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Count returns the total frame count of a video. The fast path asks the
// container for its packet count without decoding; the slow path decodes
// the stream and counts actual frames.
func (e *Extractor) Count(ctx context.Context, videoPath string, fast bool) (int, error) {
	if videoPath == "" {
		return 0, faults.Wrap(faults.ErrConfiguration, "extract", "count", "video path required", nil)
	}

	entry := "stream=nb_read_frames"
	countFlag := "-count_frames"
	if fast {
		entry = "stream=nb_read_packets"
		countFlag = "-count_packets"
	}
	args := []string{
		"-v", "error",
		"-select_streams", "v:0",
		countFlag,
		"-show_entries", entry,
		"-of", "default=noprint_wrappers=1:nokey=1",
		videoPath,
	}
	cmd := commandContext(ctx, e.ffprobe, args...) //nolint:gosec
	output, err := cmd.Output()
	if err != nil {
		return 0, faults.Wrap(faults.ErrExternalTool, "extract", "count", "ffprobe", err)
	}
	count, err := strconv.Atoi(strings.TrimSpace(string(output)))
	if err != nil {
		return 0, faults.Wrap(faults.ErrExternalTool, "extract", "count",
			fmt.Sprintf("ffprobe reported %q, not a frame count", strings.TrimSpace(string(output))), nil)
	}
	return count, nil
}

// Counter adapts Count to the frame-count oracle contract with the
// fast/slow choice fixed up front.
func (e *Extractor) Counter(fast bool) video.FrameCounter {
	return counter{extractor: e, fast: fast}
}

type counter struct {
	extractor *Extractor
	fast      bool
}

func (c counter) Count(ctx context.Context, videoPath string) (int, error) {
	return c.extractor.Count(ctx, videoPath, c.fast)
}

// Extract decodes frames of videoPath into files beneath outputDir, each
// written at the path produced by namer(index). A nil targetIndices
// extracts every frame; otherwise exactly the given set is extracted.
// suffix is the frame artifact extension, including the dot.
func (e *Extractor) Extract(ctx context.Context, videoPath, outputDir string, namer chunkpath.Namer, suffix string, targetIndices []int) error {
	if videoPath == "" {
		return faults.Wrap(faults.ErrConfiguration, "extract", "frames", "video path required", nil)
	}
	if outputDir == "" {
		return faults.Wrap(faults.ErrConfiguration, "extract", "frames", "output directory required", nil)
	}
	if namer == nil {
		return faults.Wrap(faults.ErrConfiguration, "extract", "frames", "frame namer required", nil)
	}
	if !strings.HasPrefix(suffix, ".") {
		return faults.Wrap(faults.ErrConfiguration, "extract", "frames",
			fmt.Sprintf("frame suffix %q must start with a dot", suffix), nil)
	}
	if targetIndices != nil && len(targetIndices) == 0 {
		return faults.Wrap(faults.ErrConfiguration, "extract", "frames",
			"target frame set is empty; pass nil to extract every frame", nil)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	staging := filepath.Join(outputDir, ".staging-"+uuid.NewString())
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	var targets []int
	if targetIndices != nil {
		targets = dedupeSorted(targetIndices)
		for _, index := range targets {
			if index < 0 {
				return faults.Wrap(faults.ErrConfiguration, "extract", "frames",
					fmt.Sprintf("negative frame index %d", index), nil)
			}
		}
	}

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoPath,
		"-qscale:v", "1",
	}
	if targets != nil {
		args = append(args, "-vf", selectFilter(targets))
	}
	args = append(args,
		"-vsync", "0",
		filepath.Join(staging, "frame%d"+suffix),
	)

	cmd := commandContext(ctx, e.ffmpeg, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return faults.Wrap(faults.ErrExternalTool, "extract", "frames",
			"ffmpeg: "+strings.TrimSpace(string(output)), err)
	}

	staged, err := stagedFrames(staging, suffix)
	if err != nil {
		return err
	}
	if len(staged) == 0 {
		return faults.Wrap(faults.ErrExternalTool, "extract", "frames", "extraction failed: ffmpeg produced no frames", nil)
	}

	if targets != nil && len(staged) != len(targets) {
		return faults.Wrap(faults.ErrExternalTool, "extract", "frames",
			fmt.Sprintf("extraction failed: requested %d frames, ffmpeg produced %d", len(targets), len(staged)), nil)
	}

	for position, frame := range staged {
		// ffmpeg numbers intermediate outputs from 1 in decode order.
		index := frame.number - 1
		if targets != nil {
			index = targets[position]
		}
		dest := namer(index)
		if !filepath.IsAbs(dest) {
			dest = filepath.Join(outputDir, dest)
		}
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return fmt.Errorf("create frame directory: %w", err)
		}
		if err := os.Rename(frame.path, dest); err != nil {
			return fmt.Errorf("move frame %d into place: %w", index, err)
		}
	}
	return nil
}

type stagedFrame struct {
	number int
	path   string
}

func stagedFrames(staging, suffix string) ([]stagedFrame, error) {
	entries, err := os.ReadDir(staging)
	if err != nil {
		return nil, fmt.Errorf("read staging directory: %w", err)
	}
	frames := make([]stagedFrame, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasPrefix(name, "frame") || !strings.HasSuffix(name, suffix) {
			continue
		}
		number, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, "frame"), suffix))
		if err != nil {
			continue
		}
		frames = append(frames, stagedFrame{number: number, path: filepath.Join(staging, name)})
	}
	sort.Slice(frames, func(a, b int) bool { return frames[a].number < frames[b].number })
	return frames, nil
}

// selectFilter builds the ffmpeg select expression matching exactly the
// requested frame numbers.
func selectFilter(targets []int) string {
	terms := make([]string, len(targets))
	for i, index := range targets {
		terms[i] = fmt.Sprintf(`eq(n\,%d)`, index)
	}
	return "select='" + strings.Join(terms, "+") + "'"
}

func dedupeSorted(indices []int) []int {
	sorted := append([]int(nil), indices...)
	sort.Ints(sorted)
	out := sorted[:0]
	for i, index := range sorted {
		if i == 0 || index != sorted[i-1] {
			out = append(out, index)
		}
	}
	return out
}
