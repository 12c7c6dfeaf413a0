package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"framelab/internal/faults"
)

// ExtractAudio stream-copies the audio track of videoPath to dest.
func (e *Extractor) ExtractAudio(ctx context.Context, videoPath, dest string) error {
	if videoPath == "" || dest == "" {
		return faults.Wrap(faults.ErrConfiguration, "extract", "audio", "video path and destination required", nil)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create audio directory: %w", err)
	}
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", videoPath,
		"-c:a", "copy",
		"-vn",
		"-sn",
		dest,
	}
	cmd := commandContext(ctx, e.ffmpeg, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return faults.Wrap(faults.ErrExternalTool, "extract", "audio",
			"ffmpeg: "+strings.TrimSpace(string(output)), err)
	}
	return nil
}

// Convert transcodes (or remuxes, depending on the destination container)
// a recording to dest.
func (e *Extractor) Convert(ctx context.Context, src, dest string) error {
	if src == "" || dest == "" {
		return faults.Wrap(faults.ErrConfiguration, "extract", "convert", "source and destination required", nil)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", src,
		dest,
	}
	cmd := commandContext(ctx, e.ffmpeg, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return faults.Wrap(faults.ErrExternalTool, "extract", "convert",
			"ffmpeg: "+strings.TrimSpace(string(output)), err)
	}
	return nil
}

// Concat joins recordings in order into a single output using the concat
// demuxer with stream copy.
func (e *Extractor) Concat(ctx context.Context, inputs []string, dest string) error {
	if len(inputs) == 0 {
		return faults.Wrap(faults.ErrConfiguration, "extract", "concat", "at least one input required", nil)
	}
	if dest == "" {
		return faults.Wrap(faults.ErrConfiguration, "extract", "concat", "destination required", nil)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create destination directory: %w", err)
	}

	list, err := os.CreateTemp("", "framelab-concat-*.txt")
	if err != nil {
		return fmt.Errorf("create concat list: %w", err)
	}
	defer os.Remove(list.Name())
	for _, input := range inputs {
		if _, err := fmt.Fprintf(list, "file '%s'\n", input); err != nil {
			list.Close()
			return fmt.Errorf("write concat list: %w", err)
		}
	}
	if err := list.Close(); err != nil {
		return fmt.Errorf("close concat list: %w", err)
	}

	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "concat",
		"-safe", "0",
		"-i", list.Name(),
		"-c", "copy",
		dest,
	}
	cmd := commandContext(ctx, e.ffmpeg, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return faults.Wrap(faults.ErrExternalTool, "extract", "concat",
			"ffmpeg: "+strings.TrimSpace(string(output)), err)
	}
	return nil
}
