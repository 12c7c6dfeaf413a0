package extract

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"framelab/internal/chunkpath"
	"framelab/internal/faults"
)

// fakeCommand replaces the subprocess launcher: produce runs at fake-launch
// time (immediately before the command would run) and the returned command
// simply reports the requested exit status.
func fakeCommand(t *testing.T, captured *[][]string, succeed bool, produce func(args []string)) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		if captured != nil {
			*captured = append(*captured, append([]string{name}, args...))
		}
		if produce != nil {
			produce(args)
		}
		if succeed {
			return exec.CommandContext(ctx, "true")
		}
		return exec.CommandContext(ctx, "false")
	}
	t.Cleanup(func() { commandContext = original })
}

func itoa(i int) string {
	return strconv.Itoa(i)
}

func TestCountParsesFFprobeOutput(t *testing.T) {
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		return exec.CommandContext(ctx, "echo", "240")
	}
	t.Cleanup(func() { commandContext = original })

	count, err := New().Count(context.Background(), "/videos/a.mp4", true)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 240 {
		t.Fatalf("count: got %d want 240", count)
	}
}

func TestCountFastAndSlowQueries(t *testing.T) {
	var captured [][]string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		captured = append(captured, append([]string{name}, args...))
		return exec.CommandContext(ctx, "echo", "1")
	}
	t.Cleanup(func() { commandContext = original })

	e := New()
	ctx := context.Background()
	if _, err := e.Count(ctx, "/v.mp4", true); err != nil {
		t.Fatalf("fast Count failed: %v", err)
	}
	if _, err := e.Count(ctx, "/v.mp4", false); err != nil {
		t.Fatalf("slow Count failed: %v", err)
	}

	fast := strings.Join(captured[0], " ")
	slow := strings.Join(captured[1], " ")
	if !strings.Contains(fast, "nb_read_packets") {
		t.Fatalf("fast query should count packets: %s", fast)
	}
	if !strings.Contains(slow, "nb_read_frames") || !strings.Contains(slow, "-count_frames") {
		t.Fatalf("slow query should decode and count frames: %s", slow)
	}
}

func TestExtractAllFramesRenamesIntoPlace(t *testing.T) {
	outputDir := t.TempDir()
	var captured [][]string
	fakeCommand(t, &captured, true, func(args []string) {
		pattern := args[len(args)-1]
		staging := filepath.Dir(pattern)
		for _, name := range []string{"frame1.png", "frame2.png", "frame3.png"} {
			if err := os.WriteFile(filepath.Join(staging, name), []byte{0x42}, 0o644); err != nil {
				t.Fatalf("stage frame: %v", err)
			}
		}
	})

	namer := func(index int) string { return "video_frame" + itoa(index) + ".png" }
	err := New().Extract(context.Background(), "/videos/a.mp4", outputDir, namer, ".png", nil)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	// ffmpeg numbers staged frames from 1; artifacts are 0-based.
	for i := 0; i < 3; i++ {
		path := filepath.Join(outputDir, "video_frame"+itoa(i)+".png")
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected artifact %s: %v", path, err)
		}
	}
	// Staging directory is cleaned up.
	entries, err := os.ReadDir(outputDir)
	if err != nil {
		t.Fatalf("read output dir: %v", err)
	}
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".staging-") {
			t.Fatalf("staging directory left behind: %s", entry.Name())
		}
	}
}

func TestExtractTargetIndicesUseSelectFilter(t *testing.T) {
	outputDir := t.TempDir()
	var captured [][]string
	fakeCommand(t, &captured, true, func(args []string) {
		pattern := args[len(args)-1]
		staging := filepath.Dir(pattern)
		for _, name := range []string{"frame1.png", "frame2.png"} {
			if err := os.WriteFile(filepath.Join(staging, name), []byte{0x42}, 0o644); err != nil {
				t.Fatalf("stage frame: %v", err)
			}
		}
	})

	namer := func(index int) string { return "video_frame" + itoa(index) + ".png" }
	err := New().Extract(context.Background(), "/videos/a.mp4", outputDir, namer, ".png", []int{5, 2, 5})
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	joined := strings.Join(captured[0], " ")
	if !strings.Contains(joined, `eq(n\,2)+eq(n\,5)`) {
		t.Fatalf("expected deduplicated sorted select filter, got: %s", joined)
	}
	for _, i := range []int{2, 5} {
		path := filepath.Join(outputDir, "video_frame"+itoa(i)+".png")
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("expected artifact %s: %v", path, err)
		}
	}
}

func TestExtractChunkedLayout(t *testing.T) {
	outputDir := t.TempDir()
	fakeCommand(t, nil, true, func(args []string) {
		pattern := args[len(args)-1]
		staging := filepath.Dir(pattern)
		if err := os.WriteFile(filepath.Join(staging, "frame1.png"), []byte{0x42}, 0o644); err != nil {
			t.Fatalf("stage frame: %v", err)
		}
	})

	namer, err := chunkpath.NewNamer("", []int{10}, func(index int) string {
		return "v_frame" + itoa(index) + ".png"
	})
	if err != nil {
		t.Fatalf("NewNamer failed: %v", err)
	}
	if err := New().Extract(context.Background(), "/videos/a.mp4", outputDir, namer, ".png", nil); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	path := filepath.Join(outputDir, "0-9", "v_frame0.png")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected sharded artifact %s: %v", path, err)
	}
}

func TestExtractSubprocessFailureIsExternalToolError(t *testing.T) {
	fakeCommand(t, nil, false, nil)
	namer := func(index int) string { return "f" + itoa(index) + ".png" }
	err := New().Extract(context.Background(), "/videos/a.mp4", t.TempDir(), namer, ".png", nil)
	if !errors.Is(err, faults.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestExtractNoFramesProducedIsError(t *testing.T) {
	fakeCommand(t, nil, true, nil)
	namer := func(index int) string { return "f" + itoa(index) + ".png" }
	err := New().Extract(context.Background(), "/videos/a.mp4", t.TempDir(), namer, ".png", nil)
	if !errors.Is(err, faults.ErrExternalTool) {
		t.Fatalf("expected external tool error for empty extraction, got %v", err)
	}
}

func TestExtractShortProducedSetIsError(t *testing.T) {
	fakeCommand(t, nil, true, func(args []string) {
		pattern := args[len(args)-1]
		staging := filepath.Dir(pattern)
		if err := os.WriteFile(filepath.Join(staging, "frame1.png"), []byte{0x42}, 0o644); err != nil {
			t.Fatalf("stage frame: %v", err)
		}
	})
	namer := func(index int) string { return "f" + itoa(index) + ".png" }
	err := New().Extract(context.Background(), "/videos/a.mp4", t.TempDir(), namer, ".png", []int{0, 9})
	if !errors.Is(err, faults.ErrExternalTool) {
		t.Fatalf("expected external tool error for short extraction, got %v", err)
	}
}

func TestExtractValidatesArguments(t *testing.T) {
	e := New()
	ctx := context.Background()
	namer := func(index int) string { return "f.png" }
	if err := e.Extract(ctx, "", t.TempDir(), namer, ".png", nil); !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if err := e.Extract(ctx, "/v.mp4", "", namer, ".png", nil); !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if err := e.Extract(ctx, "/v.mp4", t.TempDir(), nil, ".png", nil); !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if err := e.Extract(ctx, "/v.mp4", t.TempDir(), namer, "png", nil); !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
	if err := e.Extract(ctx, "/v.mp4", t.TempDir(), namer, ".png", []int{-1}); !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestExtractRejectsEmptyTargetSet(t *testing.T) {
	e := New()
	namer := func(index int) string { return "f.png" }

	err := e.Extract(context.Background(), "/v.mp4", t.TempDir(), namer, ".png", []int{})
	if !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error for empty target set, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "empty") {
		t.Fatalf("error should name the empty target set, got %v", err)
	}
}

func TestWithBinaryOverrides(t *testing.T) {
	e := New(WithFFmpeg("/opt/ffmpeg"), WithFFprobe("/opt/ffprobe"))
	if e.ffmpeg != "/opt/ffmpeg" || e.ffprobe != "/opt/ffprobe" {
		t.Fatalf("binary overrides not applied: %+v", e)
	}
}
