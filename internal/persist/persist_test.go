package persist_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"framelab/internal/faults"
	"framelab/internal/persist"
)

func textSaver() persist.Saver[string] {
	return func(value, path string) error {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		return os.WriteFile(path, []byte(value), 0o644)
	}
}

func textLoader() persist.Loader[string] {
	return func(path string) (string, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(data), nil
	}
}

func TestWithBoolFlagConvertsNotFound(t *testing.T) {
	load := persist.WithBoolFlag(textLoader())
	flagged, err := load(filepath.Join(t.TempDir(), "missing"))
	if err != nil {
		t.Fatalf("not-found should not propagate: %v", err)
	}
	if flagged.OK {
		t.Fatal("expected OK=false for missing file")
	}
}

func TestWithBoolFlagPassesThroughSuccess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "value")
	if err := textSaver()("hello", path); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	flagged, err := persist.WithBoolFlag(textLoader())(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if !flagged.OK || flagged.Value != "hello" {
		t.Fatalf("unexpected result: %+v", flagged)
	}
}

func TestWithBoolFlagPropagatesOtherErrors(t *testing.T) {
	fatal := errors.New("disk on fire")
	load := persist.WithBoolFlag(func(path string) (string, error) {
		return "", fatal
	})
	if _, err := load("anywhere"); !errors.Is(err, fatal) {
		t.Fatalf("fatal error should propagate, got %v", err)
	}
}

func TestWithBoolFlagCustomMarkers(t *testing.T) {
	recoverable := errors.New("transient gap")
	load := persist.WithBoolFlag(func(path string) (string, error) {
		return "", recoverable
	}, recoverable)
	flagged, err := load("anywhere")
	if err != nil {
		t.Fatalf("marked error should be converted: %v", err)
	}
	if flagged.OK {
		t.Fatal("expected OK=false")
	}

	// Default markers no longer apply once custom markers are supplied.
	load = persist.WithBoolFlag(func(path string) (string, error) {
		return "", faults.ErrNotFound
	}, recoverable)
	if _, err := load("anywhere"); !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("unmarked error should propagate, got %v", err)
	}
}

func TestComposeSaveThenLoadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	save := persist.ComposeSavers(map[string]persist.Saver[string]{
		"a": textSaver(),
		"b": textSaver(),
	})
	load := persist.ComposeLoaders(map[string]persist.Loader[string]{
		"a": textLoader(),
		"b": textLoader(),
	})

	input := map[string]string{"a": "alpha", "b": "beta"}
	if err := save(input, dir); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := load(dir)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	for key, want := range input {
		if got[key] != want {
			t.Fatalf("key %q: got %q want %q", key, got[key], want)
		}
	}
}

func TestComposeSaversRequiresEveryKey(t *testing.T) {
	save := persist.ComposeSavers(map[string]persist.Saver[string]{
		"a": textSaver(),
		"b": textSaver(),
	})
	err := save(map[string]string{"a": "alpha"}, t.TempDir())
	if !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error for missing key, got %v", err)
	}
	if err == nil || !strings.Contains(err.Error(), "b") {
		t.Fatalf("error should name the missing key, got %v", err)
	}
}
