package dataset_test

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"framelab/internal/dataset"
	"framelab/internal/faults"
	"framelab/internal/frametable"
	"framelab/internal/persist"
)

func makeFrames(t *testing.T, count int) *dataset.Frames {
	t.Helper()
	srcDir := t.TempDir()

	indices := make([]int, count)
	names := make([]string, count)
	paths := make([]string, count)
	for i := 0; i < count; i++ {
		indices[i] = i
		names[i] = "clip"
		path := filepath.Join(srcDir, "clip_frame"+strconv.Itoa(i)+".png")
		if err := os.WriteFile(path, []byte{byte(i)}, 0o644); err != nil {
			t.Fatalf("write frame: %v", err)
		}
		paths[i] = path
	}

	table := frametable.New()
	if err := table.AddInts("index", indices); err != nil {
		t.Fatalf("AddInts failed: %v", err)
	}
	if err := table.AddStrings("name", names); err != nil {
		t.Fatalf("AddStrings failed: %v", err)
	}
	return &dataset.Frames{Table: table, FramePaths: paths}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ds")
	ds := makeFrames(t, 12)

	if err := dataset.Save(ds, root, dataset.Options{}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := dataset.Load(root, dataset.Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !loaded.Table.Equal(ds.Table) {
		t.Fatal("table changed across save/load")
	}
	if loaded.Len() != 12 {
		t.Fatalf("row count: got %d want 12", loaded.Len())
	}
	// Frame files come back in index order, not lexical order.
	for i, path := range loaded.FramePaths {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read frame %d: %v", i, err)
		}
		if len(data) != 1 || data[0] != byte(i) {
			t.Fatalf("frame %d holds wrong content (from %s)", i, path)
		}
	}
}

func TestSaveShardsImages(t *testing.T) {
	root := filepath.Join(t.TempDir(), "ds")
	ds := makeFrames(t, 5)

	opts := dataset.Options{ChunkSizes: []int{2}}
	if err := dataset.Save(ds, root, opts); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	for _, want := range []string{
		filepath.Join(root, dataset.ImagesDir, "0-1", "frame0.png"),
		filepath.Join(root, dataset.ImagesDir, "2-3", "frame3.png"),
		filepath.Join(root, dataset.ImagesDir, "4-5", "frame4.png"),
	} {
		if _, err := os.Stat(want); err != nil {
			t.Fatalf("expected sharded frame %s: %v", want, err)
		}
	}
	loaded, err := dataset.Load(root, opts)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Len() != 5 {
		t.Fatalf("row count: got %d want 5", loaded.Len())
	}
}

func TestSaveRejectsRowMismatch(t *testing.T) {
	ds := makeFrames(t, 3)
	ds.FramePaths = ds.FramePaths[:2]
	err := dataset.Save(ds, filepath.Join(t.TempDir(), "ds"), dataset.Options{})
	if !errors.Is(err, faults.ErrDataConsistency) {
		t.Fatalf("expected data consistency error, got %v", err)
	}
}

func TestLoadMissingRootReportsNotFound(t *testing.T) {
	_, err := dataset.Load(filepath.Join(t.TempDir(), "absent"), dataset.Options{})
	if !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("expected not-found marker, got %v", err)
	}

	flagged, err := persist.WithBoolFlag(dataset.Loader(dataset.Options{}))(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("flagged load failed: %v", err)
	}
	if flagged.OK {
		t.Fatal("missing dataset should report OK=false")
	}
}

func TestTripletRoundTripWithoutValidation(t *testing.T) {
	root := filepath.Join(t.TempDir(), "split")
	triplet := persist.Triplet[*dataset.Frames]{
		Train: makeFrames(t, 4),
		Test:  makeFrames(t, 2),
	}

	if err := dataset.TripletSaver(dataset.Options{})(triplet, root); err != nil {
		t.Fatalf("triplet save failed: %v", err)
	}
	loaded, err := dataset.TripletLoader(dataset.Options{})(root)
	if err != nil {
		t.Fatalf("triplet load failed: %v", err)
	}
	if !loaded.OK {
		t.Fatal("train+test split should load successfully")
	}
	if loaded.Value.Validation != nil {
		t.Fatal("absent validation split should stay absent")
	}
	if loaded.Value.Train.Len() != 4 || loaded.Value.Test.Len() != 2 {
		t.Fatalf("split sizes: train %d test %d", loaded.Value.Train.Len(), loaded.Value.Test.Len())
	}
}

func TestTripletRoundTripWithValidation(t *testing.T) {
	root := filepath.Join(t.TempDir(), "split")
	validation := makeFrames(t, 3)
	triplet := persist.Triplet[*dataset.Frames]{
		Train:      makeFrames(t, 4),
		Validation: &validation,
		Test:       makeFrames(t, 2),
	}

	if err := dataset.TripletSaver(dataset.Options{})(triplet, root); err != nil {
		t.Fatalf("triplet save failed: %v", err)
	}
	loaded, err := dataset.TripletLoader(dataset.Options{})(root)
	if err != nil {
		t.Fatalf("triplet load failed: %v", err)
	}
	if !loaded.OK || loaded.Value.Validation == nil {
		t.Fatal("validation split should load when present")
	}
	if (*loaded.Value.Validation).Len() != 3 {
		t.Fatalf("validation size: got %d want 3", (*loaded.Value.Validation).Len())
	}
}
