package tablestore_test

import (
	"errors"
	"path/filepath"
	"testing"

	"framelab/internal/faults"
	"framelab/internal/frametable"
	"framelab/internal/tablestore"
)

func sampleTable(t *testing.T) *frametable.Table {
	t.Helper()
	table := frametable.New()
	if err := table.AddInts("index", []int{0, 1, 2}); err != nil {
		t.Fatalf("AddInts failed: %v", err)
	}
	if err := table.AddStrings("name", []string{"v1", "v1", "v1"}); err != nil {
		t.Fatalf("AddStrings failed: %v", err)
	}
	if err := table.AddFloats("elapsed_time", []float64{0, 1.0 / 30, 2.0 / 30}); err != nil {
		t.Fatalf("AddFloats failed: %v", err)
	}
	return table
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := tablestore.New()
	path := filepath.Join(t.TempDir(), "tables", "v1.csv")
	table := sampleTable(t)

	if err := store.Save(table, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !loaded.Equal(table) {
		t.Fatalf("round-trip mismatch:\nsaved  %v\nloaded %v", table.ColumnNames(), loaded.ColumnNames())
	}
}

func TestSaveLoadGzip(t *testing.T) {
	store := tablestore.New()
	path := filepath.Join(t.TempDir(), "v1.csv.gz")
	table := sampleTable(t)

	if err := store.Save(table, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !loaded.Equal(table) {
		t.Fatal("gzip round-trip mismatch")
	}
}

func TestRoundTripColumnNameWithColon(t *testing.T) {
	store := tablestore.New()
	path := filepath.Join(t.TempDir(), "v1.csv")

	table := frametable.New()
	if err := table.AddInts("index", []int{0, 1}); err != nil {
		t.Fatalf("AddInts failed: %v", err)
	}
	if err := table.AddStrings("power:W", []string{"85", "85"}); err != nil {
		t.Fatalf("AddStrings failed: %v", err)
	}
	if err := table.AddFloats("flux:W/cm2", []float64{12.5, 12.5}); err != nil {
		t.Fatalf("AddFloats failed: %v", err)
	}

	if err := store.Save(table, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !loaded.Equal(table) {
		t.Fatalf("round-trip mismatch:\nsaved  %v\nloaded %v", table.ColumnNames(), loaded.ColumnNames())
	}
	col, ok := loaded.Column("power:W")
	if !ok || col.Kind != frametable.KindString {
		t.Fatalf("colon-bearing column not restored: ok=%v kind=%v", ok, col.Kind)
	}
}

func TestLoadMissingReportsNotFound(t *testing.T) {
	store := tablestore.New()
	_, err := store.Load(filepath.Join(t.TempDir(), "absent.csv"))
	if !errors.Is(err, faults.ErrNotFound) {
		t.Fatalf("expected not-found marker, got %v", err)
	}
}

func TestRoundTripPreservesFloatPrecision(t *testing.T) {
	store := tablestore.New()
	path := filepath.Join(t.TempDir(), "precise.csv")

	table := frametable.New()
	if err := table.AddFloats("elapsed_time", []float64{12103.033333333333, 1.0 / 3}); err != nil {
		t.Fatalf("AddFloats failed: %v", err)
	}
	if err := store.Save(table, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	col, _ := loaded.Column("elapsed_time")
	if col.Floats[0] != 12103.033333333333 || col.Floats[1] != 1.0/3 {
		t.Fatalf("float precision lost: %v", col.Floats)
	}
	if col.Kind != frametable.KindFloat {
		t.Fatalf("kind lost: %v", col.Kind)
	}
}

func TestRoundTripPreservesColumnOrder(t *testing.T) {
	store := tablestore.New()
	path := filepath.Join(t.TempDir(), "ordered.csv")
	table := sampleTable(t)

	if err := store.Save(table, path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	loaded, err := store.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := table.ColumnNames()
	got := loaded.ColumnNames()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("column order changed: got %v want %v", got, want)
		}
	}
}
