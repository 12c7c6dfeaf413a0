package frametable_test

import (
	"errors"
	"math"
	"testing"

	"framelab/internal/faults"
	"framelab/internal/frametable"
)

func baseTable(t *testing.T, elapsed []float64) *frametable.Table {
	t.Helper()
	table := frametable.New()
	indices := make([]int, len(elapsed))
	for i := range indices {
		indices[i] = i
	}
	if err := table.AddInts("index", indices); err != nil {
		t.Fatalf("AddInts failed: %v", err)
	}
	if err := table.AddFloats("elapsed_time", elapsed); err != nil {
		t.Fatalf("AddFloats failed: %v", err)
	}
	return table
}

func series(t *testing.T, times, values []float64) *frametable.Table {
	t.Helper()
	table := frametable.New()
	if err := table.AddFloats("time", times); err != nil {
		t.Fatalf("AddFloats failed: %v", err)
	}
	if err := table.AddFloats("heat_flux", values); err != nil {
		t.Fatalf("AddFloats failed: %v", err)
	}
	return table
}

func TestMergeInterpolatesLinearly(t *testing.T) {
	dst := baseTable(t, []float64{0, 0.5, 1})
	src := series(t, []float64{0, 1}, []float64{10, 20})

	if err := frametable.Merge(dst, "elapsed_time", src, "time", frametable.MergeOptions{}); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}

	col, ok := dst.Column("heat_flux")
	if !ok {
		t.Fatal("merged column missing")
	}
	want := []float64{10, 15, 20}
	for i, v := range want {
		if math.Abs(col.Floats[i]-v) > 1e-12 {
			t.Fatalf("row %d: got %v want %v", i, col.Floats[i], v)
		}
	}
}

func TestMergeUnsortedSourceSamples(t *testing.T) {
	dst := baseTable(t, []float64{0.25})
	src := series(t, []float64{1, 0}, []float64{20, 10})

	if err := frametable.Merge(dst, "elapsed_time", src, "time", frametable.MergeOptions{}); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	col, _ := dst.Column("heat_flux")
	if math.Abs(col.Floats[0]-12.5) > 1e-12 {
		t.Fatalf("got %v want 12.5", col.Floats[0])
	}
}

func TestMergeColumnCollisionIsFatal(t *testing.T) {
	dst := baseTable(t, []float64{0, 1})
	if err := dst.AddFloats("heat_flux", []float64{1, 2}); err != nil {
		t.Fatalf("AddFloats failed: %v", err)
	}
	src := series(t, []float64{0, 1}, []float64{10, 20})

	err := frametable.Merge(dst, "elapsed_time", src, "time", frametable.MergeOptions{})
	if !errors.Is(err, faults.ErrDataConsistency) {
		t.Fatalf("expected data consistency error, got %v", err)
	}
	// The collision must not leave a half-merged table behind.
	if dst.HasColumn("time") {
		t.Fatal("merge must not add columns after a collision")
	}
}

func TestMergeWithoutElapsedColumnIsConfigurationError(t *testing.T) {
	dst := frametable.New()
	if err := dst.AddInts("index", []int{0}); err != nil {
		t.Fatalf("AddInts failed: %v", err)
	}
	src := series(t, []float64{0, 1}, []float64{10, 20})

	err := frametable.Merge(dst, "elapsed_time", src, "time", frametable.MergeOptions{})
	if !errors.Is(err, faults.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestMergeOutOfRangeFailsByDefault(t *testing.T) {
	dst := baseTable(t, []float64{0, 2})
	src := series(t, []float64{0, 1}, []float64{10, 20})

	err := frametable.Merge(dst, "elapsed_time", src, "time", frametable.MergeOptions{})
	if !errors.Is(err, faults.ErrDataConsistency) {
		t.Fatalf("expected data consistency error for extrapolation, got %v", err)
	}
}

func TestMergeClampsWhenExtrapolationAllowed(t *testing.T) {
	dst := baseTable(t, []float64{-1, 0.5, 2})
	src := series(t, []float64{0, 1}, []float64{10, 20})

	opts := frametable.MergeOptions{AllowExtrapolation: true}
	if err := frametable.Merge(dst, "elapsed_time", src, "time", opts); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	col, _ := dst.Column("heat_flux")
	want := []float64{10, 15, 20}
	for i, v := range want {
		if math.Abs(col.Floats[i]-v) > 1e-12 {
			t.Fatalf("row %d: got %v want %v", i, col.Floats[i], v)
		}
	}
}

func TestMergeRejectsStringSeries(t *testing.T) {
	dst := baseTable(t, []float64{0, 1})
	src := frametable.New()
	if err := src.AddFloats("time", []float64{0, 1}); err != nil {
		t.Fatalf("AddFloats failed: %v", err)
	}
	if err := src.AddStrings("label", []string{"a", "b"}); err != nil {
		t.Fatalf("AddStrings failed: %v", err)
	}

	err := frametable.Merge(dst, "elapsed_time", src, "time", frametable.MergeOptions{})
	if !errors.Is(err, faults.ErrDataConsistency) {
		t.Fatalf("expected data consistency error, got %v", err)
	}
}
