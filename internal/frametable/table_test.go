package frametable_test

import (
	"errors"
	"testing"

	"framelab/internal/faults"
	"framelab/internal/frametable"
)

func TestTablePreservesColumnOrder(t *testing.T) {
	table := frametable.New()
	if err := table.AddInts("index", []int{0, 1, 2}); err != nil {
		t.Fatalf("AddInts failed: %v", err)
	}
	if err := table.AddStrings("name", []string{"v", "v", "v"}); err != nil {
		t.Fatalf("AddStrings failed: %v", err)
	}
	if err := table.AddFloats("elapsed_time", []float64{0, 0.5, 1}); err != nil {
		t.Fatalf("AddFloats failed: %v", err)
	}

	want := []string{"index", "name", "elapsed_time"}
	got := table.ColumnNames()
	if len(got) != len(want) {
		t.Fatalf("column count: got %d want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("column %d: got %q want %q", i, got[i], want[i])
		}
	}
	if table.Len() != 3 {
		t.Fatalf("row count: got %d want 3", table.Len())
	}
}

func TestTableRejectsDuplicateColumn(t *testing.T) {
	table := frametable.New()
	if err := table.AddInts("index", []int{0}); err != nil {
		t.Fatalf("AddInts failed: %v", err)
	}
	err := table.AddFloats("index", []float64{0})
	if !errors.Is(err, faults.ErrDataConsistency) {
		t.Fatalf("expected data consistency error, got %v", err)
	}
}

func TestTableRejectsRaggedColumns(t *testing.T) {
	table := frametable.New()
	if err := table.AddInts("index", []int{0, 1}); err != nil {
		t.Fatalf("AddInts failed: %v", err)
	}
	err := table.AddFloats("elapsed_time", []float64{0})
	if !errors.Is(err, faults.ErrDataConsistency) {
		t.Fatalf("expected data consistency error, got %v", err)
	}
}

func TestTableEqual(t *testing.T) {
	build := func() *frametable.Table {
		table := frametable.New()
		if err := table.AddInts("index", []int{0, 1}); err != nil {
			t.Fatalf("AddInts failed: %v", err)
		}
		if err := table.AddFloats("elapsed_time", []float64{0, 1.0 / 30}); err != nil {
			t.Fatalf("AddFloats failed: %v", err)
		}
		return table
	}

	a, b := build(), build()
	if !a.Equal(b) {
		t.Fatal("identical tables should compare equal")
	}
	if err := b.AddStrings("name", []string{"x", "x"}); err != nil {
		t.Fatalf("AddStrings failed: %v", err)
	}
	if a.Equal(b) {
		t.Fatal("tables with different columns should not compare equal")
	}
}
