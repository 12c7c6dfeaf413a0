package frametable

import (
	"fmt"

	"framelab/internal/faults"
)

// MergeOptions controls external time-series alignment.
type MergeOptions struct {
	// AllowExtrapolation clamps elapsed times outside the sampled range to
	// the boundary values instead of failing. Off by default: silently
	// fabricating measurements beyond the recorded range is a data bug.
	AllowExtrapolation bool
}

// Merge aligns every non-time column of src against dst's elapsed-time
// column by piecewise-linear interpolation and appends the results to dst.
//
// dst must carry the float elapsed-time column named elapsedColumn, which
// is why callers derive with time enforcement before merging. A src column
// whose name collides with an existing dst column fails fatally rather
// than silently overwriting; the caller must rename upstream.
func Merge(dst *Table, elapsedColumn string, src *Table, timeColumn string, opts MergeOptions) error {
	elapsed, ok := dst.Column(elapsedColumn)
	if !ok {
		return faults.Wrap(faults.ErrConfiguration, "frametable", "merge",
			fmt.Sprintf("table has no elapsed-time column %q; derive with time enforcement first", elapsedColumn), nil)
	}
	if elapsed.Kind != KindFloat {
		return faults.Wrap(faults.ErrDataConsistency, "frametable", "merge",
			fmt.Sprintf("elapsed-time column %q is %s, want float seconds", elapsedColumn, elapsed.Kind), nil)
	}

	times, ok := src.Column(timeColumn)
	if !ok {
		return faults.Wrap(faults.ErrConfiguration, "frametable", "merge",
			fmt.Sprintf("source series has no time column %q", timeColumn), nil)
	}
	if times.Kind != KindFloat {
		return faults.Wrap(faults.ErrDataConsistency, "frametable", "merge",
			fmt.Sprintf("source time column %q is %s, want float seconds", timeColumn, times.Kind), nil)
	}

	// Validate every column before mutating dst so a collision cannot leave
	// a half-merged table behind.
	var pending []Column
	for _, name := range src.ColumnNames() {
		if name == timeColumn {
			continue
		}
		if dst.HasColumn(name) {
			return faults.Wrap(faults.ErrDataConsistency, "frametable", "merge",
				fmt.Sprintf("column %q exists in both tables; rename the source column", name), nil)
		}
		col, _ := src.Column(name)
		if col.Kind != KindFloat {
			return faults.Wrap(faults.ErrDataConsistency, "frametable", "merge",
				fmt.Sprintf("source column %q is %s; only float series can be interpolated", name, col.Kind), nil)
		}
		pending = append(pending, col)
	}

	merged := make([][]float64, len(pending))
	for i, col := range pending {
		ip, err := newInterpolant(times.Floats, col.Floats)
		if err != nil {
			return err
		}
		values := make([]float64, len(elapsed.Floats))
		for j, at := range elapsed.Floats {
			values[j], err = ip.at(at, opts.AllowExtrapolation)
			if err != nil {
				return fmt.Errorf("column %q: %w", col.Name, err)
			}
		}
		merged[i] = values
	}

	for i, col := range pending {
		if err := dst.AddFloats(col.Name, merged[i]); err != nil {
			return err
		}
	}
	return nil
}
