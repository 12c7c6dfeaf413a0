package frametable

import (
	"fmt"

	"framelab/internal/faults"
)

// Kind discriminates column storage.
type Kind int

const (
	KindInt Kind = iota
	KindFloat
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind recovers a Kind from its string form.
func ParseKind(value string) (Kind, error) {
	switch value {
	case "int":
		return KindInt, nil
	case "float":
		return KindFloat, nil
	case "string":
		return KindString, nil
	default:
		return 0, faults.Wrap(faults.ErrDataConsistency, "frametable", "parse kind", fmt.Sprintf("unknown column kind %q", value), nil)
	}
}

// Column holds one typed column. Exactly one of the value slices is
// populated, selected by Kind.
type Column struct {
	Name    string
	Kind    Kind
	Ints    []int
	Floats  []float64
	Strings []string
}

// Len returns the number of values in the column.
func (c Column) Len() int {
	switch c.Kind {
	case KindInt:
		return len(c.Ints)
	case KindFloat:
		return len(c.Floats)
	default:
		return len(c.Strings)
	}
}

// Names fixes the canonical column names for one video's table.
type Names struct {
	Index       string
	Name        string
	ElapsedTime string
	// Path enables the per-frame file path column when non-empty.
	Path string
}

// DefaultNames returns the canonical column naming. The path column is off
// by default.
func DefaultNames() Names {
	return Names{Index: "index", Name: "name", ElapsedTime: "elapsed_time"}
}

// Table is the canonical per-video table: one row per retained frame index,
// with typed columns in a stable order.
type Table struct {
	columns []Column
	byName  map[string]int
}

// New returns an empty table.
func New() *Table {
	return &Table{byName: make(map[string]int)}
}

// Len reports the number of rows.
func (t *Table) Len() int {
	if len(t.columns) == 0 {
		return 0
	}
	return t.columns[0].Len()
}

// ColumnNames returns the column names in insertion order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name
	}
	return names
}

// Column returns the named column.
func (t *Table) Column(name string) (Column, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Column{}, false
	}
	return t.columns[i], true
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// AddInts appends an integer column.
func (t *Table) AddInts(name string, values []int) error {
	return t.add(Column{Name: name, Kind: KindInt, Ints: values})
}

// AddFloats appends a float column.
func (t *Table) AddFloats(name string, values []float64) error {
	return t.add(Column{Name: name, Kind: KindFloat, Floats: values})
}

// AddStrings appends a string column.
func (t *Table) AddStrings(name string, values []string) error {
	return t.add(Column{Name: name, Kind: KindString, Strings: values})
}

func (t *Table) add(col Column) error {
	if col.Name == "" {
		return faults.Wrap(faults.ErrConfiguration, "frametable", "add column", "column name required", nil)
	}
	if _, exists := t.byName[col.Name]; exists {
		return faults.Wrap(faults.ErrDataConsistency, "frametable", "add column", fmt.Sprintf("column %q already exists", col.Name), nil)
	}
	if len(t.columns) > 0 && col.Len() != t.Len() {
		return faults.Wrap(faults.ErrDataConsistency, "frametable", "add column",
			fmt.Sprintf("column %q has %d values, table has %d rows", col.Name, col.Len(), t.Len()), nil)
	}
	t.byName[col.Name] = len(t.columns)
	t.columns = append(t.columns, col)
	return nil
}

// Equal reports whether two tables have identical columns in identical
// order with identical values. Float columns compare exactly; callers that
// need a tolerance should compare columns themselves.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if len(t.columns) != len(other.columns) {
		return false
	}
	for i, col := range t.columns {
		o := other.columns[i]
		if col.Name != o.Name || col.Kind != o.Kind || col.Len() != o.Len() {
			return false
		}
		switch col.Kind {
		case KindInt:
			for j := range col.Ints {
				if col.Ints[j] != o.Ints[j] {
					return false
				}
			}
		case KindFloat:
			for j := range col.Floats {
				if col.Floats[j] != o.Floats[j] {
					return false
				}
			}
		default:
			for j := range col.Strings {
				if col.Strings[j] != o.Strings[j] {
					return false
				}
			}
		}
	}
	return true
}
