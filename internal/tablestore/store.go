package tablestore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"framelab/internal/faults"
	"framelab/internal/frametable"
)

// Store persists canonical tables as CSV, preserving column order and
// column kinds across the round-trip. Paths ending in ".gz" are
// transparently gzip-compressed.
//
// Each header cell carries the column kind as "name:kind" so a reload
// restores int, float and string columns exactly. Float values are written
// with full precision; elapsed time in particular is never rounded.
type Store struct{}

// New returns a table store.
func New() *Store {
	return &Store{}
}

// Save writes table at path, creating parent directories as needed.
func (s *Store) Save(table *frametable.Table, path string) error {
	if table == nil {
		return faults.Wrap(faults.ErrConfiguration, "tablestore", "save", "nil table", nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create table directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create table file: %w", err)
	}
	defer file.Close()

	var out io.Writer = file
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(file)
		out = gz
	}

	if err := write(table, out); err != nil {
		return err
	}
	if gz != nil {
		if err := gz.Close(); err != nil {
			return fmt.Errorf("finish gzip stream: %w", err)
		}
	}
	return file.Close()
}

// Load reads a table from path. A missing file reports faults.ErrNotFound
// so bool-flagged loaders can convert it.
func (s *Store) Load(path string) (*frametable.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, faults.Wrap(faults.ErrNotFound, "tablestore", "load", path, err)
		}
		return nil, fmt.Errorf("open table file: %w", err)
	}
	defer file.Close()

	var in io.Reader = file
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, fmt.Errorf("open gzip stream: %w", err)
		}
		defer gz.Close()
		in = gz
	}
	return read(in, path)
}

func write(table *frametable.Table, out io.Writer) error {
	w := csv.NewWriter(out)

	names := table.ColumnNames()
	header := make([]string, len(names))
	columns := make([]frametable.Column, len(names))
	for i, name := range names {
		col, _ := table.Column(name)
		columns[i] = col
		header[i] = name + ":" + col.Kind.String()
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	rows := table.Len()
	record := make([]string, len(columns))
	for row := 0; row < rows; row++ {
		for i, col := range columns {
			switch col.Kind {
			case frametable.KindInt:
				record[i] = strconv.Itoa(col.Ints[row])
			case frametable.KindFloat:
				record[i] = strconv.FormatFloat(col.Floats[row], 'g', -1, 64)
			default:
				record[i] = col.Strings[row]
			}
		}
		if err := w.Write(record); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
	}
	w.Flush()
	return w.Error()
}

func read(in io.Reader, path string) (*frametable.Table, error) {
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read table %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, faults.Wrap(faults.ErrDataConsistency, "tablestore", "load", path+": empty table file", nil)
	}

	header := records[0]
	names := make([]string, len(header))
	kinds := make([]frametable.Kind, len(header))
	for i, cell := range header {
		// Split at the last colon: kind names carry no colon, column
		// names may.
		sep := strings.LastIndex(cell, ":")
		if sep < 0 {
			return nil, faults.Wrap(faults.ErrDataConsistency, "tablestore", "load",
				fmt.Sprintf("%s: header cell %q has no kind annotation", path, cell), nil)
		}
		name, kindName := cell[:sep], cell[sep+1:]
		kind, err := frametable.ParseKind(kindName)
		if err != nil {
			return nil, err
		}
		names[i] = name
		kinds[i] = kind
	}

	rows := records[1:]
	for rowIndex, row := range rows {
		if len(row) != len(header) {
			return nil, faults.Wrap(faults.ErrDataConsistency, "tablestore", "load",
				fmt.Sprintf("%s: row %d has %d cells, header has %d", path, rowIndex+1, len(row), len(header)), nil)
		}
	}

	table := frametable.New()
	for i, name := range names {
		switch kinds[i] {
		case frametable.KindInt:
			values := make([]int, len(rows))
			for j, row := range rows {
				value, err := strconv.Atoi(row[i])
				if err != nil {
					return nil, faults.Wrap(faults.ErrDataConsistency, "tablestore", "load",
						fmt.Sprintf("%s: column %q row %d: %q is not an integer", path, name, j+1, row[i]), nil)
				}
				values[j] = value
			}
			if err := table.AddInts(name, values); err != nil {
				return nil, err
			}
		case frametable.KindFloat:
			values := make([]float64, len(rows))
			for j, row := range rows {
				value, err := strconv.ParseFloat(row[i], 64)
				if err != nil {
					return nil, faults.Wrap(faults.ErrDataConsistency, "tablestore", "load",
						fmt.Sprintf("%s: column %q row %d: %q is not a float", path, name, j+1, row[i]), nil)
				}
				values[j] = value
			}
			if err := table.AddFloats(name, values); err != nil {
				return nil, err
			}
		default:
			values := make([]string, len(rows))
			for j, row := range rows {
				values[j] = row[i]
			}
			if err := table.AddStrings(name, values); err != nil {
				return nil, err
			}
		}
	}
	return table, nil
}
