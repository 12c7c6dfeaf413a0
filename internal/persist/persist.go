package persist

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"framelab/internal/faults"
)

// Saver writes value beneath path.
type Saver[T any] func(value T, path string) error

// Loader reads a value from path. A missing resource is reported with an
// error matching faults.ErrNotFound or fs.ErrNotExist.
type Loader[T any] func(path string) (T, error)

// Flagged is the uniform result of a fallible load: success as a value
// instead of a raised error for the not-found case.
type Flagged[T any] struct {
	OK    bool
	Value T
}

// FlaggedLoader loads a value, reporting recoverable absence via the flag.
type FlaggedLoader[T any] func(path string) (Flagged[T], error)

// WithBoolFlag wraps loader so that errors matching any of the recoverable
// markers become Flagged{OK: false} instead of propagating. Every other
// error class still propagates unchanged; only genuinely recoverable
// absence is converted. When no markers are given, faults.ErrNotFound and
// fs.ErrNotExist are recoverable.
func WithBoolFlag[T any](loader Loader[T], recoverable ...error) FlaggedLoader[T] {
	if len(recoverable) == 0 {
		recoverable = []error{faults.ErrNotFound, fs.ErrNotExist}
	}
	markers := append([]error(nil), recoverable...)

	return func(path string) (Flagged[T], error) {
		value, err := loader(path)
		if err == nil {
			return Flagged[T]{OK: true, Value: value}, nil
		}
		for _, marker := range markers {
			if errors.Is(err, marker) {
				return Flagged[T]{}, nil
			}
		}
		return Flagged[T]{}, err
	}
}

// ComposeSavers builds a saver over a keyed mapping: each entry is written
// by its key's saver beneath a sub-path named after the key. Every key in
// the saver map must have a corresponding entry in the data.
func ComposeSavers[T any](savers map[string]Saver[T]) Saver[map[string]T] {
	return func(values map[string]T, path string) error {
		for key, save := range savers {
			value, ok := values[key]
			if !ok {
				return faults.Wrap(faults.ErrConfiguration, "persist", "compose save", fmt.Sprintf("no value for key %q", key), nil)
			}
			if err := save(value, filepath.Join(path, key)); err != nil {
				return fmt.Errorf("save %q: %w", key, err)
			}
		}
		return nil
	}
}

// ComposeLoaders is the dual of ComposeSavers: every key's loader is
// attempted against its sub-path regardless of prior existence, and the
// results are collected under the same keys.
func ComposeLoaders[T any](loaders map[string]Loader[T]) Loader[map[string]T] {
	return func(path string) (map[string]T, error) {
		loaded := make(map[string]T, len(loaders))
		for key, load := range loaders {
			value, err := load(filepath.Join(path, key))
			if err != nil {
				return nil, fmt.Errorf("load %q: %w", key, err)
			}
			loaded[key] = value
		}
		return loaded, nil
	}
}
