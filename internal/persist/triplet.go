package persist

import (
	"fmt"
	"path/filepath"
)

// Subdirectory names for triplet persistence.
const (
	TrainDir      = "train"
	ValidationDir = "val"
	TestDir       = "test"
)

// Triplet groups one dataset split into train/validation/test partitions.
// Validation may legitimately be absent; train and test are required for
// the triplet to be valid.
type Triplet[T any] struct {
	Train      T
	Validation *T
	Test       T
}

// TripletSaver writes Train under <path>/train and Test under <path>/test
// unconditionally, and Validation under <path>/val only when present.
func TripletSaver[T any](save Saver[T]) Saver[Triplet[T]] {
	return func(triplet Triplet[T], path string) error {
		if err := save(triplet.Train, filepath.Join(path, TrainDir)); err != nil {
			return fmt.Errorf("save train split: %w", err)
		}
		if triplet.Validation != nil {
			if err := save(*triplet.Validation, filepath.Join(path, ValidationDir)); err != nil {
				return fmt.Errorf("save validation split: %w", err)
			}
		}
		if err := save(triplet.Test, filepath.Join(path, TestDir)); err != nil {
			return fmt.Errorf("save test split: %w", err)
		}
		return nil
	}
}

// TripletLoader loads all three sub-paths independently. Overall success
// requires train AND test; a validation split that fails to load leaves the
// slot absent without failing the triplet, because validation data is
// optional by design.
func TripletLoader[T any](load FlaggedLoader[T]) FlaggedLoader[Triplet[T]] {
	return func(path string) (Flagged[Triplet[T]], error) {
		train, err := load(filepath.Join(path, TrainDir))
		if err != nil {
			return Flagged[Triplet[T]]{}, fmt.Errorf("load train split: %w", err)
		}
		validation, err := load(filepath.Join(path, ValidationDir))
		if err != nil {
			return Flagged[Triplet[T]]{}, fmt.Errorf("load validation split: %w", err)
		}
		test, err := load(filepath.Join(path, TestDir))
		if err != nil {
			return Flagged[Triplet[T]]{}, fmt.Errorf("load test split: %w", err)
		}

		triplet := Triplet[T]{Train: train.Value, Test: test.Value}
		if validation.OK {
			value := validation.Value
			triplet.Validation = &value
		}
		return Flagged[Triplet[T]]{
			OK:    train.OK && test.OK,
			Value: triplet,
		}, nil
	}
}
