package faults

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConfiguration marks invalid or missing configuration. Always fatal.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound marks a missing resource during a load. This is the only
	// class that bool-flagged loaders convert to a success flag.
	ErrNotFound = errors.New("not found")
	// ErrDataConsistency marks disagreement between derived data and what is
	// on disk (or between two data sources). Always fatal.
	ErrDataConsistency = errors.New("data consistency error")
	// ErrExternalTool marks a failure in an external subprocess such as
	// ffmpeg. Always fatal; never produces silent empty output.
	ErrExternalTool = errors.New("external tool error")
)

// Wrap builds an error message that includes component context while tagging
// it with the provided marker for later classification. The marker should be
// one of the exported sentinel errors above.
func Wrap(marker error, component, operation, message string, err error) error {
	detail := buildDetail(component, operation, message)
	if marker == nil {
		marker = ErrDataConsistency
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

func buildDetail(component, operation, message string) string {
	parts := make([]string, 0, 3)
	if component = strings.TrimSpace(component); component != "" {
		parts = append(parts, component)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "failure"
	}
	return strings.Join(parts, ": ")
}
