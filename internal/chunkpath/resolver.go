package chunkpath

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultIndexKey is the placeholder name recognized in string templates.
const DefaultIndexKey = "index"

// Resolve normalizes a user-supplied naming template into a Namer anchored
// under outputRoot. Three template forms are accepted, probed in order:
//
//  1. A Namer (or func(int) string): wrapped so relative results are joined
//     under outputRoot. Always resolvable.
//  2. A string containing the named placeholder "{indexKey}": compiled into
//     a formatter substituting the index.
//  3. A string usable with legacy numeric substitution ("%d" style): probed
//     once with index 0. If the probe shows the verb is unusable, the
//     template is reported unresolvable.
//
// The boolean result reports resolvability. An unresolvable template is not
// guessed at; the caller must supply an explicit per-index mapping.
func Resolve(template any, outputRoot, indexKey string) (Namer, bool) {
	if indexKey == "" {
		indexKey = DefaultIndexKey
	}

	switch pattern := template.(type) {
	case Namer:
		return anchored(outputRoot, pattern), true
	case func(int) string:
		return anchored(outputRoot, pattern), true
	case string:
		placeholder := "{" + indexKey + "}"
		if strings.Contains(pattern, placeholder) {
			return anchored(outputRoot, func(index int) string {
				return strings.ReplaceAll(pattern, placeholder, strconv.Itoa(index))
			}), true
		}
		// Probe legacy numeric substitution once. A pattern without a usable
		// verb makes Sprintf report the mismatch inline.
		if probe := fmt.Sprintf(pattern, 0); !strings.Contains(probe, "%!") {
			return anchored(outputRoot, func(index int) string {
				return fmt.Sprintf(pattern, index)
			}), true
		}
		return nil, false
	default:
		return nil, false
	}
}

func anchored(root string, namer Namer) Namer {
	return func(index int) string {
		result := namer(index)
		if root == "" || filepath.IsAbs(result) {
			return result
		}
		return filepath.Join(root, result)
	}
}
