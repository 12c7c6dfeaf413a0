package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"framelab/internal/catalog"
)

// deriveName produces the default record name from a video path: the
// filename stem with whitespace collapsed to underscores.
func deriveName(videoPath string) string {
	base := filepath.Base(videoPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return strings.Join(strings.Fields(base), "_")
}

// displayTitle renders a record name for human-facing listings.
func displayTitle(name string) string {
	cleaned := strings.Builder{}
	prevSpace := false
	for _, r := range name {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			cleaned.WriteRune(r)
			prevSpace = false
		case unicode.IsSpace(r) || r == '-' || r == '_' || r == '.':
			if !prevSpace {
				cleaned.WriteRune(' ')
				prevSpace = true
			}
		}
	}
	title := strings.TrimSpace(cleaned.String())
	if title == "" {
		title = name
	}
	return cases.Title(language.Und).String(title)
}

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func colorizeStatus(status catalog.Status, colorize bool) string {
	if !colorize {
		return string(status)
	}
	switch status {
	case catalog.StatusDerived:
		return ansiGreen + string(status) + ansiReset
	case catalog.StatusFailed:
		return ansiRed + string(status) + ansiReset
	case catalog.StatusExtracting:
		return ansiYellow + string(status) + ansiReset
	default:
		return string(status)
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func formatCount(count int) string {
	if count == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", count)
}
