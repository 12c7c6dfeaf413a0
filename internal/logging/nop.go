package logging

import "log/slog"

// NewNop returns a logger that drops everything. Useful for tests and wiring
// code that cannot fail.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
