// Package logging assembles the structured slog loggers used across
// framelab.
//
// It owns the configurable console/JSON handlers and centralizes level and
// output plumbing. Prefer these constructors over hand-rolled slog setup so
// every component emits data with the same shape.
package logging
