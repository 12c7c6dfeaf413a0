// Package catalog keeps a durable SQLite registry of processed videos:
// which recordings have been registered, where their extracted frames and
// derived tables live, and how far each one has progressed.
package catalog
