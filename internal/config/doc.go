// Package config loads, normalizes, and validates framelab configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks for remote
// storage credentials. Always obtain settings through this package so
// downstream code receives sanitized paths, canonical log formats, and clear
// validation errors.
package config
