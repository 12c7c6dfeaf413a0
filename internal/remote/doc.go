// Package remote is the capability boundary to shared object storage.
// Datasets live on the local filesystem; a backend, when available, mirrors
// persisted dataset trees to a MinIO-compatible bucket. Availability is a
// runtime property of the configuration, never decided at import time.
package remote
