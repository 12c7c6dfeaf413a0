package testsupport

import (
	"context"
	"testing"

	"framelab/internal/catalog"
	"framelab/internal/config"
)

// MustOpenCatalog opens a catalog.Store for tests and registers cleanup.
func MustOpenCatalog(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	store, err := catalog.Open(cfg.CatalogPath())
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// RegisterVideo creates a catalog entry for tests using the provided store.
func RegisterVideo(t testing.TB, store *catalog.Store, name, videoPath string) *catalog.Video {
	t.Helper()

	video, err := store.Register(context.Background(), name, videoPath)
	if err != nil {
		t.Fatalf("store.Register: %v", err)
	}
	return video
}
