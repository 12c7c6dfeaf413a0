package main

import (
	"context"
	"strings"
	"testing"

	"framelab/internal/catalog"
)

func seedCatalogEntry(t *testing.T, env *cliTestEnv, name, videoPath string, status catalog.Status) *catalog.Video {
	t.Helper()

	store, err := catalog.Open(env.cfg.CatalogPath())
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	defer store.Close()

	entry, err := store.Register(context.Background(), name, videoPath)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if status != catalog.StatusRegistered {
		entry.Status = status
		if err := store.Update(context.Background(), entry); err != nil {
			t.Fatalf("Update: %v", err)
		}
	}
	return entry
}

func TestCatalogListEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, err := runCLI(t, []string{"catalog", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog list: %v", err)
	}
	requireContains(t, out, "Catalog is empty")
}

func TestCatalogListAndFilter(t *testing.T) {
	env := setupCLITestEnv(t)
	seedCatalogEntry(t, env, "walk_01", "/videos/walk_01.mp4", catalog.StatusDerived)
	seedCatalogEntry(t, env, "run_02", "/videos/run_02.mp4", catalog.StatusRegistered)

	out, err := runCLI(t, []string{"catalog", "list"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog list: %v", err)
	}
	requireContains(t, out, "Walk 01")
	requireContains(t, out, "Run 02")

	out, err = runCLI(t, []string{"catalog", "list", "--status", "derived"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog list --status: %v", err)
	}
	requireContains(t, out, "Walk 01")
	if strings.Contains(out, "Run 02") {
		t.Fatalf("expected run_02 to be filtered out, got:\n%s", out)
	}

	if _, err := runCLI(t, []string{"catalog", "list", "--status", "bogus"}, env.configPath); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestCatalogShowAndRemove(t *testing.T) {
	env := setupCLITestEnv(t)
	seedCatalogEntry(t, env, "walk_01", "/videos/walk_01.mp4", catalog.StatusRegistered)

	out, err := runCLI(t, []string{"catalog", "show", "walk_01"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog show: %v", err)
	}
	requireContains(t, out, "/videos/walk_01.mp4")
	requireContains(t, out, "registered")

	out, err = runCLI(t, []string{"catalog", "remove", "walk_01"}, env.configPath)
	if err != nil {
		t.Fatalf("catalog remove: %v", err)
	}
	requireContains(t, out, "Removed walk_01")

	if _, err := runCLI(t, []string{"catalog", "show", "walk_01"}, env.configPath); err == nil {
		t.Fatal("expected error after removal")
	}
}
