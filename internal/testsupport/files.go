package testsupport

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
)

// WriteFrames populates dir with count frame artifacts named
// <prefix><index><suffix> and returns their paths in index order. Each file
// carries its index as content so tests can verify row alignment after a
// copy or reload.
func WriteFrames(t testing.TB, dir, prefix, suffix string, count int) []string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	paths := make([]string, count)
	for i := 0; i < count; i++ {
		path := filepath.Join(dir, prefix+strconv.Itoa(i)+suffix)
		if err := os.WriteFile(path, []byte{byte(i)}, 0o644); err != nil {
			t.Fatalf("write frame %s: %v", path, err)
		}
		paths[i] = path
	}
	return paths
}
