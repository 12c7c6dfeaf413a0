package persist_test

import (
	"os"
	"path/filepath"
	"testing"
)

func removeSplit(t *testing.T, root, name string) {
	t.Helper()
	if err := os.RemoveAll(filepath.Join(root, name)); err != nil {
		t.Fatalf("remove split %s: %v", name, err)
	}
}
