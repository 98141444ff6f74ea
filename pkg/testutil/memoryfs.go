package testutil

import (
	"testing"

	"github.com/spf13/afero"
)

// MemFS returns an in-memory filesystem holding files, keyed by absolute path
func MemFS(t *testing.T, files map[string][]byte) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for path, data := range files {
		if err := afero.WriteFile(fs, path, data, 0644); err != nil {
			t.Fatalf("failed to create %s: %v", path, err)
		}
	}
	return fs
}
