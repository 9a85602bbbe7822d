package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteConfigFixture writes a YAML config file and returns its path
func WriteConfigFixture(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("Failed to write config fixture: %v", err)
	}
	return path
}
