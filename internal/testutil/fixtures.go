// Package testutil provides test helpers shared by mirrorplan packages.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempProject creates a temporary directory with the given files and returns its path.
// Files is a map of relative path -> content. Directories are created as needed.
// The directory is automatically cleaned up when the test finishes.
func TempProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for relPath, content := range files {
		absPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}

	return dir
}

// ConfiguredProject returns a project with a .mirrorplan/config.yaml that
// selects the given output format and keeps history off.
func ConfiguredProject(format string) map[string]string {
	return map[string]string{
		".mirrorplan/config.yaml": "version: 1\n" +
			"output:\n  format: " + format + "\n" +
			"history:\n  enabled: false\n" +
			"log:\n  enabled: false\n",
	}
}

// HybridDocument returns a stored configuration document that resolved to
// HYBRID, keyed by its path relative to the documents directory.
func HybridDocument(name string) map[string]string {
	return map[string]string{
		name + ".yaml": "name: " + name + "\n" +
			"dataStrategy: HYBRID\n" +
			"comment: nightly warehouse copy\n" +
			"answers:\n" +
			"  - step: GOAL\n    value: schemas-data\n" +
			"  - step: DETAIL\n    value: \"yes\"\n" +
			"  - step: CHARACTERISTICS\n    value: mixed\n" +
			"createdAt: 2026-03-01T12:00:00Z\n" +
			"updatedAt: 2026-03-01T12:00:00Z\n",
	}
}

// Merge combines fixture maps; later maps win on conflicting paths.
func Merge(sets ...map[string]string) map[string]string {
	out := make(map[string]string)
	for _, set := range sets {
		for k, v := range set {
			out[k] = v
		}
	}
	return out
}
