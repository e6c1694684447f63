package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// WriteDescriptor writes a descriptor file with the given contents, creating
// parent directories as needed, and returns its path.
func WriteDescriptor(t testing.TB, dir, name, contents string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteSidecar writes an override sidecar next to a descriptor path. The ext
// selects the format, ".json" or ".yaml".
func WriteSidecar(t testing.TB, descriptorPath, ext, contents string) string {
	t.Helper()

	stem := descriptorPath[:len(descriptorPath)-len(filepath.Ext(descriptorPath))]
	path := stem + ext
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
