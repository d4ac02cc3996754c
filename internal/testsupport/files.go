package testsupport

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// ValidMagic is a 25-byte header accepted by the archive header check.
const ValidMagic = "CCA Copyright MDO 1234567"

// WriteFile writes content to path, creating parent directories as needed.
func WriteFile(t testing.TB, path string, content []byte) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteArchive writes ValidMagic followed by body to dir/name and returns the
// full path.
func WriteArchive(t testing.TB, dir, name string, body []byte) string {
	t.Helper()

	path := filepath.Join(dir, name)
	content := make([]byte, 0, len(ValidMagic)+len(body))
	content = append(content, ValidMagic...)
	content = append(content, body...)
	WriteFile(t, path, content)
	return path
}

// ListFiles returns the sorted base names of the regular files in dir.
func ListFiles(t testing.TB, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir %s: %v", dir, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.Type().IsRegular() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t testing.TB, path string) []byte {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}
