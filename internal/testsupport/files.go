package testsupport

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// WriteMedia creates a file with the given content, creating parent
// directories as needed. Files with equal content hash identically.
func WriteMedia(t testing.TB, path, content string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteMediaAt creates a media file and sets its modification time, for
// tests that exercise the modification-time date fallback.
func WriteMediaAt(t testing.TB, path, content string, modTime time.Time) {
	t.Helper()

	WriteMedia(t, path, content)
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}
