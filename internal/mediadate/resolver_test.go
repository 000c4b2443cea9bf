package mediadate

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestResolveFallsBackToModTime(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "clip.mp4")
	if err := os.WriteFile(path, []byte("not a real video"), 0o644); err != nil {
		t.Fatal(err)
	}
	modTime := time.Date(2021, 5, 14, 12, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatal(err)
	}

	resolver := NewResolver([]string{".jpg", ".jpeg", ".tiff"}, nil)
	got, ok := resolver.Resolve(path)
	if !ok {
		t.Fatal("expected a date from mtime fallback")
	}
	if !got.Equal(modTime) {
		t.Fatalf("date mismatch: got %v, want %v", got, modTime)
	}
}

func TestResolveJPEGWithoutExifFallsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")
	// JPEG magic bytes but no EXIF segment.
	if err := os.WriteFile(path, []byte{0xFF, 0xD8, 0xFF, 0xDB, 0x00, 0x04}, 0o644); err != nil {
		t.Fatal(err)
	}
	modTime := time.Date(2019, 11, 2, 8, 30, 0, 0, time.UTC)
	if err := os.Chtimes(path, modTime, modTime); err != nil {
		t.Fatal(err)
	}

	resolver := NewResolver([]string{".jpg", ".jpeg"}, nil)
	got, ok := resolver.Resolve(path)
	if !ok {
		t.Fatal("expected mtime fallback for EXIF-less jpeg")
	}
	if !got.Equal(modTime) {
		t.Fatalf("date mismatch: got %v, want %v", got, modTime)
	}
}

func TestResolveExtensionMatchIsCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "PHOTO.JPG")
	if err := os.WriteFile(path, []byte{0xFF, 0xD8}, 0o644); err != nil {
		t.Fatal(err)
	}

	resolver := NewResolver([]string{".jpg"}, nil)
	if _, ok := resolver.Resolve(path); !ok {
		t.Fatal("uppercase extension should still resolve via fallback")
	}
}

func TestResolveMissingFileReportsAbsent(t *testing.T) {
	resolver := NewResolver(nil, nil)
	if _, ok := resolver.Resolve(filepath.Join(t.TempDir(), "gone.mp4")); ok {
		t.Fatal("missing file must report no date")
	}
}
