package mediadate

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	"mediasort/internal/logging"
)

// Resolver extracts capture dates from media files.
type Resolver struct {
	exifExts map[string]struct{}
	logger   *slog.Logger
}

// NewResolver builds a resolver that attempts EXIF extraction for the
// given extensions (lowercase, dot-prefixed). Other files go straight to
// the modification-time fallback.
func NewResolver(exifExts []string, logger *slog.Logger) *Resolver {
	exts := make(map[string]struct{}, len(exifExts))
	for _, ext := range exifExts {
		exts[strings.ToLower(ext)] = struct{}{}
	}
	return &Resolver{
		exifExts: exts,
		logger:   logging.NewComponentLogger(logger, "mediadate"),
	}
}

// Resolve returns the best-effort capture date for path and whether one
// could be determined at all. The EXIF path distinguishes "no capture
// metadata present" from "metadata read failed" at debug level, but both
// fall back identically to the file's modification time.
func (r *Resolver) Resolve(path string) (time.Time, bool) {
	if _, ok := r.exifExts[strings.ToLower(filepath.Ext(path))]; ok {
		if captured, ok := r.exifDate(path); ok {
			return captured, true
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		r.logger.Debug("stat failed, no date available",
			logging.String("path", path),
			logging.Error(err))
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func (r *Resolver) exifDate(path string) (time.Time, bool) {
	f, err := os.Open(path)
	if err != nil {
		r.logger.Debug("metadata read failed",
			logging.String("path", path),
			logging.Error(err))
		return time.Time{}, false
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		r.logger.Debug("no capture metadata",
			logging.String("path", path),
			logging.Error(err))
		return time.Time{}, false
	}

	// DateTime falls back through DateTimeOriginal and DateTimeDigitized.
	captured, err := x.DateTime()
	if err != nil {
		r.logger.Debug("capture timestamp missing or unparsable",
			logging.String("path", path),
			logging.Error(err))
		return time.Time{}, false
	}
	return captured, true
}
