package scan

import (
	"bufio"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"mediasort/internal/logging"
)

// Scanner filters the filesystem down to processable media files.
type Scanner struct {
	extensions map[string]struct{}
	exclude    map[string]struct{}
	logger     *slog.Logger
}

// NewScanner builds a scanner for the given supported extensions
// (lowercase, dot-prefixed) and excluded directory names.
func NewScanner(extensions, excludeParts []string, logger *slog.Logger) *Scanner {
	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = struct{}{}
	}
	exclude := make(map[string]struct{}, len(excludeParts))
	for _, part := range excludeParts {
		exclude[strings.ToLower(part)] = struct{}{}
	}
	return &Scanner{
		extensions: exts,
		exclude:    exclude,
		logger:     logging.NewComponentLogger(logger, "scan"),
	}
}

// Supported reports whether the file's extension is a known media type.
func (s *Scanner) Supported(path string) bool {
	_, ok := s.extensions[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Walk returns the absolute paths of all supported media files under
// root, pruning excluded directories. Failing to read the root itself is
// an error; unreadable subtrees are logged and skipped.
func (s *Scanner) Walk(root string) ([]string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve input root: %w", err)
	}
	if _, err := os.Stat(absRoot); err != nil {
		return nil, fmt.Errorf("stat input root: %w", err)
	}

	var files []string
	walkErr := filepath.WalkDir(absRoot, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			if path == absRoot {
				return err
			}
			s.logger.Warn("skipping unreadable entry",
				logging.String("path", path),
				logging.Error(err))
			if entry != nil && entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if entry.IsDir() {
			if s.excluded(entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		if !s.Supported(path) || s.excluded(filepath.Base(path)) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk input root: %w", walkErr)
	}

	s.logger.Debug("input walk finished",
		logging.String("root", absRoot),
		logging.Int("file_count", len(files)))
	return files, nil
}

// FromList reads an explicit newline-separated file list. Entries that do
// not exist or are not supported media files are logged and skipped.
func (s *Scanner) FromList(listPath string) ([]string, error) {
	f, err := os.Open(listPath)
	if err != nil {
		return nil, fmt.Errorf("open input list: %w", err)
	}
	defer f.Close()

	var files []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		abs, err := filepath.Abs(line)
		if err != nil {
			s.logger.Warn("skipping unresolvable list entry",
				logging.String("entry", line),
				logging.Error(err))
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.Mode().IsRegular() {
			s.logger.Warn("skipping missing or irregular list entry",
				logging.String("entry", abs))
			continue
		}
		if !s.Supported(abs) || s.onExcludedPath(abs) {
			continue
		}
		files = append(files, abs)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input list: %w", err)
	}

	s.logger.Debug("input list loaded",
		logging.String("list", listPath),
		logging.Int("file_count", len(files)))
	return files, nil
}

func (s *Scanner) excluded(name string) bool {
	_, ok := s.exclude[strings.ToLower(name)]
	return ok
}

func (s *Scanner) onExcludedPath(path string) bool {
	for part := range strings.SplitSeq(filepath.ToSlash(path), "/") {
		if s.excluded(part) {
			return true
		}
	}
	return false
}
