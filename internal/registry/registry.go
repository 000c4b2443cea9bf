package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"mediasort/internal/contentid"
	"mediasort/internal/fileutil"
	"mediasort/internal/logging"
)

// Entry records where a fingerprint's content was first seen.
type Entry struct {
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// Registry provides access to the persistent fingerprint map.
type Registry struct {
	path    string
	logger  *slog.Logger
	mu      sync.RWMutex
	entries map[contentid.Fingerprint]Entry
}

// Load reads the registry file at path into memory. A missing file starts
// an empty registry; a corrupt file is logged and also starts empty.
func Load(path string, logger *slog.Logger) *Registry {
	logger = logging.NewComponentLogger(logger, "registry")

	r := &Registry{
		path:    path,
		logger:  logger,
		entries: make(map[contentid.Fingerprint]Entry),
	}

	if err := r.load(); err != nil {
		logger.Warn("failed to load hash registry, starting empty",
			logging.String("path", path),
			logging.Error(err))
	}
	return r
}

// Lookup returns the first-seen record for a fingerprint if present.
func (r *Registry) Lookup(fp contentid.Fingerprint) (Entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, found := r.entries[fp]
	return entry, found
}

// Record inserts a first-seen record for the fingerprint. Insert-if-absent:
// an existing entry is never overwritten. Reports whether an insert
// happened.
func (r *Registry) Record(fp contentid.Fingerprint, path string, now time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[fp]; exists {
		return false
	}
	r.entries[fp] = Entry{Path: path, Timestamp: now.Truncate(time.Second)}
	return true
}

// Len returns the number of recorded fingerprints.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// Save flushes the full registry to disk atomically.
func (r *Registry) Save() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	data, err := json.MarshalIndent(r.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}
	if err := fileutil.WriteFileAtomic(r.path, data, 0o644); err != nil {
		return fmt.Errorf("persist registry: %w", err)
	}

	r.logger.Debug("registry flushed",
		logging.Int("entry_count", len(r.entries)),
		logging.String("path", r.path))
	return nil
}

func (r *Registry) load() error {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil // fresh start
		}
		return fmt.Errorf("read registry file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	entries := make(map[contentid.Fingerprint]Entry)
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse registry file: %w", err)
	}
	r.entries = entries

	r.logger.Debug("loaded hash registry",
		logging.Int("entry_count", len(entries)),
		logging.String("path", r.path))
	return nil
}
