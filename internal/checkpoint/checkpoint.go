package checkpoint

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"mediasort/internal/fileutil"
	"mediasort/internal/logging"
)

// Store provides access to the persistent processed-path set.
type Store struct {
	path   string
	logger *slog.Logger
	mu     sync.RWMutex
	done   map[string]bool
}

// Load reads the checkpoint file at path into memory. A missing file
// starts an empty set; a corrupt file is logged and also starts empty.
func Load(path string, logger *slog.Logger) *Store {
	logger = logging.NewComponentLogger(logger, "checkpoint")

	s := &Store{
		path:   path,
		logger: logger,
		done:   make(map[string]bool),
	}

	if err := s.load(); err != nil {
		logger.Warn("failed to load checkpoint set, starting empty",
			logging.String("path", path),
			logging.Error(err))
	}
	return s
}

// IsDone reports whether the path was processed in this or any prior run.
func (s *Store) IsDone(path string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.done[path]
}

// MarkDone records the path as processed.
func (s *Store) MarkDone(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.done[path] = true
}

// Len returns the number of checkpointed paths.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.done)
}

// Save flushes the full set to disk atomically.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := json.MarshalIndent(s.done, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal checkpoint set: %w", err)
	}
	if err := fileutil.WriteFileAtomic(s.path, data, 0o644); err != nil {
		return fmt.Errorf("persist checkpoint set: %w", err)
	}

	s.logger.Debug("checkpoint set flushed",
		logging.Int("entry_count", len(s.done)),
		logging.String("path", s.path))
	return nil
}

func (s *Store) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil // fresh start
		}
		return fmt.Errorf("read checkpoint file: %w", err)
	}
	if len(data) == 0 {
		return nil
	}

	done := make(map[string]bool)
	if err := json.Unmarshal(data, &done); err != nil {
		return fmt.Errorf("parse checkpoint file: %w", err)
	}
	s.done = done

	s.logger.Debug("loaded checkpoint set",
		logging.Int("entry_count", len(done)),
		logging.String("path", s.path))
	return nil
}
