// Package session persists the resume offset for an output target: a plain
// decimal count of words already durably emitted, stored next to the output
// file. Resuming is only meaningful when the generation parameters of the
// interrupted run are unchanged; the store does not validate that.
package session

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// FileSuffix is appended to the output path to derive the session record path.
const FileSuffix = ".session"

// Store reads and writes the progress record for one output target.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore creates a store for the session record belonging to outputPath.
func NewStore(outputPath string, logger *slog.Logger) *Store {
	return &Store{
		path:   outputPath + FileSuffix,
		logger: logger,
	}
}

// Path returns the session record path.
func (s *Store) Path() string { return s.path }

// Read returns the persisted word count, or 0 when no record exists or the
// record cannot be parsed. A bad record is recoverable: it is logged as a
// warning and the run starts from the beginning.
func (s *Store) Read() uint64 {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("Could not read session file, starting from the beginning",
				"path", s.path, "error", err)
		}
		return 0
	}

	count, err := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	if err != nil {
		s.logger.Warn("Malformed session file, starting from the beginning",
			"path", s.path, "error", err)
		return 0
	}
	return count
}

// Persist durably overwrites the record with count. The write goes through
// a temp file and rename so a crash never leaves a truncated record behind.
func (s *Store) Persist(count uint64) error {
	tempPath := s.path + ".tmp"
	data := strconv.FormatUint(count, 10)

	if err := os.WriteFile(tempPath, []byte(data), 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	if err := os.Rename(tempPath, s.path); err != nil {
		return fmt.Errorf("failed to replace session file: %w", err)
	}

	s.logger.Debug("Session checkpoint saved", "path", s.path, "count", count)
	return nil
}

// Clear removes the record. A missing record is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
