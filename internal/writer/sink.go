// Package writer appends formatted words to the output file. Writes are
// buffered for throughput; flushing is the caller's way of guaranteeing
// everything counted so far is actually on disk.
package writer

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
)

// bufferSize is the write buffer size in bytes.
const bufferSize = 8192

// Sink is a buffered line writer for one output target. It is owned by a
// single run; concurrent writers against the same path are unsupported.
type Sink struct {
	file   *os.File
	buf    *bufio.Writer
	path   string
	logger *slog.Logger
}

// Open opens the output target. When resuming, new lines are appended after
// the already-emitted prefix; otherwise the file is created or truncated.
func Open(path string, resume bool, logger *slog.Logger) (*Sink, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if resume {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}

	file, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open output file: %w", err)
	}

	logger.Debug("Opened output file", "path", path, "append", resume)

	return &Sink{
		file:   file,
		buf:    bufio.NewWriterSize(file, bufferSize),
		path:   path,
		logger: logger,
	}, nil
}

// Path returns the output file path.
func (s *Sink) Path() string { return s.path }

// WriteLine appends one line, adding the terminator.
func (s *Sink) WriteLine(line string) error {
	if _, err := s.buf.WriteString(line); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := s.buf.WriteByte('\n'); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Flush drains the buffer to the file.
func (s *Sink) Flush() error {
	if err := s.buf.Flush(); err != nil {
		return fmt.Errorf("failed to flush output: %w", err)
	}
	return nil
}

// Close flushes, syncs and closes the file. Safe to call on every exit path.
func (s *Sink) Close() error {
	flushErr := s.buf.Flush()

	if err := s.file.Sync(); err != nil {
		s.logger.Warn("Failed to sync output file", "path", s.path, "error", err)
	}
	if err := s.file.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if flushErr != nil {
		return fmt.Errorf("failed to flush output: %w", flushErr)
	}
	return nil
}
