package diagnostics

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

const maxSnippetLen = 2000

// Entry is one append-only record describing a recovery failure. The
// format is for post-hoc debugging only and is not a compatibility
// contract.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Raw       string    `json:"raw"`
	Extracted string    `json:"extracted,omitempty"`
	Sanitized string    `json:"sanitized,omitempty"`
}

// Sink receives recovery-failure entries. Implementations must never
// block the caller and must never propagate their own failures.
type Sink interface {
	Record(entry Entry)
}

// NopSink discards every entry.
type NopSink struct{}

func (NopSink) Record(Entry) {}

// FileSink appends JSON lines to a log file. Writes happen on a
// background goroutine so the response path never waits on the
// filesystem; when the buffer is full the entry is dropped.
type FileSink struct {
	logger  *slog.Logger
	entries chan Entry
	done    chan struct{}
	closer  sync.Once
	file    *os.File
}

func NewFileSink(path string, logger *slog.Logger) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	s := &FileSink{
		logger:  logger,
		entries: make(chan Entry, 64),
		done:    make(chan struct{}),
		file:    file,
	}
	go s.drain()
	return s, nil
}

// Record enqueues the entry fire-and-forget. Missing IDs and timestamps
// are filled in here so callers only supply the text snapshots.
func (s *FileSink) Record(entry Entry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now().UTC()
	}
	entry.Raw = Truncate(entry.Raw)
	entry.Extracted = Truncate(entry.Extracted)
	entry.Sanitized = Truncate(entry.Sanitized)

	select {
	case s.entries <- entry:
	default:
		s.logger.Warn("Diagnostics buffer full, dropping recovery entry", slog.String("entry_id", entry.ID))
	}
}

func (s *FileSink) drain() {
	for entry := range s.entries {
		line, err := json.Marshal(entry)
		if err != nil {
			s.logger.Warn("Failed to marshal diagnostics entry", slog.Any("error", err))
			continue
		}
		if _, err := s.file.Write(append(line, '\n')); err != nil {
			s.logger.Warn("Failed to write diagnostics entry", slog.Any("error", err))
		}
	}
	close(s.done)
}

// Close flushes buffered entries and releases the file.
func (s *FileSink) Close() error {
	var err error
	s.closer.Do(func() {
		close(s.entries)
		<-s.done
		err = s.file.Close()
	})
	return err
}

// Truncate caps a snapshot so a single huge completion cannot bloat the
// log file.
func Truncate(s string) string {
	if len(s) <= maxSnippetLen {
		return s
	}
	return s[:maxSnippetLen] + "...(truncated)"
}
