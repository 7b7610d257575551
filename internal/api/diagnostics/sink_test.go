package diagnostics

import (
	"bufio"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSink(t *testing.T) (*FileSink, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recovery.log")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	sink, err := NewFileSink(path, logger)
	require.NoError(t, err)
	return sink, path
}

func TestFileSink_Record(t *testing.T) {
	sink, path := newTestSink(t)

	sink.Record(Entry{Raw: "raw text", Extracted: "{...}", Sanitized: "{}"})
	sink.Record(Entry{Raw: "second failure"})
	require.NoError(t, sink.Close())

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	var entries []Entry
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		var entry Entry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())

	require.Len(t, entries, 2)
	assert.Equal(t, "raw text", entries[0].Raw)
	assert.Equal(t, "{...}", entries[0].Extracted)
	assert.NotEmpty(t, entries[0].ID)
	assert.False(t, entries[0].Timestamp.IsZero())
	assert.Equal(t, "second failure", entries[1].Raw)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
}

func TestFileSink_TruncatesLongSnapshots(t *testing.T) {
	sink, path := newTestSink(t)

	sink.Record(Entry{Raw: strings.Repeat("x", maxSnippetLen*3)})
	require.NoError(t, sink.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry Entry
	require.NoError(t, json.Unmarshal(data[:len(data)-1], &entry))
	assert.LessOrEqual(t, len(entry.Raw), maxSnippetLen+len("...(truncated)"))
	assert.True(t, strings.HasSuffix(entry.Raw, "...(truncated)"))
}

func TestFileSink_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "recovery.log")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	sink, err := NewFileSink(path, logger)
	require.NoError(t, err)
	require.NoError(t, sink.Close())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFileSink_CloseIsIdempotent(t *testing.T) {
	sink, _ := newTestSink(t)
	require.NoError(t, sink.Close())
	assert.NoError(t, sink.Close())
}

func TestNopSink(t *testing.T) {
	// Must be safe to call with anything.
	NopSink{}.Record(Entry{Raw: "ignored"})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short"))
	long := strings.Repeat("a", maxSnippetLen+1)
	assert.Equal(t, strings.Repeat("a", maxSnippetLen)+"...(truncated)", Truncate(long))
}
