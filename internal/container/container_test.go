package container

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamgen/roamgen/config"
	"github.com/roamgen/roamgen/internal/api/diagnostics"
)

func TestNewContainer_WithoutCredential(t *testing.T) {
	t.Setenv("GOOGLE_GEMINI_API_KEY", "")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := config.Config{}
	cfg.Gemini.Model = "gemini-2.0-flash"

	c, err := NewContainer(context.Background(), &cfg, logger)
	require.NoError(t, err, "a missing credential must not fail startup")
	defer c.Close()

	// The handler exists and will answer unavailable rather than the
	// process refusing to boot.
	assert.NotNil(t, c.ItineraryHandler)
	assert.IsType(t, diagnostics.NopSink{}, c.Sink)
}

func TestNewContainer_DiagnosticsSink(t *testing.T) {
	t.Setenv("GOOGLE_GEMINI_API_KEY", "")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := config.Config{}
	cfg.Diagnostics.Enabled = true
	cfg.Diagnostics.Path = filepath.Join(t.TempDir(), "recovery.log")

	c, err := NewContainer(context.Background(), &cfg, logger)
	require.NoError(t, err)
	defer c.Close()

	assert.IsType(t, &diagnostics.FileSink{}, c.Sink)
}
