package api

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roamgen/roamgen/internal/api/itinerary"
)

func newTestRouter(t *testing.T, staticDir string) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := itinerary.NewServiceImpl(nil, nil, 0, logger)
	handler := itinerary.NewHandler(service, logger)
	return SetupRouter(&Config{
		ItineraryHandler: handler,
		AllowedOrigins:   []string{"http://localhost:3000"},
		StaticDir:        staticDir,
	})
}

func TestSetupRouter_Ping(t *testing.T) {
	router := newTestRouter(t, "")
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestSetupRouter_ItineraryMethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, "")
	req := httptest.NewRequest(http.MethodGet, "/api/v1/itinerary", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestSetupRouter_ItineraryUnavailableWithoutProvider(t *testing.T) {
	router := newTestRouter(t, "")
	req := httptest.NewRequest(http.MethodPost, "/api/v1/itinerary",
		body(`{"destination":"Porto"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSetupRouter_StaticHosting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>Roamgen</h1>"), 0o644))

	router := newTestRouter(t, dir)
	req := httptest.NewRequest(http.MethodGet, "/index.html", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Roamgen")
}

func body(s string) *strings.Reader {
	return strings.NewReader(s)
}
