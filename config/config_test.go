package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitConfig(t *testing.T) {
	cfg, err := InitConfig()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Server.HTTPPort)
	assert.NotEmpty(t, cfg.Metrics.Port)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Model)
	assert.Greater(t, cfg.Gemini.Timeout, time.Duration(0))
	assert.NotEmpty(t, cfg.CORS.AllowedOrigins)
}
