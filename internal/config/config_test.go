package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/demand-prediction/backend/internal/config"
)

// TestLoad_defaults verifies that every value falls back to its default
// when the environment is empty.
func TestLoad_defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("MAX_UPLOAD_BYTES", "")
	t.Setenv("UPLOAD_ROW_LIMIT", "")
	t.Setenv("UPLOAD_TOP_N", "")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"http://localhost:8501"}, cfg.CORSOrigins)
	require.Equal(t, int64(64<<20), cfg.MaxUploadBytes)
	require.Equal(t, 50000, cfg.UploadRowLimit)
	require.Equal(t, 50, cfg.UploadTopN)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("UPLOAD_ROW_LIMIT", "1000")
	t.Setenv("UPLOAD_TOP_N", "10")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, int64(1048576), cfg.MaxUploadBytes)
	require.Equal(t, 1000, cfg.UploadRowLimit)
	require.Equal(t, 10, cfg.UploadTopN)
}

// TestLoad_invalidNumber verifies that a non-numeric override is rejected
// with an error naming the variable.
func TestLoad_invalidNumber(t *testing.T) {
	t.Setenv("UPLOAD_ROW_LIMIT", "lots")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "UPLOAD_ROW_LIMIT")
}
