package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()
	require.Equal(t, ":8080", cfg.Addr)
	require.Empty(t, cfg.DatabaseDSN)
	require.Equal(t, 5*time.Minute, cfg.QRTokenTTL)
	require.Equal(t, "26.1.0", cfg.PublishedVersion)
	require.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9999")
	t.Setenv("DATABASE_DSN", "postgres://localhost/delta")
	t.Setenv("QR_TOKEN_TTL", "90s")
	t.Setenv("PUBLISHED_VERSION", "27.0.0")
	t.Setenv("LOG_LEVEL", "debug")

	cfg := Load()
	require.Equal(t, ":9999", cfg.Addr)
	require.Equal(t, "postgres://localhost/delta", cfg.DatabaseDSN)
	require.Equal(t, 90*time.Second, cfg.QRTokenTTL)
	require.Equal(t, "27.0.0", cfg.PublishedVersion)
	require.Equal(t, slog.LevelDebug, cfg.LogLevel)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("QR_TOKEN_TTL", "not-a-duration")
	cfg := Load()
	require.Equal(t, 5*time.Minute, cfg.QRTokenTTL)
}
