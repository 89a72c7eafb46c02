// Package config loads the development server configuration from the
// environment, optionally seeded from a .env file.
package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP
	Addr string

	// Storage. Empty DSN selects the seeded in-memory store.
	DatabaseDSN string

	// QR tokens
	QRSigningKey string
	QRTokenTTL   time.Duration

	// Version published at /package.json
	PublishedVersion string

	LogLevel slog.Level
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Addr:             getenv("ADDR", ":8080"),
		DatabaseDSN:      os.Getenv("DATABASE_DSN"),
		QRSigningKey:     getenv("QR_SIGNING_KEY", "delta-dev-secret"),
		QRTokenTTL:       getdur("QR_TOKEN_TTL", 5*time.Minute),
		PublishedVersion: getenv("PUBLISHED_VERSION", "26.1.0"),
		LogLevel:         getlevel("LOG_LEVEL", slog.LevelInfo),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		slog.Warn("invalid duration, using default", "key", k, "value", v, "default", def)
	}
	return def
}

func getlevel(k string, def slog.Level) slog.Level {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		slog.Warn("invalid log level, using default", "key", k, "value", v)
		return def
	}
	return l
}
