package config

import "time"

// Config holds runtime settings for the Delta Mobile client.
//
// Fields:
//   - ForumBaseURL: origin of the forum backend, no trailing slash.
//   - VersionDescriptorURL: full URL of the published package descriptor.
//   - HTTPTimeout: client-level deadline for remote calls.
//   - DatabasePath: location of the local SQLite session database.
type Config struct {
	ForumBaseURL         string
	VersionDescriptorURL string
	HTTPTimeout          time.Duration
	DatabasePath         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ForumBaseURL = "https://forum.nexabag.xyz"
	c.VersionDescriptorURL = "https://raw.githubusercontent.com/SiberizmBey/DeltaMobile/main/package.json"
	c.HTTPTimeout = 15 * time.Second
	c.DatabasePath = "delta.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
