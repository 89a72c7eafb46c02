// Package config loads runtime configuration for the Delta Mobile client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-f string   base URL of the forum backend
//	-u string   URL of the published version descriptor
//	-t int      HTTP timeout (seconds)
//	-d string   path of the local session database
//
// # JSON schema
//
// The JSON loader uses timex.Duration for the timeout, so values can be
// either strings like "15s" or integer nanoseconds:
//
//	{
//	  "forum_base_url": "https://forum.nexabag.xyz",
//	  "version_descriptor_url": "https://raw.githubusercontent.com/SiberizmBey/DeltaMobile/main/package.json",
//	  "http_timeout": "15s",
//	  "database_path": "delta.db"
//	}
//
// Primary API
//
//   - type Config: holds the endpoint URLs, timeout, and database path
//   - func LoadConfig() *Config: builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults(): sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
