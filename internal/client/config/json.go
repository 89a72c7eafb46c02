package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/nexabag/deltamobile/internal/flagx"
	"github.com/nexabag/deltamobile/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the timeout either as a string like
// "15s" or as integer nanoseconds. After parsing, values are copied into the
// runtime Config (which uses time.Duration).
type JsonConfig struct {
	ForumBaseURL         string         `json:"forum_base_url"`
	VersionDescriptorURL string         `json:"version_descriptor_url"`
	HTTPTimeout          timex.Duration `json:"http_timeout"`
	DatabasePath         string         `json:"database_path"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c/-config flags via flagx.JsonConfigFlags();
// when neither is set, no JSON is loaded. Read or unmarshal errors panic
// (caller should recover if desired). Empty JSON fields leave the current
// Config values untouched, so a partial file only overrides what it names.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ForumBaseURL != "" {
		cfg.ForumBaseURL = jc.ForumBaseURL
	}
	if jc.VersionDescriptorURL != "" {
		cfg.VersionDescriptorURL = jc.VersionDescriptorURL
	}
	if jc.HTTPTimeout.Duration != 0 {
		cfg.HTTPTimeout = time.Duration(jc.HTTPTimeout.Duration)
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
}
