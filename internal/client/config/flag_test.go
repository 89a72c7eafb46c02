package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expectPanic bool
		expected    *Config
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-f", "http://localhost:8080", "-u", "http://localhost:8080/package.json", "-t", "5", "-d", "test.db"},
			expected: &Config{
				ForumBaseURL:         "http://localhost:8080",
				VersionDescriptorURL: "http://localhost:8080/package.json",
				HTTPTimeout:          5 * time.Second,
				DatabasePath:         "test.db",
			},
		},
		{
			name:        "incorrect timeout",
			args:        []string{"cmd", "-t", "abc"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}

			require.NotPanics(t, func() { parseFlags(config) })
			assert.Equal(t, tt.expected, config)
		})
	}
}
