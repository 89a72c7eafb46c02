package config

import (
	"flag"
	"os"
	"time"

	"github.com/nexabag/deltamobile/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-f string   base URL of the forum backend (default from Config)
//	-u string   version descriptor URL (default from Config)
//	-t int      HTTP timeout in seconds (default from Config)
//	-d string   session database path (default from Config)
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-f", "-u", "-t", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ForumBaseURL, "f", cfg.ForumBaseURL, "base URL of the forum backend")
	fs.StringVar(&cfg.VersionDescriptorURL, "u", cfg.VersionDescriptorURL, "URL of the published version descriptor")
	httpTimeout := fs.Int("t", int(cfg.HTTPTimeout.Seconds()), "HTTP timeout (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path of the local session database")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.HTTPTimeout = time.Duration(*httpTimeout) * time.Second
}
