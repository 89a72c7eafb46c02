// Package buildinfo exposes build-time metadata stamped in via ldflags.
package buildinfo

import (
	"fmt"
	"io"
)

// Overridden at build time:
//
//	go build -ldflags "-X github.com/nexabag/deltamobile/internal/buildinfo.BuildDate=2026-08-30"
var (
	BuildDate   = "N/A"
	BuildCommit = "N/A"
)

// PrintBuildData writes the stamped build metadata to w.
func PrintBuildData(w io.Writer) {
	fmt.Fprintf(w, "Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "Build commit: %s\n", BuildCommit)
}
