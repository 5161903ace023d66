package snapshot

import (
	"fmt"
	"io"

	"github.com/okian/hirelens/pkg/logger"
)

// SetupLogging sends log output to w, at debug level when verbose is set.
// Tables go to stdout, so callers usually pass stderr here.
func SetupLogging(w io.Writer, verbose bool) error {
	if err := logger.InitWithWriter(w); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	level := "warn"
	if verbose {
		level = "debug"
	}
	return logger.SetLevelString(level)
}

// ShowHelp prints usage information for the snapshot tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `hirelens snapshot
=================

Prints the placement dashboard of a running hirelens service as tables.

Usage:
  go run ./cmd/snapshot [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:8501")
  -company-tier string
        Company tier filter (default "All")
  -experience string
        Experience category filter (default "All")
  -competition string
        Competition level filter (default "All")
  -status string
        Placement status filter: All, placed, not placed (default "All")
  -filters
        Also print the values each filter accepts
  -points
        Also print every scatter point
  -timeout duration
        HTTP request timeout (default 10s)
  -verbose
        Enable debug logging on stderr
  -help
        Show this help message

Examples:
  # Whole table
  go run ./cmd/snapshot

  # Placed freshers only
  go run ./cmd/snapshot -experience Fresher -status placed
`)
}
