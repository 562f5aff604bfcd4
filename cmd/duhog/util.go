package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// resolveRoot converts a user-supplied root to an absolute path and
// verifies it exists. This is the only validation a scan performs up
// front; everything below the root degrades gracefully instead.
func resolveRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving root %q: %w", path, err)
	}

	if _, err := os.Stat(abs); err != nil {
		return "", fmt.Errorf("accessing root %q: %w", abs, err)
	}

	return abs, nil
}

// newLogger builds the stderr diagnostics logger. The scan core never
// reports errors to the user, so anything below warn stays hidden unless
// verbose mode is on.
func newLogger(verbose bool) *log.Logger {
	logger := log.New(os.Stderr)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	return logger
}
