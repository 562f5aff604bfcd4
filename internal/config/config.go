// Package config holds the injected scan configuration.
//
// A scan is driven by four named knobs (traversal depth, display row limit,
// refresh interval, per-unit time budget) plus the root path, an optional
// cap on concurrent unit computations, and the exclusion prefix list.
// Defaults match the classic fixed-constant behavior; everything is
// resolved once at startup and never mutated afterwards.
package config

import (
	"fmt"
	"os"
	"time"
)

// Defaults for the four scan knobs.
const (
	// DefaultMaxDepth is how many path segments below the root a
	// directory may sit and still be measured as a whole unit.
	DefaultMaxDepth = 3

	// DefaultDisplayLimit is the number of ranking rows rendered.
	DefaultDisplayLimit = 16

	// DefaultRefreshInterval yields two display refreshes per second.
	DefaultRefreshInterval = 500 * time.Millisecond

	// DefaultBudget is the soft per-unit computation deadline. A unit
	// may run past it; see sizer for the early-termination heuristic.
	DefaultBudget = time.Minute
)

// Config carries all settings for a single scan run.
type Config struct {
	// Root is the absolute path the scan starts from.
	Root string

	// MaxDepth bounds unit selection depth (segments below Root).
	MaxDepth int

	// DisplayLimit is the number of rows in the ranked output.
	DisplayLimit int

	// RefreshInterval is the maximum display refresh rate.
	RefreshInterval time.Duration

	// Budget is the per-unit soft time limit for size computation.
	Budget time.Duration

	// Workers caps concurrent unit computations. 0 means unbounded:
	// one goroutine per unit, the classic behavior.
	Workers int

	// Exclusions lists denylisted absolute path prefixes.
	Exclusions []string

	// ShowProgress enables the collection-phase spinner.
	ShowProgress bool

	// Verbose enables debug logging to stderr.
	Verbose bool
}

// Default returns the configuration used when no overrides are given:
// the per-OS root and denylist with the four classic knob values.
func Default() Config {
	return Config{
		Root:            DefaultRoot,
		MaxDepth:        DefaultMaxDepth,
		DisplayLimit:    DefaultDisplayLimit,
		RefreshInterval: DefaultRefreshInterval,
		Budget:          DefaultBudget,
		Exclusions:      DefaultExclusions(),
		ShowProgress:    true,
	}
}

// Validate checks the configuration and verifies the root is a scannable
// path. This is the only place a scan can fail before it starts.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root path must not be empty")
	}

	if _, err := os.Stat(c.Root); err != nil {
		return fmt.Errorf("accessing root %q: %w", c.Root, err)
	}

	if c.MaxDepth < 0 {
		return fmt.Errorf("max depth must be >= 0, got %d", c.MaxDepth)
	}

	if c.DisplayLimit <= 0 {
		return fmt.Errorf("display limit must be > 0, got %d", c.DisplayLimit)
	}

	if c.RefreshInterval <= 0 {
		return fmt.Errorf("refresh interval must be > 0, got %s", c.RefreshInterval)
	}

	if c.Budget <= 0 {
		return fmt.Errorf("budget must be > 0, got %s", c.Budget)
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}

	return nil
}
