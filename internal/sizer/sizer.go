// Package sizer computes cumulative sizes of accounting units.
//
// # Budget Semantics
//
// Each unit runs under a soft wall-clock budget measured from its own
// start. Exceeding the budget does not terminate the computation by
// itself: a unit stops early only when it is the last one still running
// AND its running total already exceeds the current best-known top size.
// A straggler that might still take first place, or one racing alongside
// other units, is allowed to finish seamlessly. The early stop is
// self-imposed - nothing cancels a computation from outside.
//
// A unit that stops early reports a partial result: a documented
// undercount, not a failure. Partial-ness propagates - once any
// subdirectory trips the stop condition the whole unit unwinds and is
// marked partial.
//
// # Error Policy
//
// Per-entry access errors (permissions, races, transient I/O) contribute
// zero bytes and are never propagated: one unreadable file does not
// invalidate the unit's measurement.
package sizer

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/duhog/duhog/internal/store"
)

// readDirBatch bounds memory when listing directories with very many
// entries.
const readDirBatch = 1000

// Sizer measures accounting units against a shared store.
// Safe for concurrent use: each Compute call owns its own state.
type Sizer struct {
	budget time.Duration
	store  *store.Store
	logger *log.Logger
}

// New creates a Sizer with the given per-unit time budget.
func New(budget time.Duration, st *store.Store, logger *log.Logger) *Sizer {
	return &Sizer{budget: budget, store: st, logger: logger}
}

// Compute measures one unit and returns its cumulative size in bytes and
// whether the result is a partial undercount. File units return their
// size directly; directory units are summed recursively. An unreadable
// unit measures zero, complete.
func (s *Sizer) Compute(path string) (int64, bool) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, false
	}

	if !info.IsDir() {
		return info.Size(), false
	}

	c := &computation{sizer: s, unit: path, start: time.Now()}
	c.walk(path)

	if c.partial {
		s.logger.Debug("budget exceeded, reporting partial size",
			"unit", path, "bytes", c.total)
	}

	return c.total, c.partial
}

// computation carries the unit-wide running state of one Compute call.
// The running total is unit-wide, not per-directory, so the early-stop
// heuristic compares the full accumulated size against the leader.
type computation struct {
	sizer   *Sizer
	unit    string
	start   time.Time
	total   int64
	partial bool
}

// walk sums the sizes of all regular files under dir into c.total.
// Returns early, leaving c.partial set, once the stop condition fires.
func (c *computation) walk(dir string) {
	f, err := os.Open(dir)
	if err != nil {
		return // skip unreadable directory, contribute zero
	}
	defer func() { _ = f.Close() }()

	for {
		entries, err := f.ReadDir(readDirBatch)
		if len(entries) == 0 {
			if err != nil && err != io.EOF {
				return
			}

			break
		}

		for _, entry := range entries {
			if c.partial {
				return
			}

			// Symlinks are neither followed nor counted.
			if entry.Type()&fs.ModeSymlink != 0 {
				continue
			}

			if time.Since(c.start) >= c.sizer.budget && c.shouldStop() {
				c.partial = true

				return
			}

			path := filepath.Join(dir, entry.Name())

			if entry.IsDir() {
				c.walk(path)

				continue
			}

			if !entry.Type().IsRegular() {
				continue
			}

			info, err := entry.Info()
			if err != nil {
				continue // raced or unreadable entry counts as zero
			}

			c.total += info.Size()
		}
	}
}

// shouldStop decides whether an over-budget unit may terminate early:
// only when every other unit has completed and this unit's running total
// already beats the current top entry, so stopping cannot change the
// leader. Pending entries rank with size zero, matching the display.
func (c *computation) shouldStop() bool {
	if c.sizer.store.CompletedTargets() != c.sizer.store.TotalTargets()-1 {
		return false
	}

	top := c.sizer.store.TopN(1)

	return len(top) == 0 || c.total > top[0].Size
}
