// Package selector decides which paths become accounting units.
//
// # Selection Rules
//
// Starting from the scan root, the tree is walked depth-bounded. A visited
// path becomes exactly one unit when:
//
//   - its depth below the root equals the configured maximum - directories
//     and files at the boundary are measured as whole units; or
//   - its depth is below the maximum but it is a regular file - files
//     terminate early since there is nothing deeper to split.
//
// Excluded paths prune their whole branch. Symbolic links are never
// selected and never traversed. Access errors silently skip the affected
// subtree.
//
// The depth boundary balances unit granularity: too shallow merges
// unrelated large subtrees into one number, too deep produces thousands
// of tiny units.
//
// # Concurrency
//
// The walk itself is parallel (fastwalk worker pool); the store serializes
// AddTarget calls and ignores duplicate paths, so selection needs no
// synchronization of its own beyond atomic visit counters.
package selector

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/charmbracelet/log"

	"github.com/duhog/duhog/internal/exclude"
	"github.com/duhog/duhog/internal/progress"
	"github.com/duhog/duhog/internal/store"
)

// Selector collects accounting units into a store.
//
// Designed for single use: create with New, call Collect once.
type Selector struct {
	maxDepth int
	excludes exclude.List
	logger   *log.Logger

	stats *stats
	bar   *progress.Spinner
}

// New creates a Selector bounded by maxDepth with the given denylist.
func New(maxDepth int, excludes exclude.List, showProgress bool, logger *log.Logger) *Selector {
	return &Selector{
		maxDepth: maxDepth,
		excludes: excludes,
		logger:   logger,
		bar:      progress.NewSpinner(showProgress),
	}
}

// stats tracks collection progress using atomic counters so concurrent
// walkers can update without contention.
type stats struct {
	visited   atomic.Int64
	selected  atomic.Int64
	startTime time.Time
}

func (s *stats) String() string {
	return fmt.Sprintf("Collecting targets: %d selected (%d paths seen, %.1fs)",
		s.selected.Load(), s.visited.Load(), time.Since(s.startTime).Seconds())
}

// Collect walks root and adds every selected unit to st. The returned
// error covers only a failure to start the walk; per-path access errors
// are skipped, never propagated.
func (s *Selector) Collect(root string, st *store.Store) error {
	s.stats = &stats{startTime: time.Now()}
	s.bar.Describe(s.stats)
	defer s.bar.Finish(s.stats)

	conf := &fastwalk.Config{
		Follow: false, // symlinks are never traversed
	}

	return fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			s.logger.Debug("skipping inaccessible subtree", "path", path, "err", err)

			return nil
		}

		s.stats.visited.Add(1)
		s.bar.Describe(s.stats)

		return s.visit(root, path, d, st)
	})
}

// visit applies the selection rules to one walked path.
func (s *Selector) visit(root, path string, d fs.DirEntry, st *store.Store) error {
	if s.excludes.Excluded(path) {
		s.logger.Debug("excluded by denylist", "path", path)

		if d.IsDir() {
			return fastwalk.SkipDir
		}

		return nil
	}

	// Never select or descend through symlinks.
	if d.Type()&fs.ModeSymlink != 0 {
		return nil
	}

	depth := depthBelow(path, root)

	switch {
	case depth > s.maxDepth:
		// Boundary directories are pruned below, so this only guards
		// against a racing rename during the walk.
		if d.IsDir() {
			return fastwalk.SkipDir
		}

		return nil

	case depth == s.maxDepth:
		s.addTarget(path, st)

		if d.IsDir() {
			return fastwalk.SkipDir
		}

		return nil

	case d.Type().IsRegular():
		// A file above the boundary has no deeper structure: measure
		// it individually. Covers root-level loose files and a root
		// that is itself a file (depth 0).
		s.addTarget(path, st)

		return nil

	default:
		// Directory above the boundary: keep descending. Other entry
		// types (fifos, sockets, devices) are ignored.
		return nil
	}
}

func (s *Selector) addTarget(path string, st *store.Store) {
	st.AddTarget(path)
	s.stats.selected.Add(1)
}

// depthBelow returns the number of path segments separating path from
// root. Direct children are at depth 1; root itself is depth 0.
func depthBelow(path, root string) int {
	rel := strings.TrimPrefix(path, root)

	rel = strings.TrimPrefix(rel, string(filepath.Separator))
	if rel == "" {
		return 0
	}

	return strings.Count(rel, string(filepath.Separator)) + 1
}
