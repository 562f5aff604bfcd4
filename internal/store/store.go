// Package store provides the shared result collection for a single scan.
//
// # Overview
//
// The store is the only mutable state shared between the coordinator and
// the per-unit computation goroutines. Targets are added once during the
// collection phase; each computation then completes its own entry exactly
// once. The display loop consumes ranked snapshots without ever mutating
// the store.
//
// # Concurrency Model
//
// Every operation takes the single mutex for one short critical section.
// No I/O or unbounded work happens under the lock; snapshot sorting copies
// out at most the entry slice. The completed counter is maintained
// incrementally so progress queries never rescan the collection.
//
// Update additionally pulses a coalescing notification channel so the
// display loop can sleep until something actually changed instead of
// busy-polling.
package store

import (
	"cmp"
	"slices"
	"sync"
	"time"
)

// Result is one accounting unit and its measurement state.
// Zero Size with Complete=false means the computation is still running.
type Result struct {
	// Path identifies the unit. Immutable after AddTarget.
	Path string

	// Size is the cumulative size in bytes once complete.
	Size int64

	// Complete is set exactly once, by the first Update for the path.
	Complete bool

	// Partial marks the size as a known undercount (budget exceeded).
	Partial bool

	// Elapsed is the wall-clock duration of the computation.
	Elapsed time.Duration
}

// Store is a concurrency-safe, insertion-ordered collection of Results.
// It is created empty, populated during collection, and lives for exactly
// one scan run. Entries are never removed.
type Store struct {
	mu        sync.Mutex
	entries   []Result
	index     map[string]int // path -> position in entries
	completed int
	updated   chan struct{}
}

// New creates an empty store.
func New() *Store {
	return &Store{
		index:   make(map[string]int),
		updated: make(chan struct{}, 1),
	}
}

// AddTarget appends a pending entry for path. A path already present is
// ignored, so a unit can never be measured twice.
func (s *Store) AddTarget(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.index[path]; ok {
		return
	}

	s.index[path] = len(s.entries)
	s.entries = append(s.entries, Result{Path: path})
}

// Update records the measurement for path and marks it complete.
// The first update wins: a second call for the same path is a silent
// no-op, as is an update for an unknown path. Returns whether the
// update was applied.
func (s *Store) Update(path string, size int64, partial bool, elapsed time.Duration) bool {
	s.mu.Lock()

	i, ok := s.index[path]
	if !ok || s.entries[i].Complete {
		s.mu.Unlock()
		return false
	}

	s.entries[i].Size = size
	s.entries[i].Partial = partial
	s.entries[i].Elapsed = elapsed
	s.entries[i].Complete = true
	s.completed++

	s.mu.Unlock()

	// Coalescing notify: a full channel already signals a pending wake.
	select {
	case s.updated <- struct{}{}:
	default:
	}

	return true
}

// TopN returns a snapshot of up to n entries sorted by descending size.
// Pending entries participate with size zero, which keeps them visible
// in the ranking as "calculating" rows.
func (s *Store) TopN(n int) []Result {
	s.mu.Lock()
	sorted := make([]Result, len(s.entries))
	copy(sorted, s.entries)
	s.mu.Unlock()

	slices.SortStableFunc(sorted, func(a, b Result) int {
		return cmp.Compare(b.Size, a.Size)
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	return sorted
}

// Targets returns all unit paths in insertion order.
func (s *Store) Targets() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	paths := make([]string, len(s.entries))
	for i, e := range s.entries {
		paths[i] = e.Path
	}

	return paths
}

// IsComplete reports whether every entry has been completed.
func (s *Store) IsComplete() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.completed == len(s.entries)
}

// TotalTargets returns the number of entries.
func (s *Store) TotalTargets() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.entries)
}

// CompletedTargets returns the incrementally maintained completion count.
func (s *Store) CompletedTargets() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.completed
}

// Updated exposes the notification channel pulsed by Update. Receives
// coalesce: one pending signal may stand for several updates.
func (s *Store) Updated() <-chan struct{} {
	return s.updated
}
