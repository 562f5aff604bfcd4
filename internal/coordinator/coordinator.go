// Package coordinator orchestrates a scan run.
//
// # Phases (COLLECTING -> COMPUTING -> DRAINING -> DONE)
//
//  1. COLLECTING runs the selector synchronously to populate the store
//     with every accounting unit.
//  2. COMPUTING launches one computation goroutine per unit. Each writes
//     its result back exactly once; the store's first-update-wins rule
//     makes double invocation harmless. An optional semaphore caps
//     concurrency; by default every unit runs at once, bounded only by
//     disk and OS parallelism.
//  3. DRAINING consumes the store until every unit completes, repainting
//     the ranking whenever results arrive, at most once per refresh
//     interval. The loop wakes on store notifications instead of
//     busy-polling.
//  4. DONE renders the final snapshot, then joins every computation
//     goroutine so nothing is left running when the scan returns.
//
// There is no global timeout and no cancellation: a scan runs until every
// unit completes. The store is the only shared mutable state.
package coordinator

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/duhog/duhog/internal/config"
	"github.com/duhog/duhog/internal/exclude"
	"github.com/duhog/duhog/internal/render"
	"github.com/duhog/duhog/internal/selector"
	"github.com/duhog/duhog/internal/sizer"
	"github.com/duhog/duhog/internal/store"
)

// semaphore limits concurrent unit computations via a buffered channel.
// A nil semaphore never blocks, preserving the one-goroutine-per-unit
// default.
type semaphore chan struct{}

func newSemaphore(n int) semaphore {
	if n <= 0 {
		return nil
	}

	return make(semaphore, n)
}

func (s semaphore) acquire() {
	if s != nil {
		s <- struct{}{}
	}
}

func (s semaphore) release() {
	if s != nil {
		<-s
	}
}

// Coordinator drives one scan run end to end.
//
// Designed for single use: create with New, call Run once.
type Coordinator struct {
	cfg      config.Config
	out      io.Writer
	logger   *log.Logger
	store    *store.Store
	selector *selector.Selector
	sizer    *sizer.Sizer
	renderer *render.Renderer
}

// New wires a Coordinator and its collaborators from cfg. Output frames
// go to out; escape-sequence repainting engages only when out is a
// terminal.
func New(cfg config.Config, out io.Writer, logger *log.Logger) *Coordinator {
	st := store.New()

	return &Coordinator{
		cfg:      cfg,
		out:      out,
		logger:   logger,
		store:    st,
		selector: selector.New(cfg.MaxDepth, exclude.New(cfg.Exclusions), cfg.ShowProgress, logger),
		sizer:    sizer.New(cfg.Budget, st, logger),
		renderer: render.New(out, cfg.DisplayLimit),
	}
}

// Store exposes the result store, mainly for inspection after Run.
func (c *Coordinator) Store() *store.Store { return c.store }

// Run executes all four phases and blocks until every computation has
// finished. Exits cleanly even when individual units were unreadable;
// the only error is a failure to start the collection walk.
func (c *Coordinator) Run() error {
	// COLLECTING
	if err := c.selector.Collect(c.cfg.Root, c.store); err != nil {
		return fmt.Errorf("collecting targets under %q: %w", c.cfg.Root, err)
	}

	c.logger.Debug("collection finished", "targets", c.store.TotalTargets())

	// COMPUTING: fan out one task per unit.
	var wg sync.WaitGroup

	sem := newSemaphore(c.cfg.Workers)

	for _, path := range c.store.Targets() {
		wg.Add(1)

		go func(path string) {
			defer wg.Done()

			sem.acquire()
			defer sem.release()

			start := time.Now()
			size, partial := c.sizer.Compute(path)
			c.store.Update(path, size, partial, time.Since(start))
		}(path)
	}

	// DRAINING
	c.drain()

	// DONE: final snapshot first, then join every task.
	c.renderFrame()
	c.summarize()
	wg.Wait()

	return nil
}

// drain repaints the ranking until every unit completes. It sleeps on
// store notifications with a ticker fallback, so an idle scan wakes at
// most once per refresh interval and a busy one repaints no faster.
func (c *Coordinator) drain() {
	ticker := time.NewTicker(c.cfg.RefreshInterval)
	defer ticker.Stop()

	var lastFrame time.Time

	for !c.store.IsComplete() {
		select {
		case <-c.store.Updated():
		case <-ticker.C:
		}

		if !c.renderer.Live() {
			continue // no in-place repainting; only the final frame prints
		}

		if time.Since(lastFrame) < c.cfg.RefreshInterval {
			continue
		}

		c.renderFrame()

		lastFrame = time.Now()
	}
}

func (c *Coordinator) renderFrame() {
	c.renderer.Render(
		c.store.TopN(c.cfg.DisplayLimit),
		c.store.CompletedTargets(),
		c.store.TotalTargets(),
	)
}

// summarize prints the completion banner with measured totals.
func (c *Coordinator) summarize() {
	var total uint64
	for _, res := range c.store.TopN(c.store.TotalTargets()) {
		total += uint64(res.Size)
	}

	fmt.Fprintf(c.out, "\nAnalysis complete! Measured %s across %d units.\n",
		humanize.IBytes(total), c.store.TotalTargets())
}
