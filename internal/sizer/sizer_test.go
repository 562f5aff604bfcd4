package sizer

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duhog/duhog/internal/store"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

func createFile(t *testing.T, path string, size int64) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, make([]byte, size), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestComputeFileUnit(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "f")
	createFile(t, file, 123)

	s := New(time.Minute, store.New(), testLogger())
	size, partial := s.Compute(file)

	assert.Equal(t, int64(123), size)
	assert.False(t, partial)
}

func TestComputeDirectorySumsRecursively(t *testing.T) {
	root := t.TempDir()
	createFile(t, filepath.Join(root, "a"), 100)
	createFile(t, filepath.Join(root, "sub", "b"), 200)
	createFile(t, filepath.Join(root, "sub", "deeper", "c"), 300)

	s := New(time.Minute, store.New(), testLogger())
	size, partial := s.Compute(root)

	assert.Equal(t, int64(600), size)
	assert.False(t, partial)
}

func TestComputeEmptyDirectory(t *testing.T) {
	root := t.TempDir()

	s := New(time.Minute, store.New(), testLogger())
	size, partial := s.Compute(root)

	assert.Equal(t, int64(0), size)
	assert.False(t, partial)
}

func TestComputeMissingUnitIsZeroComplete(t *testing.T) {
	s := New(time.Minute, store.New(), testLogger())
	size, partial := s.Compute(filepath.Join(t.TempDir(), "gone"))

	assert.Equal(t, int64(0), size)
	assert.False(t, partial)
}

// TestBudgetStopsLastLeadingUnit covers the early-termination heuristic:
// with the budget already exhausted, the sole remaining unit stops as
// soon as its running total beats the current top entry, reporting a
// partial undercount.
func TestBudgetStopsLastLeadingUnit(t *testing.T) {
	root := t.TempDir()
	unit := filepath.Join(root, "unit")
	createFile(t, filepath.Join(unit, "a"), 100)
	createFile(t, filepath.Join(unit, "b"), 100)
	createFile(t, filepath.Join(unit, "c"), 100)

	st := store.New()
	st.AddTarget(unit)
	st.AddTarget("/other")
	st.Update("/other", 0, false, 0) // every other unit is done

	s := New(0, st, testLogger()) // zero budget: always exceeded
	size, partial := s.Compute(unit)

	assert.True(t, partial)
	assert.Less(t, size, int64(300))
	assert.Positive(t, size)
}

// TestBudgetDoesNotStopWhileOthersRun: an over-budget unit keeps going
// as long as any other unit is still computing.
func TestBudgetDoesNotStopWhileOthersRun(t *testing.T) {
	root := t.TempDir()
	unit := filepath.Join(root, "unit")
	createFile(t, filepath.Join(unit, "a"), 100)
	createFile(t, filepath.Join(unit, "b"), 200)

	st := store.New()
	st.AddTarget(unit)
	st.AddTarget("/other") // still pending

	s := New(0, st, testLogger())
	size, partial := s.Compute(unit)

	assert.Equal(t, int64(300), size)
	assert.False(t, partial)
}

// TestBudgetDoesNotStopTrailingUnit: an over-budget unit whose running
// total cannot unseat the leader finishes seamlessly.
func TestBudgetDoesNotStopTrailingUnit(t *testing.T) {
	root := t.TempDir()
	unit := filepath.Join(root, "unit")
	createFile(t, filepath.Join(unit, "a"), 10)
	createFile(t, filepath.Join(unit, "b"), 20)

	st := store.New()
	st.AddTarget(unit)
	st.AddTarget("/leader")
	st.Update("/leader", 1<<40, false, 0) // far ahead of this unit

	s := New(0, st, testLogger())
	size, partial := s.Compute(unit)

	assert.Equal(t, int64(30), size)
	assert.False(t, partial)
}

// TestPartialPropagatesFromSubdirectory: the stop condition tripping
// deep inside a nested walk marks the whole unit partial.
func TestPartialPropagatesFromSubdirectory(t *testing.T) {
	root := t.TempDir()
	unit := filepath.Join(root, "unit")
	createFile(t, filepath.Join(unit, "sub", "a"), 100)
	createFile(t, filepath.Join(unit, "sub", "b"), 100)
	createFile(t, filepath.Join(unit, "sub", "c"), 100)

	st := store.New()
	st.AddTarget(unit)
	st.AddTarget("/other")
	st.Update("/other", 0, false, 0)

	s := New(0, st, testLogger())
	size, partial := s.Compute(unit)

	require.True(t, partial)
	assert.Less(t, size, int64(300))
}
