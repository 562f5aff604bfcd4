// Package progress wraps the collection-phase spinner.
package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

const updateInterval = 50 * time.Millisecond

// Spinner shows indeterminate progress while targets are collected.
// All methods are no-ops when disabled, so callers never branch.
type Spinner struct {
	bar *progressbar.ProgressBar
}

// NewSpinner creates a spinner writing to stderr, or an inert one when
// enabled is false.
func NewSpinner(enabled bool) *Spinner {
	if !enabled {
		return &Spinner{}
	}

	return &Spinner{bar: progressbar.NewOptions(-1,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionThrottle(updateInterval),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionSetElapsedTime(false),
	)}
}

// Describe updates the spinner label.
func (s *Spinner) Describe(st fmt.Stringer) {
	if s.bar != nil {
		s.bar.Describe(st.String())
	}
}

// Finish clears the spinner and prints a final summary line.
func (s *Spinner) Finish(st fmt.Stringer) {
	if s.bar != nil {
		_ = s.bar.Finish()
		fmt.Fprintln(os.Stderr, "✔ "+st.String())
	}
}
