// Package render prints progress and ranking snapshots to a terminal.
//
// The renderer is a pure presentation layer: it consumes ranked snapshots
// and the two progress counters, performs no computation of its own and
// never touches the store. Frames repaint in place with cursor-home and
// erase-line escape sequences; when the writer is not a terminal the live
// repainting is skipped and only the final snapshot should be printed.
package render

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/duhog/duhog/internal/store"
)

// ANSI escape sequences used for in-place repainting.
const (
	cursorHome  = "\033[H"
	eraseToEOL  = "\033[K"
	eraseScreen = "\033[2J"
)

const bytesPerGB = 1024.0 * 1024.0 * 1024.0

// Renderer formats ranking snapshots onto a writer.
type Renderer struct {
	w     io.Writer
	limit int
	live  bool
	drawn bool
}

// New creates a Renderer with the given display row limit. Escape
// sequences are emitted only when w is a terminal.
func New(w io.Writer, limit int) *Renderer {
	live := false
	if f, ok := w.(*os.File); ok {
		live = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return &Renderer{w: w, limit: limit, live: live}
}

// Live reports whether in-place frame repainting is available. When
// false, callers should render only the final snapshot.
func (r *Renderer) Live() bool { return r.live }

// Render paints one frame: the progress line followed by the ranking
// block. snapshot rows beyond the display limit are ignored; missing
// rows render as blank lines so a shrinking list leaves no residue.
func (r *Renderer) Render(snapshot []store.Result, completed, total int) {
	if r.live {
		if !r.drawn {
			fmt.Fprint(r.w, eraseScreen)
			r.drawn = true
		}

		fmt.Fprint(r.w, cursorHome)
	}

	percent := 0
	if total > 0 {
		percent = completed * 100 / total
	}

	fmt.Fprintf(r.w, "Progress: %d/%d (%d%%)\n\n", completed, total, percent)
	r.eraseLine()

	fmt.Fprintf(r.w, "=== Top %d Largest Files/Folders ===\n", r.limit)
	r.eraseLine()

	for i := 0; i < r.limit; i++ {
		if i < len(snapshot) {
			r.renderRow(i+1, snapshot[i])
		}

		fmt.Fprintln(r.w)
		r.eraseLine()
	}
}

// renderRow prints one ranking row without the trailing newline.
func (r *Renderer) renderRow(rank int, res store.Result) {
	if !res.Complete {
		fmt.Fprintf(r.w, "%d. %s : calculating...", rank, res.Path)

		return
	}

	mark := ""
	if res.Partial {
		mark = "+"
	}

	fmt.Fprintf(r.w, "%d. %s : %.2f GB%s (%.2f sec)",
		rank, res.Path, float64(res.Size)/bytesPerGB, mark, res.Elapsed.Seconds())
}

func (r *Renderer) eraseLine() {
	if r.live {
		fmt.Fprint(r.w, eraseToEOL)
	}
}
