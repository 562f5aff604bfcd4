// Package exclude implements the static path denylist.
//
// Matching is prefix-based over normalized, case-folded paths: a path is
// excluded when it equals a denylisted prefix or sits anywhere beneath one.
// Normalization failures fail closed - an ambiguous path is never traversed.
package exclude

import (
	"path/filepath"
	"strings"
)

// List is an immutable set of denylisted absolute path prefixes.
// Build it once at startup with New; the zero value excludes nothing.
type List struct {
	prefixes []string
}

// New builds a List from absolute path prefixes. Prefixes are normalized
// and case-folded at construction so Excluded does no repeated work.
// Entries that cannot be normalized are dropped.
func New(prefixes []string) List {
	normalized := make([]string, 0, len(prefixes))

	for _, p := range prefixes {
		n, err := normalize(p)
		if err != nil {
			continue
		}
		normalized = append(normalized, n)
	}

	return List{prefixes: normalized}
}

// Len returns the number of active denylist entries.
func (l List) Len() int { return len(l.prefixes) }

// Excluded reports whether path equals or descends from any denylisted
// prefix. Comparison is case-insensitive on the normalized form. If the
// path cannot be normalized it is treated as excluded.
func (l List) Excluded(path string) bool {
	p, err := normalize(path)
	if err != nil {
		return true
	}

	for _, prefix := range l.prefixes {
		if p == prefix {
			return true
		}
		// Descendant check requires a separator boundary so that
		// /Windows does not exclude /Windowsish.
		if strings.HasPrefix(p, prefix+string(filepath.Separator)) {
			return true
		}
	}

	return false
}

// normalize resolves "." and ".." segments, converts to an absolute
// native-separator path and lowercases for case-insensitive comparison.
func normalize(path string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", err
	}

	return strings.ToLower(abs), nil
}
