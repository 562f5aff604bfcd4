package exclude

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExcludedExactMatch(t *testing.T) {
	sep := string(filepath.Separator)
	prefix := filepath.Join(sep, "windows")

	l := New([]string{prefix})

	assert.True(t, l.Excluded(prefix))
}

func TestExcludedDescendant(t *testing.T) {
	sep := string(filepath.Separator)
	prefix := filepath.Join(sep, "windows")

	l := New([]string{prefix})

	assert.True(t, l.Excluded(filepath.Join(prefix, "system32")))
	assert.True(t, l.Excluded(filepath.Join(prefix, "system32", "foo.txt")))
}

func TestExcludedRequiresSeparatorBoundary(t *testing.T) {
	sep := string(filepath.Separator)

	l := New([]string{filepath.Join(sep, "windows")})

	// A sibling that merely shares the prefix string is not excluded.
	assert.False(t, l.Excluded(filepath.Join(sep, "windowsish")))
	assert.False(t, l.Excluded(filepath.Join(sep, "windowsish", "foo.txt")))
}

func TestExcludedCaseInsensitive(t *testing.T) {
	sep := string(filepath.Separator)

	l := New([]string{filepath.Join(sep, "Windows")})

	assert.True(t, l.Excluded(filepath.Join(sep, "WINDOWS", "Temp")))
	assert.True(t, l.Excluded(filepath.Join(sep, "windows")))
}

func TestExcludedNormalizesDotSegments(t *testing.T) {
	sep := string(filepath.Separator)

	l := New([]string{filepath.Join(sep, "windows")})

	// Built by concatenation so the dot segments survive until Excluded.
	dotted := sep + "usr" + sep + ".." + sep + "windows" + sep + "." + sep + "temp"
	assert.True(t, l.Excluded(dotted))
}

func TestNotExcluded(t *testing.T) {
	sep := string(filepath.Separator)

	l := New([]string{filepath.Join(sep, "windows"), filepath.Join(sep, "recovery")})

	assert.False(t, l.Excluded(filepath.Join(sep, "users", "me", "stuff")))
}

func TestEmptyListExcludesNothing(t *testing.T) {
	var l List

	assert.False(t, l.Excluded(string(filepath.Separator)))
	assert.Equal(t, 0, l.Len())
}
