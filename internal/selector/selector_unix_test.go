//go:build unix

package selector

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSymlinksNeverSelected verifies symlinks are neither selected as
// units nor traversed through, whether they point at files or dirs.
func TestSymlinksNeverSelected(t *testing.T) {
	root := t.TempDir()

	target := filepath.Join(root, "real.txt")
	createFile(t, target, 10)

	dirTarget := filepath.Join(root, "realdir")
	createFile(t, filepath.Join(dirTarget, "inner"), 10)

	require.NoError(t, os.Symlink(target, filepath.Join(root, "filelink")))
	require.NoError(t, os.Symlink(dirTarget, filepath.Join(root, "dirlink")))

	units := collect(t, root, 3, nil)

	assert.ElementsMatch(t, []string{
		target,
		filepath.Join(dirTarget, "inner"),
	}, units)
}

// TestUnreadableSubtreeSkipped verifies access errors skip the subtree
// without failing the collection.
func TestUnreadableSubtreeSkipped(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("skipping permission test when running as root")
	}

	root := t.TempDir()
	createFile(t, filepath.Join(root, "ok", "f"), 1)

	locked := filepath.Join(root, "locked")
	require.NoError(t, os.Mkdir(locked, 0o000))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	units := collect(t, root, 2, nil)

	assert.Contains(t, units, filepath.Join(root, "ok", "f"))
	for _, u := range units {
		assert.NotContains(t, u, locked+string(filepath.Separator))
	}
}
