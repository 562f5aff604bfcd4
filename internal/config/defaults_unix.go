//go:build !windows

package config

// DefaultRoot is the tree scanned when no root argument is given.
const DefaultRoot = "/"

// DefaultExclusions returns virtual and volatile filesystems that are
// either unmeasurable or meaningless to rank by size.
func DefaultExclusions() []string {
	return []string{
		"/proc",
		"/sys",
		"/dev",
		"/run",
	}
}
