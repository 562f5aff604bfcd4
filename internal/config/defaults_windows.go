//go:build windows

package config

// DefaultRoot is the drive scanned when no root argument is given.
const DefaultRoot = `C:\`

// DefaultExclusions returns the system paths never worth measuring:
// OS directories, the recycle bin, paging/hibernation files and the
// recovery partition.
func DefaultExclusions() []string {
	return []string{
		`C:\Windows`,
		`C:\ProgramData`,
		`C:\$Recycle.Bin`,
		`C:\System Volume Information`,
		`C:\Recovery`,
		`C:\pagefile.sys`,
		`C:\hiberfil.sys`,
	}
}
