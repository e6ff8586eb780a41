// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

// Archive extensions recognised when mounting a file into the search path.
// Multi-part extensions must be listed before their suffixes.
const (
	ExtTarGz  = ".tar.gz"
	ExtTarZst = ".tar.zst"
	ExtTgz    = ".tgz"
	ExtTzst   = ".tzst"
	ExtTar    = ".tar"
	ExtZip    = ".zip"
)
