// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Vres is the canonical application identifier used for filesystem paths and CLI branding.
	Vres = "vres"

	// Version is the current application semantic version string.
	Version = "0.3.0"
)

// Build metadata, overridden at link time with -ldflags "-X".
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
