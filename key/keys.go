// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Resource Resolution - these keys describe the search path and write directory applied on startup.
const (
	ResourcesSearchPath = "resources.search_path"
	ResourcesWriteDir   = "resources.write_dir"
	ResourcesMountBase  = "resources.mount_base"
)

// Browser - these keys configure the interactive namespace browser.
const (
	BrowsePreviewBytes = "browse.preview_bytes"
	BrowseShowSizes    = "browse.show_sizes"
)

// External Applications - these keys select the host program files are handed to.
const (
	OpenApp = "open.app"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern the non-interactive application behavior.
const (
	CliColored = "cli.colored"
)
