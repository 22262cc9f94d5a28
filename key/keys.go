// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Script Storage - these keys locate extraction programs and select defaults.
const (
	ScriptsPath      = "scripts.path"
	ScriptsDefault   = "scripts.default"
	ScriptsBootstrap = "scripts.bootstrap"
)

// Fetch Bridge - these keys tune the single network primitive exposed to programs.
const (
	FetchTimeout     = "fetch.timeout"
	FetchFingerprint = "fetch.fingerprint"
	FetchUserAgent   = "fetch.user_agent"
)

// Extraction - batch execution parameters.
const (
	ExtractWorkers = "extract.workers"
)

// History Tracking - these keys configure the persistence of completed extractions.
const (
	HistorySave = "history.save"
)

// Iconography - these keys manage the visual rendering of CLI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern the command-line behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
