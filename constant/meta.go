// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// App is the canonical application identifier used for filesystem paths and CLI branding.
	App = "ymd"

	// Name is the human readable product name.
	Name = "YMD3"

	// Version is the host application version exposed to callers and to extraction programs.
	Version = "3.0.0"

	// Repository is the GitHub repository releases are published to.
	Repository = "natty-misc/ymd3"

	// UserAgent is the default HTTP User-Agent string used by the fetch bridge.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Build metadata, overridden through -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
