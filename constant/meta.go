// Package constant defines immutable application-level identifiers and configuration defaults.
package constant

const (
	// Strand is the canonical application identifier used for filesystem paths and CLI branding.
	Strand = "strand"

	// Version is the current application semantic version string.
	Version = "0.1.0"

	// UserAgent is the default HTTP User-Agent string presented to service endpoints.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Build metadata injected at link time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)

// AsciiArtLogo is the application's ASCII art banner.
const AsciiArtLogo = `
         __                           __
   _____/ /__________ _____  ____ /  / /
  / ___/ __/ ___/ __ ` + "`" + `/ __ \/ __ ` + "`" + `/ / /
 (__  ) /_/ /  / /_/ / / / / /_/ / _  /
/____/\__/_/   \__,_/_/ /_/\__,_/ / /_/
`
