// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Download Pipeline - these keys govern the acquisition pipeline's output and selection defaults.
const (
	DownloadsDir      = "downloads.dir"
	DownloadsQuality  = "downloads.quality"
	DownloadsLanguage = "downloads.language"
)

// Network Stack - these keys configure the per-service HTTP sessions built by the host.
const (
	NetworkProxy       = "network.proxy"
	NetworkImpersonate = "network.impersonate"
	NetworkUserAgent   = "network.user_agent"
)

// Credential Sourcing - these keys control where per-service credentials are read from.
const (
	CredentialsKeyring = "credentials.keyring"
	// CredentialsPrefix scopes inline "user:pass" entries, e.g. credentials.EXMP.
	CredentialsPrefix = "credentials"
)

// DRM Handling - these keys manage Widevine certificate and license behavior.
const (
	DRMCacheCertificates = "drm.cache_certificates"
)

// Cache Behavior - these keys control the host's keyed response cache.
const (
	CacheEnable = "cache.enable"
)

// History Tracking - these keys configure the persistence of acquisition records.
const (
	HistorySaveOnAcquire = "history.save_on_acquire"
)

// Search Interaction - these keys define the UX parameters for title discovery.
const (
	SearchShowQuerySuggestions = "search.show_query_suggestions"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys style the interactive title picker.
const (
	TUIItemSpacing        = "tui.item_spacing"
	TUISearchPromptString = "tui.search_prompt"
	TUIShowIDs            = "tui.show_ids"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these settings govern non-interactive application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
