package domain

const unknownDescription = "Unknown"

// Theme selects the TUI colour palette.
type Theme string

// Available themes.
const (
	// ThemeDark is the default dark palette.
	ThemeDark Theme = "dark"

	// ThemeLight is for light terminal backgrounds.
	ThemeLight Theme = "light"

	// ThemeMono uses no colour, only weight and borders.
	ThemeMono Theme = "mono"
)

// IsValid returns true if the theme is recognised.
func (t Theme) IsValid() bool {
	switch t {
	case ThemeDark, ThemeLight, ThemeMono:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (t Theme) String() string {
	return string(t)
}

// Description returns a human-readable description of the theme.
func (t Theme) Description() string {
	switch t {
	case ThemeDark:
		return "Dark (default)"
	case ThemeLight:
		return "Light"
	case ThemeMono:
		return "Monochrome"
	default:
		return unknownDescription
	}
}

// HistoryBackend selects where the history tape is kept.
type HistoryBackend string

// Available history backends.
const (
	// HistoryBackendSQLite persists history to ~/.abacus/data/abacus.db.
	HistoryBackendSQLite HistoryBackend = "sqlite"

	// HistoryBackendMemory keeps history for the lifetime of the process.
	HistoryBackendMemory HistoryBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b HistoryBackend) IsValid() bool {
	return b == HistoryBackendSQLite || b == HistoryBackendMemory
}

// String returns the string representation.
func (b HistoryBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b HistoryBackend) Description() string {
	switch b {
	case HistoryBackendSQLite:
		return "SQLite (persistent)"
	case HistoryBackendMemory:
		return "Memory (per process)"
	default:
		return unknownDescription
	}
}

// DisplaySettings holds presentation preferences.
type DisplaySettings struct {
	// Theme is the TUI colour palette.
	Theme Theme
}

// HistorySettings holds history tape configuration.
type HistorySettings struct {
	// Enabled turns recording of completed calculations on or off.
	Enabled bool

	// Limit is the maximum number of entries kept. Older entries are trimmed.
	Limit int

	// Backend is where entries are stored.
	Backend HistoryBackend
}

// MCPSettings holds MCP server configuration.
type MCPSettings struct {
	// RateLimit is the number of tool calls accepted per second.
	RateLimit int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Display holds presentation settings.
	Display DisplaySettings

	// History holds history tape settings.
	History HistorySettings

	// MCP holds MCP server settings.
	MCP MCPSettings
}

// DefaultHistoryLimit is the default size of the history tape.
const DefaultHistoryLimit = 100

// DefaultMCPRateLimit is the default number of MCP tool calls per second.
const DefaultMCPRateLimit = 20

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Display: DisplaySettings{
			Theme: ThemeDark,
		},
		History: HistorySettings{
			Enabled: true,
			Limit:   DefaultHistoryLimit,
			Backend: HistoryBackendSQLite,
		},
		MCP: MCPSettings{
			RateLimit: DefaultMCPRateLimit,
		},
	}
}

// AllThemes returns all available themes.
func AllThemes() []Theme {
	return []Theme{ThemeDark, ThemeLight, ThemeMono}
}

// AllHistoryBackends returns all available history backends.
func AllHistoryBackends() []HistoryBackend {
	return []HistoryBackend{HistoryBackendSQLite, HistoryBackendMemory}
}
