package driving

import "github.com/custodia-labs/abacus-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetTheme updates the TUI theme.
	SetTheme(theme domain.Theme) error

	// SetHistoryEnabled turns history recording on or off.
	SetHistoryEnabled(enabled bool) error

	// SetHistoryLimit sets the maximum number of history entries.
	SetHistoryLimit(limit int) error

	// SetHistoryBackend selects where history is stored.
	SetHistoryBackend(backend domain.HistoryBackend) error

	// Validate checks that the stored settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
