package services

import (
	"fmt"

	"github.com/custodia-labs/abacus-cli/internal/core/domain"
	"github.com/custodia-labs/abacus-cli/internal/core/ports/driven"
	"github.com/custodia-labs/abacus-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyTheme          = "display.theme"
	keyHistoryEnabled = "history.enabled"
	keyHistoryLimit   = "history.limit"
	keyHistoryBackend = "history.backend"
	keyMCPRateLimit   = "mcp.rate_limit"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current application settings.
// Missing or invalid values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Display: domain.DisplaySettings{
			Theme: s.getTheme(defaults.Display.Theme),
		},
		History: domain.HistorySettings{
			Enabled: s.getBool(keyHistoryEnabled, defaults.History.Enabled),
			Limit:   s.getPositiveInt(keyHistoryLimit, defaults.History.Limit),
			Backend: s.getHistoryBackend(defaults.History.Backend),
		},
		MCP: domain.MCPSettings{
			RateLimit: s.getPositiveInt(keyMCPRateLimit, defaults.MCP.RateLimit),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if err := s.configStore.Set(keyTheme, settings.Display.Theme.String()); err != nil {
		return fmt.Errorf("save theme: %w", err)
	}
	if err := s.configStore.Set(keyHistoryEnabled, settings.History.Enabled); err != nil {
		return fmt.Errorf("save history enabled: %w", err)
	}
	if err := s.configStore.Set(keyHistoryLimit, settings.History.Limit); err != nil {
		return fmt.Errorf("save history limit: %w", err)
	}
	if err := s.configStore.Set(keyHistoryBackend, settings.History.Backend.String()); err != nil {
		return fmt.Errorf("save history backend: %w", err)
	}
	if err := s.configStore.Set(keyMCPRateLimit, settings.MCP.RateLimit); err != nil {
		return fmt.Errorf("save mcp rate_limit: %w", err)
	}
	return nil
}

// SetTheme updates the TUI theme.
func (s *SettingsService) SetTheme(theme domain.Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("%w: theme %q", domain.ErrUnsupportedType, theme)
	}
	return s.configStore.Set(keyTheme, theme.String())
}

// SetHistoryEnabled turns history recording on or off.
func (s *SettingsService) SetHistoryEnabled(enabled bool) error {
	return s.configStore.Set(keyHistoryEnabled, enabled)
}

// SetHistoryLimit sets the maximum number of history entries.
func (s *SettingsService) SetHistoryLimit(limit int) error {
	if limit <= 0 {
		return fmt.Errorf("%w: history limit must be positive, got %d", domain.ErrInvalidInput, limit)
	}
	return s.configStore.Set(keyHistoryLimit, limit)
}

// SetHistoryBackend selects where history is stored.
// Takes effect on the next start.
func (s *SettingsService) SetHistoryBackend(backend domain.HistoryBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: history backend %q", domain.ErrUnsupportedType, backend)
	}
	return s.configStore.Set(keyHistoryBackend, backend.String())
}

// Validate checks the raw stored values, reporting the first one that
// Get would silently replace with a default.
func (s *SettingsService) Validate() error {
	if val := s.configStore.GetString(keyTheme); val != "" && !domain.Theme(val).IsValid() {
		return fmt.Errorf("invalid theme: %s", val)
	}
	if val := s.configStore.GetString(keyHistoryBackend); val != "" && !domain.HistoryBackend(val).IsValid() {
		return fmt.Errorf("invalid history backend: %s", val)
	}
	if _, ok := s.configStore.Get(keyHistoryLimit); ok && s.configStore.GetInt(keyHistoryLimit) <= 0 {
		return fmt.Errorf("invalid history limit: must be a positive integer")
	}
	if _, ok := s.configStore.Get(keyMCPRateLimit); ok && s.configStore.GetInt(keyMCPRateLimit) <= 0 {
		return fmt.Errorf("invalid mcp rate limit: must be a positive integer")
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getTheme(defaultVal domain.Theme) domain.Theme {
	theme := domain.Theme(s.configStore.GetString(keyTheme))
	if !theme.IsValid() {
		return defaultVal
	}
	return theme
}

func (s *SettingsService) getHistoryBackend(defaultVal domain.HistoryBackend) domain.HistoryBackend {
	backend := domain.HistoryBackend(s.configStore.GetString(keyHistoryBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
