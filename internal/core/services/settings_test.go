package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/abacus-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/abacus-cli/internal/core/domain"
)

// failingConfigStore rejects every Set.
type failingConfigStore struct {
	*memory.ConfigStore
	err error
}

func (f *failingConfigStore) Set(_ string, _ any) error {
	return f.err
}

func TestNewSettingsService(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	require.NotNil(t, service)
}

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultAppSettings(), *settings)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("display.theme", "light")
	_ = store.Set("history.enabled", false)
	_ = store.Set("history.limit", int64(5))
	_ = store.Set("history.backend", "memory")
	_ = store.Set("mcp.rate_limit", 3)

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	assert.Equal(t, domain.ThemeLight, settings.Display.Theme)
	assert.False(t, settings.History.Enabled)
	assert.Equal(t, 5, settings.History.Limit)
	assert.Equal(t, domain.HistoryBackendMemory, settings.History.Backend)
	assert.Equal(t, 3, settings.MCP.RateLimit)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("display.theme", "neon")
	_ = store.Set("history.limit", -4)
	_ = store.Set("history.backend", "postgres")
	_ = store.Set("mcp.rate_limit", 0)

	service := NewSettingsService(store)

	settings, err := service.Get()

	require.NoError(t, err)
	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Display.Theme, settings.Display.Theme)
	assert.Equal(t, defaults.History.Limit, settings.History.Limit)
	assert.Equal(t, defaults.History.Backend, settings.History.Backend)
	assert.Equal(t, defaults.MCP.RateLimit, settings.MCP.RateLimit)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	want := domain.AppSettings{
		Display: domain.DisplaySettings{Theme: domain.ThemeMono},
		History: domain.HistorySettings{Enabled: false, Limit: 12, Backend: domain.HistoryBackendMemory},
		MCP:     domain.MCPSettings{RateLimit: 7},
	}
	require.NoError(t, service.Save(&want))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, want, *got)
	assert.Equal(t, "mono", store.GetString("display.theme"))
}

func TestSettingsService_Save_StoreError(t *testing.T) {
	storeErr := errors.New("disk full")
	service := NewSettingsService(&failingConfigStore{ConfigStore: memory.NewConfigStore(), err: storeErr})

	defaults := domain.DefaultAppSettings()
	err := service.Save(&defaults)

	assert.ErrorIs(t, err, storeErr)
	assert.Contains(t, err.Error(), "save theme")
}

func TestSettingsService_SetTheme(t *testing.T) {
	tests := []struct {
		name    string
		theme   domain.Theme
		wantErr error
	}{
		{name: "dark", theme: domain.ThemeDark},
		{name: "light", theme: domain.ThemeLight},
		{name: "mono", theme: domain.ThemeMono},
		{name: "unknown", theme: domain.Theme("neon"), wantErr: domain.ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			service := NewSettingsService(store)

			err := service.SetTheme(tt.theme)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, store.GetString("display.theme"))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, string(tt.theme), store.GetString("display.theme"))
		})
	}
}

func TestSettingsService_SetHistoryEnabled(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.SetHistoryEnabled(false))

	settings, err := service.Get()
	require.NoError(t, err)
	assert.False(t, settings.History.Enabled)
}

func TestSettingsService_SetHistoryLimit(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetHistoryLimit(3))
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 3, settings.History.Limit)

	assert.ErrorIs(t, service.SetHistoryLimit(0), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.SetHistoryLimit(-1), domain.ErrInvalidInput)
}

func TestSettingsService_SetHistoryBackend(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.SetHistoryBackend(domain.HistoryBackendMemory))
	assert.Equal(t, "memory", store.GetString("history.backend"))

	err := service.SetHistoryBackend(domain.HistoryBackend("redis"))
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestSettingsService_Validate(t *testing.T) {
	tests := []struct {
		name    string
		values  map[string]any
		wantErr string
	}{
		{name: "empty config", values: map[string]any{}},
		{name: "valid config", values: map[string]any{
			"display.theme": "light", "history.limit": 10, "history.backend": "sqlite", "mcp.rate_limit": 1,
		}},
		{name: "bad theme", values: map[string]any{"display.theme": "neon"}, wantErr: "invalid theme"},
		{name: "bad backend", values: map[string]any{"history.backend": "redis"}, wantErr: "invalid history backend"},
		{name: "bad limit", values: map[string]any{"history.limit": 0}, wantErr: "invalid history limit"},
		{name: "bad rate limit", values: map[string]any{"mcp.rate_limit": -2}, wantErr: "invalid mcp rate limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := memory.NewConfigStore()
			for k, v := range tt.values {
				require.NoError(t, store.Set(k, v))
			}
			service := NewSettingsService(store)

			err := service.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
