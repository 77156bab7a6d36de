package driven

import "context"

// ConfigStore is the key/value view of ~/.abacus/config.toml.
// Keys use dot notation matching the TOML tables, e.g. "history.limit".
// Typed getters return the zero value for missing or mistyped keys, so
// SettingsService falls back to domain defaults.
type ConfigStore interface {
	// Get returns the raw value and whether the key is set.
	Get(key string) (any, bool)

	// GetString returns a string value, e.g. "display.theme".
	GetString(key string) string

	// GetInt returns an integer value, e.g. "history.limit".
	// TOML integers decode as int64; implementations normalise them.
	GetInt(key string) int

	// GetBool returns a boolean value, e.g. "history.enabled".
	GetBool(key string) bool

	// Set stores a value and persists it immediately.
	Set(key string, value any) error

	// Save writes the current values back to storage.
	Save() error

	// Load replaces the current values with what is in storage.
	Load() error

	// Path returns the config file location. Stores that are not file
	// backed return a descriptive placeholder such as ":memory:".
	Path() string
}

// ConfigWatcher reports configuration changes made outside the process,
// e.g. the user editing config.toml while the TUI is open.
type ConfigWatcher interface {
	// Watch reloads the configuration and calls onChange after every
	// change until ctx is cancelled. It blocks.
	Watch(ctx context.Context, onChange func()) error
}
