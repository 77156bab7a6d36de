// Package file stores abacus settings in ~/.abacus/config.toml.
//
// ConfigStore flattens TOML tables to dot keys ("history.limit") on load
// and nests them again on save. Watch follows the config directory with
// fsnotify so a running TUI picks up edits made in another editor.
package file
