// Package driven defines the interfaces the core calls out to.
//
// # Required
//
//   - ConfigStore: settings storage (TOML file, or memory in tests)
//
// # Optional
//
//   - ConfigWatcher: reports edits to the config file while running
//   - HistoryStore: the tape of completed calculations. Without a
//     history service nothing is recorded, and the calculator is unaffected.
//
// Adapters implement these; this package imports only domain.
package driven
