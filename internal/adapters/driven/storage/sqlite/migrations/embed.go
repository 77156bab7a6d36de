// Package migrations holds the numbered SQL files applied by the SQLite store.
// Only .up.sql files are run; .down.sql files document how to revert by hand.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
