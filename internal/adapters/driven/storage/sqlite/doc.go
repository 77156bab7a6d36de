// Package sqlite keeps the history tape in ~/.abacus/data/abacus.db.
//
// It uses modernc.org/sqlite, so the binary stays CGO free. The database
// runs in WAL mode with a busy timeout, which lets `abacus tui` and
// `abacus mcp serve` record calculations into the same file at once.
//
// # Schema
//
// Tables are created by the numbered files in migrations/. Store applies
// every .up.sql newer than the highest row in schema_migrations, one
// transaction per file. History rows carry an autoincrement seq column;
// listing and trimming order by seq so entries written within the same
// clock tick keep their insertion order.
package sqlite
