package migrations

import "embed"

// FS contains embedded SQLite migrations for enrollment storage.
//
//go:embed *.sql
var FS embed.FS
