package migrations

import "embed"

// FS contains embedded SQLite migrations for course storage.
//
//go:embed *.sql
var FS embed.FS
