// Package sqlitemigrate applies embedded SQL migrations to a SQLite database.
//
// Migration files are applied in lexical order and recorded in
// schema_migrations so each file runs at most once. A file may carry a
// "-- +migrate Up" marker; only the text between it and an optional
// "-- +migrate Down" marker is executed.
package sqlitemigrate

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"
)

const (
	migrationTable = "schema_migrations"
	upMarker       = "-- +migrate Up"
	downMarker     = "-- +migrate Down"
)

// Migration is one SQL file ready to be applied.
type Migration struct {
	Name string
	SQL  string
}

// Load reads every .sql file under root, sorted by file name.
func Load(fsys fs.FS, root string) ([]Migration, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var migrations []Migration
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		name := path.Join(root, entry.Name())
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		migrations = append(migrations, Migration{Name: name, SQL: UpSection(string(content))})
	}
	slices.SortFunc(migrations, func(a, b Migration) int { return strings.Compare(a.Name, b.Name) })
	return migrations, nil
}

// Apply loads the migrations under root and applies the pending ones.
func Apply(ctx context.Context, db *sql.DB, fsys fs.FS, root string) error {
	if db == nil {
		return errors.New("sql db is required")
	}
	migrations, err := Load(fsys, root)
	if err != nil {
		return err
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS `+migrationTable+` (
    name TEXT PRIMARY KEY,
    applied_at INTEGER NOT NULL
)`); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}

	for _, m := range migrations {
		if err := applyOne(ctx, db, m); err != nil {
			return err
		}
	}
	return nil
}

func applyOne(ctx context.Context, db *sql.DB, m Migration) error {
	var found int
	err := db.QueryRowContext(ctx, "SELECT 1 FROM "+migrationTable+" WHERE name = ?", m.Name).Scan(&found)
	switch {
	case err == nil:
		return nil
	case !errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("check migration %s: %w", m.Name, err)
	}
	if strings.TrimSpace(m.SQL) == "" {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration %s: %w", m.Name, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, m.SQL); err != nil && !isIdempotentDDLError(err) {
		return fmt.Errorf("exec migration %s: %w", m.Name, err)
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO "+migrationTable+" (name, applied_at) VALUES (?, ?)",
		m.Name, time.Now().UTC().UnixMilli(),
	); err != nil {
		return fmt.Errorf("record migration %s: %w", m.Name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", m.Name, err)
	}
	return nil
}

// UpSection returns the part of content that should be executed.
func UpSection(content string) string {
	upIdx := strings.Index(content, upMarker)
	if upIdx == -1 {
		return content
	}
	body := content[upIdx+len(upMarker):]
	if downIdx := strings.Index(body, downMarker); downIdx != -1 {
		body = body[:downIdx]
	}
	return body
}

// isIdempotentDDLError reports DDL failures that mean the schema already has
// the object, e.g. a table recreated by hand before the ledger existed.
func isIdempotentDDLError(err error) bool {
	value := strings.ToLower(err.Error())
	return strings.Contains(value, "already exists") || strings.Contains(value, "duplicate column name")
}
