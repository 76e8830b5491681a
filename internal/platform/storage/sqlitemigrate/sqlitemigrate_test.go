package sqlitemigrate

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func TestApplyRecordsEachFileOnce(t *testing.T) {
	db := openTestDB(t)
	migrations := fstest.MapFS{
		"migrations/001_courses.sql": {Data: []byte("-- +migrate Up\nCREATE TABLE courses(id INTEGER PRIMARY KEY);\n-- +migrate Down\nDROP TABLE courses;")},
		"migrations/002_seats.sql":   {Data: []byte("ALTER TABLE courses ADD COLUMN seats INTEGER NOT NULL DEFAULT 0;")},
	}

	for range 2 {
		if err := Apply(context.Background(), db, migrations, "migrations"); err != nil {
			t.Fatalf("apply: %v", err)
		}
	}

	if got := countRows(t, db, "SELECT COUNT(*) FROM schema_migrations"); got != 2 {
		t.Fatalf("recorded migrations = %d, want 2", got)
	}
	if _, err := db.Exec("INSERT INTO courses (id, seats) VALUES (1, 3)"); err != nil {
		t.Fatalf("expected migrated schema: %v", err)
	}
}

func TestApplyLeavesFailedMigrationUnrecorded(t *testing.T) {
	db := openTestDB(t)
	bad := fstest.MapFS{
		"001_bad.sql": {Data: []byte("CREAT TABLE courses(id INTEGER);")},
	}
	if err := Apply(context.Background(), db, bad, ""); err == nil {
		t.Fatal("expected bad migration to fail")
	}
	if got := countRows(t, db, "SELECT COUNT(*) FROM schema_migrations"); got != 0 {
		t.Fatalf("recorded migrations = %d, want 0", got)
	}

	fixed := fstest.MapFS{
		"001_bad.sql": {Data: []byte("CREATE TABLE courses(id INTEGER);")},
	}
	if err := Apply(context.Background(), db, fixed, ""); err != nil {
		t.Fatalf("apply fixed migration: %v", err)
	}
	if got := countRows(t, db, "SELECT COUNT(*) FROM schema_migrations"); got != 1 {
		t.Fatalf("recorded migrations = %d, want 1", got)
	}
}

func TestApplyToleratesPreexistingTable(t *testing.T) {
	db := openTestDB(t)
	if _, err := db.Exec("CREATE TABLE courses(id INTEGER PRIMARY KEY)"); err != nil {
		t.Fatalf("create table: %v", err)
	}
	migrations := fstest.MapFS{
		"001_courses.sql": {Data: []byte("CREATE TABLE courses(id INTEGER PRIMARY KEY);")},
	}
	if err := Apply(context.Background(), db, migrations, "."); err != nil {
		t.Fatalf("apply: %v", err)
	}
}

func TestApplyRequiresDB(t *testing.T) {
	if err := Apply(context.Background(), nil, fstest.MapFS{}, ""); err == nil {
		t.Fatal("expected nil db error")
	}
}

func TestLoadSortsAndSkipsNonSQL(t *testing.T) {
	migrations, err := Load(fstest.MapFS{
		"m/002_b.sql":   {Data: []byte("SELECT 2;")},
		"m/README.md":   {Data: []byte("docs")},
		"m/001_a.sql":   {Data: []byte("SELECT 1;")},
		"m/sub/003.sql": {Data: []byte("SELECT 3;")},
	}, "m")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	var names []string
	for _, m := range migrations {
		names = append(names, m.Name)
	}
	if got := strings.Join(names, ","); got != "m/001_a.sql,m/002_b.sql" {
		t.Fatalf("names = %s", got)
	}
}

func TestLoadMissingRoot(t *testing.T) {
	if _, err := Load(fstest.MapFS{}, "missing"); err == nil {
		t.Fatal("expected missing root error")
	}
}

func TestUpSection(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "no markers", content: "SELECT 1;", want: "SELECT 1;"},
		{name: "up only", content: "-- +migrate Up\nSELECT 1;", want: "\nSELECT 1;"},
		{name: "up and down", content: "-- +migrate Up\nSELECT 1;\n-- +migrate Down\nSELECT 2;", want: "\nSELECT 1;\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UpSection(tt.content); got != tt.want {
				t.Fatalf("UpSection() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsIdempotentDDLError(t *testing.T) {
	if !isIdempotentDDLError(errors.New("table courses already exists")) {
		t.Fatal("expected already exists to be idempotent")
	}
	if !isIdempotentDDLError(errors.New("duplicate column name: seats")) {
		t.Fatal("expected duplicate column to be idempotent")
	}
	if isIdempotentDDLError(errors.New("syntax error")) {
		t.Fatal("syntax error is not idempotent")
	}
}

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file::memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func countRows(t *testing.T, db *sql.DB, query string) int64 {
	t.Helper()
	var n int64
	if err := db.QueryRow(query).Scan(&n); err != nil {
		t.Fatalf("query %q: %v", query, err)
	}
	return n
}
