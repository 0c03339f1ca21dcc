package migrations_test

import (
	"context"
	"database/sql"
	"testing"
	"testing/fstest"

	"github.com/msomdec/house-rentals/internal/migrations"
	_ "modernc.org/sqlite"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"001_create_things.sql": {Data: []byte(`CREATE TABLE things (id INTEGER PRIMARY KEY, name TEXT NOT NULL);`)},
		"002_add_color.sql":     {Data: []byte(`ALTER TABLE things ADD COLUMN color TEXT NOT NULL DEFAULT '';`)},
		"README.md":             {Data: []byte("not a migration")},
	}
}

func openMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	// :memory: databases are per-connection.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunMigrations(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()

	if err := migrations.Run(ctx, db, testFS(), migrations.SQLite); err != nil {
		t.Fatalf("first migration run: %v", err)
	}

	// Both files must have applied, in order.
	_, err := db.ExecContext(ctx, "INSERT INTO things (name, color) VALUES (?, ?)", "lamp", "red")
	if err != nil {
		t.Fatalf("insert into things: %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 migrations recorded, got %d", count)
	}
}

func TestRunMigrationsIdempotent(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()

	if err := migrations.Run(ctx, db, testFS(), migrations.SQLite); err != nil {
		t.Fatalf("first run: %v", err)
	}
	if err := migrations.Run(ctx, db, testFS(), migrations.SQLite); err != nil {
		t.Fatalf("second run (idempotent): %v", err)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 migration records, got %d", count)
	}
}

func TestRunMigrationsFailureRollsBack(t *testing.T) {
	db := openMemoryDB(t)
	ctx := context.Background()

	fsys := fstest.MapFS{
		"001_ok.sql":     {Data: []byte(`CREATE TABLE ok (id INTEGER PRIMARY KEY);`)},
		"002_broken.sql": {Data: []byte(`CREATE TABLE broken (id INTEGER PRIMARY KEY`)},
	}

	if err := migrations.Run(ctx, db, fsys, migrations.SQLite); err == nil {
		t.Fatal("expected error from broken migration")
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
		t.Fatalf("count schema_migrations: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected only the first migration recorded, got %d", count)
	}
}
