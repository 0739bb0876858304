package storage

import (
	"path/filepath"
	"testing"
)

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "gqlpath.db")

	db, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"runs", "bodies", "migrations"} {
		var name string
		err := db.QueryRow("SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		if err != nil {
			t.Errorf("table %s missing: %v", table, err)
		}
	}

	var fk int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&fk); err != nil || fk != 1 {
		t.Errorf("foreign keys not enabled (%d, %v)", fk, err)
	}
}

func TestMigrate_Idempotent(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()

	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate failed: %v", err)
	}

	names, err := Applied(db)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "001_runs.sql" {
		t.Errorf("Applied = %v", names)
	}
}

func TestOpen_Memory(t *testing.T) {
	db, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("INSERT INTO runs (id, root, target, schema_hash, created_at) VALUES ('a', 'Query', 'User', 'h', CURRENT_TIMESTAMP)"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
}
