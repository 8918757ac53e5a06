package migration

import (
	"database/sql"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"001_init.sql": &fstest.MapFile{
			Data: []byte("CREATE TABLE things (id TEXT PRIMARY KEY);"),
		},
		"002_add_name.sql": &fstest.MapFile{
			Data: []byte("ALTER TABLE things ADD COLUMN name TEXT NOT NULL DEFAULT '';"),
		},
	}
}

func TestApply(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, testFS())

	var messages []string
	count, err := runner.Apply(func(msg string) { messages = append(messages, msg) })
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if count != 2 {
		t.Errorf("applied %d migrations, want 2", count)
	}
	if len(messages) == 0 {
		t.Error("no progress messages logged")
	}

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}

	// The migrated schema is usable.
	if _, err := db.Exec("INSERT INTO things (id, name) VALUES ('a', 'b')"); err != nil {
		t.Errorf("migrated schema rejected insert: %v", err)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, testFS())

	if _, err := runner.Apply(nil); err != nil {
		t.Fatalf("first Apply failed: %v", err)
	}
	count, err := runner.Apply(nil)
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}
	if count != 0 {
		t.Errorf("second Apply ran %d migrations, want 0", count)
	}
}

func TestApplyPartialUpgrade(t *testing.T) {
	db := openTestDB(t)

	// Start at version 1, then add a second migration file.
	first := fstest.MapFS{"001_init.sql": testFS()["001_init.sql"]}
	if _, err := NewRunner(db, first).Apply(nil); err != nil {
		t.Fatalf("initial Apply failed: %v", err)
	}

	count, err := NewRunner(db, testFS()).Apply(nil)
	if err != nil {
		t.Fatalf("upgrade Apply failed: %v", err)
	}
	if count != 1 {
		t.Errorf("upgrade ran %d migrations, want 1", count)
	}
}

func TestValidateVersionRejectsNewerSchema(t *testing.T) {
	db := openTestDB(t)
	runner := NewRunner(db, testFS())
	if _, err := runner.Apply(nil); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	// Simulate a database written by a newer build.
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("failed to bump version: %v", err)
	}
	if err := runner.ValidateVersion(); err == nil {
		t.Error("ValidateVersion accepted a newer schema")
	}
}

func TestLoadRejectsBadFilenames(t *testing.T) {
	db := openTestDB(t)

	bad := fstest.MapFS{
		"init.sql": &fstest.MapFile{Data: []byte("SELECT 1;")},
	}
	if _, err := NewRunner(db, bad).Load(); err == nil {
		t.Error("filename without version accepted")
	}

	dup := testFS()
	dup["001_duplicate.sql"] = &fstest.MapFile{Data: []byte("SELECT 1;")}
	if _, err := NewRunner(db, dup).Load(); err == nil {
		t.Error("duplicate version accepted")
	}
}

func TestFreshDatabaseIsVersionZero(t *testing.T) {
	db := openTestDB(t)
	version, err := NewRunner(db, testFS()).CurrentVersion()
	if err != nil {
		t.Fatalf("CurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("fresh database version = %d, want 0", version)
	}
}
