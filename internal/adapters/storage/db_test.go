package storage

import (
	"context"
	"database/sql"
	"sort"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

// openTestDB creates an in-memory SQLite database for testing.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// :memory: gives each pooled connection its own database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

// getTableNames returns sorted table names from sqlite_master, excluding internal tables.
func getTableNames(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		t.Fatalf("failed to query sqlite_master: %v", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("failed to scan table name: %v", err)
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// expectedTables is the sorted list of tables after InitDB.
var expectedTables = []string{
	"account",
	"drill",
	"editor_snapshot",
	"practice_plan",
	"practice_template",
	"strategy",
	"team",
}

// TestInitDB_Fresh verifies the schema applies cleanly to an empty database.
func TestInitDB_Fresh(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB failed on fresh db: %v", err)
	}

	got := getTableNames(t, db)
	if len(got) != len(expectedTables) {
		t.Fatalf("got %d tables %v, want %d", len(got), got, len(expectedTables))
	}
	for i, want := range expectedTables {
		if got[i] != want {
			t.Errorf("table[%d] = %q, want %q", i, got[i], want)
		}
	}
}

// TestInitDB_Idempotent verifies running InitDB twice is safe.
func TestInitDB_Idempotent(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("first InitDB: %v", err)
	}
	if err := InitDB(db); err != nil {
		t.Fatalf("second InitDB: %v", err)
	}

	got := getTableNames(t, db)
	if len(got) != len(expectedTables) {
		t.Errorf("got %d tables after re-run, want %d", len(got), len(expectedTables))
	}
}

// TestInitDB_ForeignKeys verifies foreign key enforcement is on.
func TestInitDB_ForeignKeys(t *testing.T) {
	db := openTestDB(t)

	if err := InitDB(db); err != nil {
		t.Fatalf("InitDB: %v", err)
	}

	var enabled int
	if err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled); err != nil {
		t.Fatalf("query foreign_keys pragma: %v", err)
	}
	if enabled != 1 {
		t.Errorf("foreign_keys = %d, want 1", enabled)
	}

	// An account pointing at a missing team must be rejected.
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := db.ExecContext(context.Background(),
		"INSERT INTO account (id, email, role, team_id, created_at) VALUES (?, ?, ?, ?, ?)",
		"acct-1", "coach@example.com", "coach", "no-such-team", now)
	if err == nil {
		t.Error("insert with dangling team_id succeeded, want foreign key error")
	}
}
