package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema.
// PRE: db is a valid database connection
// POST: All tables are created, WAL mode enabled
func InitDB(db *sql.DB) error {
	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	// Enable foreign key enforcement
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	// Create tables
	schema := `
	CREATE TABLE IF NOT EXISTS team (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		age_group TEXT NOT NULL DEFAULT 'all'
	);

	CREATE TABLE IF NOT EXISTS account (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		name TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		team_id TEXT,
		created_at TEXT NOT NULL,
		failed_logins INTEGER NOT NULL DEFAULT 0,
		locked_until TEXT,
		password_change_required INTEGER NOT NULL DEFAULT 0,
		FOREIGN KEY (team_id) REFERENCES team(id)
	);

	CREATE TABLE IF NOT EXISTS drill (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		duration_minutes INTEGER NOT NULL DEFAULT 0,
		video_url TEXT NOT NULL DEFAULT '',
		lab_urls TEXT NOT NULL DEFAULT '[]'
	);

	CREATE TABLE IF NOT EXISTS strategy (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		video_url TEXT NOT NULL DEFAULT '',
		lab_urls TEXT NOT NULL DEFAULT '[]'
	);

	CREATE TABLE IF NOT EXISTS practice_plan (
		id TEXT PRIMARY KEY,
		team_id TEXT,
		title TEXT NOT NULL,
		practice_date TEXT NOT NULL,
		duration_minutes INTEGER NOT NULL,
		notes TEXT NOT NULL DEFAULT '',
		drill_sequence TEXT NOT NULL DEFAULT '{}',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		FOREIGN KEY (team_id) REFERENCES team(id)
	);

	CREATE TABLE IF NOT EXISTS practice_template (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		age_group TEXT NOT NULL DEFAULT 'all',
		duration_minutes INTEGER NOT NULL,
		time_slots TEXT NOT NULL DEFAULT '[]',
		notes TEXT NOT NULL DEFAULT '',
		official INTEGER NOT NULL DEFAULT 0,
		created_by TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS editor_snapshot (
		key TEXT PRIMARY KEY,
		state TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}
