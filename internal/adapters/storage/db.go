package storage

import (
	"database/sql"
	"fmt"
)

// InitDB initializes the database schema for the SQLite backend.
// PRE: db is a valid database connection
// POST: the event table exists; WAL mode is enabled
func InitDB(db *sql.DB) error {
	// WAL keeps readers from blocking the single writer.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// position carries the record order that the JSON backend gets for free
	// from slice order. It is contractual: list output and the persisted
	// order after a date sort both follow it.
	schema := `
	CREATE TABLE IF NOT EXISTS event (
		id INTEGER PRIMARY KEY,
		title TEXT NOT NULL,
		importance TEXT NOT NULL,
		date TEXT NOT NULL,
		completed INTEGER NOT NULL DEFAULT 0,
		position INTEGER NOT NULL
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}
