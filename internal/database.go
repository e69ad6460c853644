package internal

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const createSessionsTableSQL = `
CREATE TABLE IF NOT EXISTS sessions (
	id INTEGER PRIMARY KEY,
	car_model TEXT NOT NULL,
	track_name TEXT NOT NULL,
	date_time TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%S', 'now', 'localtime')),
	best_lap_time INTEGER,
	theoretical_lap_time INTEGER
)`

const createLapsTableSQL = `
CREATE TABLE IF NOT EXISTS laps (
	id INTEGER PRIMARY KEY,
	session_id INTEGER,
	lap_number INTEGER NOT NULL,
	lap_time INTEGER NOT NULL,
	sector_1 INTEGER,
	sector_2 INTEGER,
	sector_3 INTEGER,
	cuts INTEGER,
	is_valid INTEGER,
	FOREIGN KEY (session_id) REFERENCES sessions (id)
)`

const createLapsIndexSQL = `CREATE INDEX IF NOT EXISTS idx_laps_session ON laps (session_id, lap_number)`

// OpenDatabase opens (creating if needed) the session database and applies the schema
func OpenDatabase(path string) (*sql.DB, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	if err := MigrateDatabase(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

// MigrateDatabase creates missing tables and upgrades databases that predate
// three-sector support
func MigrateDatabase(db *sql.DB) error {
	hasLaps, err := tableExists(db, "laps")
	if err != nil {
		return &StoreError{Op: "migrate", Err: err}
	}
	if hasLaps {
		hasSector3, err := columnExists(db, "laps", "sector_3")
		if err != nil {
			return &StoreError{Op: "migrate", Err: err}
		}
		if !hasSector3 {
			LogInfo("Adding sector_3 column to laps table")
			if _, err := db.Exec("ALTER TABLE laps ADD COLUMN sector_3 INTEGER"); err != nil {
				return &StoreError{Op: "migrate", Err: fmt.Errorf("failed to add sector_3 column: %w", err)}
			}
		}
	}

	for _, stmt := range []string{createSessionsTableSQL, createLapsTableSQL, createLapsIndexSQL} {
		if _, err := db.Exec(stmt); err != nil {
			return &StoreError{Op: "migrate", Err: err}
		}
	}
	return nil
}

func tableExists(db *sql.DB, table string) (bool, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("query failed: %w", err)
	}
	return count > 0, nil
}

func columnExists(db *sql.DB, table, column string) (bool, error) {
	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM pragma_table_info(?) WHERE name = ?", table, column).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("query failed: %w", err)
	}
	return count > 0, nil
}
