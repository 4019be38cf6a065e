package repositories

import (
	"database/sql"
	"fmt"
)

// DDL kept to types both SQLite and Postgres accept, so one schema serves
// the local and the hosted store.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS trips (
		trip_id     TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		start_clock TEXT NOT NULL,
		end_clock   TEXT NOT NULL,
		mode        TEXT NOT NULL,
		start_lat   REAL,
		start_lng   REAL
	);`,
	`CREATE TABLE IF NOT EXISTS stops (
		trip_id      TEXT NOT NULL,
		position     INTEGER NOT NULL,
		stop_id      TEXT NOT NULL,
		name         TEXT NOT NULL,
		lat          REAL NOT NULL,
		lng          REAL NOT NULL,
		category     TEXT NOT NULL DEFAULT '',
		indoor       INTEGER NOT NULL DEFAULT 0,
		address      TEXT NOT NULL DEFAULT '',
		duration_min INTEGER NOT NULL,
		locked       INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (trip_id, position)
	);`,
	`CREATE TABLE IF NOT EXISTS itinerary_versions (
		trip_id          TEXT NOT NULL,
		version          INTEGER NOT NULL,
		itinerary_id     TEXT NOT NULL,
		items            TEXT NOT NULL,
		total_travel_min INTEGER NOT NULL,
		created_at       TEXT NOT NULL,
		PRIMARY KEY (trip_id, version)
	);`,
}

// InitSchema creates the tables if they do not exist yet.
func InitSchema(db *sql.DB) error {
	for _, stmt := range schemaStatements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}
	return nil
}
