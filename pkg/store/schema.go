package store

import (
	"database/sql"
	"fmt"
)

// SchemaVersion is the current cache schema version.
const SchemaVersion = 1

// createSchema creates the database schema if it doesn't exist.
func createSchema(db *sql.DB) error {
	if err := createSchemaVersionTable(db); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	if err := createOwnersTable(db); err != nil {
		return fmt.Errorf("creating owners table: %w", err)
	}

	return nil
}

func createSchemaVersionTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`)
	if err != nil {
		return err
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM schema_version").Scan(&count); err != nil {
		return err
	}

	if count == 0 {
		_, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", SchemaVersion)
		return err
	}

	return nil
}

func createOwnersTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS owners (
			owner TEXT PRIMARY KEY NOT NULL,
			status TEXT NOT NULL,
			checked_at INTEGER NOT NULL
		)
	`)
	return err
}
