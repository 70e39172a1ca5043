package migrations

import (
	"database/sql"
	"fmt"
)

// InitSchema creates the archive tables if they do not exist yet.
func InitSchema(db *sql.DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS students (
			roll integer PRIMARY KEY,
			name text NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS marks (
			roll integer NOT NULL REFERENCES students (roll) ON DELETE CASCADE,
			subject text NOT NULL,
			score double precision NOT NULL,
			PRIMARY KEY (roll, subject)
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating archive tables: %w", err)
		}
	}

	return nil
}
