package database

import (
	"database/sql"
	"fmt"
	"log"
)

// RunMigrations creates the run-history tables.
func RunMigrations(db *sql.DB) error {
	if db == nil {
		return fmt.Errorf("database connection not initialized")
	}

	createRunTables := `
	CREATE TABLE IF NOT EXISTS reconciliation_runs (
		id UUID PRIMARY KEY,
		store_base_url VARCHAR(255) NOT NULL,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP NOT NULL,
		clean BOOLEAN NOT NULL,
		entry_count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS reconciliation_entries (
		id SERIAL PRIMARY KEY,
		run_id UUID NOT NULL REFERENCES reconciliation_runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		product_id VARCHAR(64) NOT NULL,
		product_name VARCHAR(255),
		issue_kind VARCHAR(32) NOT NULL,
		expected VARCHAR(64),
		actual VARCHAR(64),
		side VARCHAR(16),
		detail TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_entries_run ON reconciliation_entries(run_id);
	CREATE INDEX IF NOT EXISTS idx_runs_started ON reconciliation_runs(started_at);
	`

	_, err := db.Exec(createRunTables)
	if err != nil {
		return fmt.Errorf("failed to create run tables: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}
