package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hoffis/storecheck/internal/reconcile"
)

// RunRecord is one persisted reconciliation run.
type RunRecord struct {
	ID           uuid.UUID
	StoreBaseURL string
	StartedAt    time.Time
	FinishedAt   time.Time
	Clean        bool
	EntryCount   int
}

// RunRepository stores reconciliation run history so price drift can be
// traced back across suite executions.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a run repository on an open database connection.
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{
		db: db,
	}
}

// SaveRun persists a run and its report entries atomically and returns the
// generated run id.
func (r *RunRepository) SaveRun(storeBaseURL string, startedAt, finishedAt time.Time, report *reconcile.Report) (uuid.UUID, error) {
	runID := uuid.New()

	tx, err := r.db.Begin()
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO reconciliation_runs (id, store_base_url, started_at, finished_at, clean, entry_count)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, runID, storeBaseURL, startedAt, finishedAt, report.IsClean(), report.Len())
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert run: %w", err)
	}

	for position, entry := range report.Entries() {
		_, err = tx.Exec(`
			INSERT INTO reconciliation_entries (run_id, position, product_id, product_name, issue_kind, expected, actual, side, detail)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, runID, position, entry.ProductID, entry.ProductName, string(entry.Kind),
			entry.Expected, entry.Actual, string(entry.Side), entry.Detail)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert entry %d: %w", position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

// GetRun retrieves one persisted run by id.
func (r *RunRepository) GetRun(id uuid.UUID) (*RunRecord, error) {
	record := &RunRecord{}
	err := r.db.QueryRow(`
		SELECT id, store_base_url, started_at, finished_at, clean, entry_count
		FROM reconciliation_runs
		WHERE id = $1
	`, id).Scan(
		&record.ID,
		&record.StoreBaseURL,
		&record.StartedAt,
		&record.FinishedAt,
		&record.Clean,
		&record.EntryCount,
	)

	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return record, nil
}

// GetRunEntries retrieves a run's report entries in their original
// detection order.
func (r *RunRepository) GetRunEntries(id uuid.UUID) ([]reconcile.Entry, error) {
	rows, err := r.db.Query(`
		SELECT product_id, product_name, issue_kind, expected, actual, side, detail
		FROM reconciliation_entries
		WHERE run_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []reconcile.Entry
	for rows.Next() {
		var entry reconcile.Entry
		var kind, side string
		if err := rows.Scan(&entry.ProductID, &entry.ProductName, &kind,
			&entry.Expected, &entry.Actual, &side, &entry.Detail); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entry.Kind = reconcile.IssueKind(kind)
		entry.Side = reconcile.Side(side)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read entries: %w", err)
	}

	return entries, nil
}
