// package repositories provides the persistence layer for the local run
// journal.
//
// The journal is optional: when no path is configured the update command
// keeps no local state at all.
package repositories

import (
	"database/sql"
	"fmt"

	"github.com/desertthunder/ctms-cli/internal/models"
	"github.com/desertthunder/ctms-cli/internal/shared"
)

// JournalRepository stores runs and their per-contact entries in SQLite.
type JournalRepository struct {
	db *sql.DB
}

// NewJournalRepository creates a new JournalRepository with the given database connection
func NewJournalRepository(db *sql.DB) *JournalRepository {
	return &JournalRepository{db: db}
}

// CreateRun inserts a run and all of its entries in a single transaction.
func (r *JournalRepository) CreateRun(run *models.Run, entries []models.RunEntry) error {
	if err := run.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (id, csv_path, updated, not_found, failed, started_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.CSVPath, run.Updated, run.NotFound, run.Failed, run.StartedAt, run.CompletedAt)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for i := range entries {
		entry := &entries[i]
		entry.RunID = run.ID
		if entry.Seq == 0 {
			entry.Seq = i + 1
		}
		if err := entry.Validate(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		_, err = tx.Exec(`
			INSERT INTO run_entries (run_id, seq, email_id, outcome, detail)
			VALUES (?, ?, ?, ?, ?)
		`, entry.RunID, entry.Seq, entry.EmailID, entry.Outcome, entry.Detail)
		if err != nil {
			return fmt.Errorf("failed to insert run entry: %w", err)
		}
	}

	return tx.Commit()
}

// GetRun retrieves a run and its entries in dispatch order.
func (r *JournalRepository) GetRun(id string) (*models.Run, []models.RunEntry, error) {
	run := &models.Run{}
	err := r.db.QueryRow(`
		SELECT id, csv_path, updated, not_found, failed, started_at, completed_at
		FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &run.CSVPath, &run.Updated, &run.NotFound, &run.Failed, &run.StartedAt, &run.CompletedAt)
	if err == sql.ErrNoRows {
		return nil, nil, fmt.Errorf("%w: %s", shared.ErrRunNotFound, id)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query run: %w", err)
	}

	rows, err := r.db.Query(`
		SELECT run_id, seq, email_id, outcome, detail
		FROM run_entries WHERE run_id = ? ORDER BY seq
	`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query run entries: %w", err)
	}
	defer rows.Close()

	var entries []models.RunEntry
	for rows.Next() {
		var entry models.RunEntry
		if err := rows.Scan(&entry.RunID, &entry.Seq, &entry.EmailID, &entry.Outcome, &entry.Detail); err != nil {
			return nil, nil, fmt.Errorf("failed to scan run entry: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to read run entries: %w", err)
	}

	return run, entries, nil
}

// ListRuns retrieves all recorded runs, most recent first.
func (r *JournalRepository) ListRuns() ([]models.Run, error) {
	rows, err := r.db.Query(`
		SELECT id, csv_path, updated, not_found, failed, started_at, completed_at
		FROM runs ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []models.Run
	for rows.Next() {
		var run models.Run
		if err := rows.Scan(&run.ID, &run.CSVPath, &run.Updated, &run.NotFound, &run.Failed, &run.StartedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read runs: %w", err)
	}

	return runs, nil
}
