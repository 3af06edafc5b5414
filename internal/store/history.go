// To handle all database interactions around rename history. This is our
// data access layer, keeping SQL queries separate from business logic.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/tmalloy/bindery/internal/models"
)

// Store provides all functions to interact with the database.
type Store struct {
	db *sql.DB
}

// New creates a new Store instance.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// AddBatch records every rename of an applied batch in one transaction.
// Undo works on whole batches, so a partial insert would be worse than
// no insert at all.
func (s *Store) AddBatch(batchID, dir string, renames []models.RenameRecord) error {
	if len(renames) == 0 {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		"INSERT INTO rename_history (batch_id, dir, old_name, new_name, applied_at) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	for _, r := range renames {
		if _, err := stmt.Exec(batchID, dir, r.OldName, r.NewName, now); err != nil {
			return fmt.Errorf("failed to record rename %s -> %s: %w", r.OldName, r.NewName, err)
		}
	}
	return tx.Commit()
}

// LastBatch returns the records of the most recently applied batch, or
// an empty slice when the history is empty.
func (s *Store) LastBatch() ([]models.RenameRecord, error) {
	var batchID string
	err := s.db.QueryRow(
		"SELECT batch_id FROM rename_history ORDER BY id DESC LIMIT 1").Scan(&batchID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find last batch: %w", err)
	}
	return s.batchRecords(batchID)
}

func (s *Store) batchRecords(batchID string) ([]models.RenameRecord, error) {
	rows, err := s.db.Query(
		"SELECT id, batch_id, dir, old_name, new_name, applied_at FROM rename_history WHERE batch_id = ? ORDER BY id",
		batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query batch %s: %w", batchID, err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// History returns the most recent rename records, newest first.
func (s *Store) History(limit int) ([]models.RenameRecord, error) {
	rows, err := s.db.Query(
		"SELECT id, batch_id, dir, old_name, new_name, applied_at FROM rename_history ORDER BY id DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()
	return scanRecords(rows)
}

// DeleteBatch removes a batch from the history after it has been undone.
func (s *Store) DeleteBatch(batchID string) error {
	_, err := s.db.Exec("DELETE FROM rename_history WHERE batch_id = ?", batchID)
	if err != nil {
		return fmt.Errorf("failed to delete batch %s: %w", batchID, err)
	}
	return nil
}

func scanRecords(rows *sql.Rows) ([]models.RenameRecord, error) {
	var records []models.RenameRecord
	for rows.Next() {
		var r models.RenameRecord
		if err := rows.Scan(&r.ID, &r.BatchID, &r.Dir, &r.OldName, &r.NewName, &r.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rename record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
