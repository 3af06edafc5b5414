// This file executes a batch of renames. Renaming happens in two
// phases through temporary names, so a half-failed batch can be rolled
// back instead of leaving the directory in a mixed state. Applied
// batches are recorded in rename history for undo.

package library

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/tmalloy/bindery/internal/jobs"
	"github.com/tmalloy/bindery/internal/models"
	"github.com/tmalloy/bindery/internal/renamer"
	"github.com/tmalloy/bindery/internal/store"
)

// ApplyResult summarizes an executed batch.
type ApplyResult struct {
	BatchID string `json:"batch_id"`
	Renamed int    `json:"renamed"`
}

// Apply validates and executes every rename in the batch. Plans that
// keep their current name are skipped. On any failure the whole batch
// is rolled back and nothing is recorded.
func Apply(ctx jobs.JobContext, dir string, batch models.Batch) (*ApplyResult, error) {
	jobId := "rename-apply"

	if err := ValidateBatch(dir, batch); err != nil {
		return nil, err
	}

	sendProgress(ctx, jobId, "Renaming files...", 0, false)
	records, err := renameBatch(dir, batch)
	if err != nil {
		sendProgress(ctx, jobId, "Rename failed, changes rolled back.", 100, true)
		return nil, err
	}

	result := &ApplyResult{BatchID: uuid.NewString(), Renamed: len(records)}
	if len(records) > 0 {
		if err := store.New(ctx.DB()).AddBatch(result.BatchID, dir, records); err != nil {
			// The files are renamed; only undo is affected. Not fatal.
			log.Printf("Failed to record rename history: %v", err)
		}
	}

	sendProgress(ctx, jobId, fmt.Sprintf("Renamed %d file(s).", result.Renamed), 100, true)
	return result, nil
}

// ValidateBatch rejects a batch before any file is touched: invalid
// target names, duplicate targets, and targets that already exist on
// disk without being batch sources themselves.
func ValidateBatch(dir string, batch models.Batch) error {
	sources := make(map[string]struct{}, len(batch))
	for _, plan := range batch {
		sources[plan.Source.Name()] = struct{}{}
	}

	seen := make(map[string]struct{}, len(batch))
	for _, plan := range batch {
		if err := renamer.ValidateTargetName(plan.ProposedName); err != nil {
			return fmt.Errorf("invalid target for %s: %w", plan.Source.Name(), err)
		}
		key := strings.ToLower(plan.ProposedName)
		if _, dup := seen[key]; dup {
			return fmt.Errorf("duplicate target filename: %s", plan.ProposedName)
		}
		seen[key] = struct{}{}

		if plan.Same() {
			continue
		}
		if _, isSource := sources[plan.ProposedName]; isSource {
			continue
		}
		if _, err := os.Stat(filepath.Join(dir, plan.ProposedName)); err == nil {
			return fmt.Errorf("target already exists: %s", plan.ProposedName)
		}
	}
	return nil
}

type pendingMove struct {
	tmp      string
	original string
	final    string
	plan     *models.RenamePlan
}

// renameBatch moves every changing file to a temporary name first and
// only then to its final name. If either phase fails, completed temp
// moves are reversed.
func renameBatch(dir string, batch models.Batch) ([]models.RenameRecord, error) {
	var moves []pendingMove
	rollback := func() {
		for i := len(moves) - 1; i >= 0; i-- {
			if _, err := os.Stat(moves[i].tmp); err != nil {
				continue
			}
			if err := os.Rename(moves[i].tmp, moves[i].original); err != nil {
				log.Printf("Rollback failed for %s: %v", moves[i].original, err)
			}
		}
	}

	for idx, plan := range batch {
		if plan.Same() {
			continue
		}
		src := filepath.Join(dir, plan.Source.Name())
		tmp := filepath.Join(dir, fmt.Sprintf(".rename_tmp_%d_%d_%s", os.Getpid(), idx, plan.Source.Name()))
		if err := os.Rename(src, tmp); err != nil {
			rollback()
			return nil, fmt.Errorf("failed to stage %s: %w", plan.Source.Name(), err)
		}
		moves = append(moves, pendingMove{
			tmp:      tmp,
			original: src,
			final:    filepath.Join(dir, plan.ProposedName),
			plan:     plan,
		})
	}

	var records []models.RenameRecord
	for _, m := range moves {
		if err := os.Rename(m.tmp, m.final); err != nil {
			rollback()
			return nil, fmt.Errorf("failed to rename to %s: %w", m.plan.ProposedName, err)
		}
		records = append(records, models.RenameRecord{
			OldName: m.plan.Source.Name(),
			NewName: m.plan.ProposedName,
		})
	}
	return records, nil
}

// UndoLast reverses the most recently applied batch and removes it from
// history. Files renamed or deleted since the batch was applied are
// reported, not silently skipped.
func UndoLast(ctx jobs.JobContext) (int, error) {
	st := store.New(ctx.DB())
	records, err := st.LastBatch()
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("rename history is empty")
	}

	dir := records[0].Dir
	for _, r := range records {
		if _, err := os.Stat(filepath.Join(dir, r.NewName)); err != nil {
			return 0, fmt.Errorf("cannot undo: %s is no longer in %s", r.NewName, dir)
		}
	}

	undone := 0
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		if err := os.Rename(filepath.Join(dir, r.NewName), filepath.Join(dir, r.OldName)); err != nil {
			return undone, fmt.Errorf("failed to restore %s: %w", r.OldName, err)
		}
		undone++
	}

	if err := st.DeleteBatch(records[0].BatchID); err != nil {
		return undone, err
	}
	return undone, nil
}
