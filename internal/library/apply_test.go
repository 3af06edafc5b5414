package library_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tmalloy/bindery/internal/library"
	"github.com/tmalloy/bindery/internal/models"
	"github.com/tmalloy/bindery/internal/store"
	"github.com/tmalloy/bindery/internal/testutil"
)

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte("content"), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

func plan(stem, ext, proposed string) *models.RenamePlan {
	return &models.RenamePlan{
		Source:       models.SourceFile{Stem: stem, Ext: ext},
		ProposedName: proposed,
	}
}

func exists(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}

func TestApply(t *testing.T) {
	app := testutil.SetupTestApp(t)
	dir := app.Config().Library.Path
	writeFile(t, dir, "a.pdf")
	writeFile(t, dir, "keep.pdf")

	batch := models.Batch{
		plan("a", "pdf", "Title_A-Author-2001.pdf"),
		plan("keep", "pdf", "keep.pdf"), // unchanged, must be skipped
	}

	result, err := library.Apply(app, dir, batch)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if result.Renamed != 1 {
		t.Errorf("Renamed = %d, want 1", result.Renamed)
	}
	if result.BatchID == "" {
		t.Error("BatchID is empty")
	}

	if !exists(dir, "Title_A-Author-2001.pdf") || exists(dir, "a.pdf") {
		t.Error("a.pdf was not renamed")
	}
	if !exists(dir, "keep.pdf") {
		t.Error("unchanged file went missing")
	}

	// The applied batch must be recorded for undo.
	records, err := store.New(app.DB()).LastBatch()
	if err != nil {
		t.Fatalf("LastBatch failed: %v", err)
	}
	if len(records) != 1 || records[0].OldName != "a.pdf" || records[0].NewName != "Title_A-Author-2001.pdf" {
		t.Errorf("Unexpected history: %+v", records)
	}
}

func TestApplySwap(t *testing.T) {
	// Exchanging two filenames only works because of the temp phase: a
	// direct rename would clobber one of the files.
	app := testutil.SetupTestApp(t)
	dir := app.Config().Library.Path
	writeFile(t, dir, "a.pdf")
	writeFile(t, dir, "b.pdf")

	batch := models.Batch{
		plan("a", "pdf", "b.pdf"),
		plan("b", "pdf", "a.pdf"),
	}

	result, err := library.Apply(app, dir, batch)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if result.Renamed != 2 {
		t.Errorf("Renamed = %d, want 2", result.Renamed)
	}
	if !exists(dir, "a.pdf") || !exists(dir, "b.pdf") {
		t.Error("swap lost a file")
	}
}

func TestApplyValidation(t *testing.T) {
	app := testutil.SetupTestApp(t)
	dir := app.Config().Library.Path
	writeFile(t, dir, "a.pdf")
	writeFile(t, dir, "b.pdf")
	writeFile(t, dir, "taken.pdf")

	tests := []struct {
		name  string
		batch models.Batch
	}{
		{
			name: "duplicate targets",
			batch: models.Batch{
				plan("a", "pdf", "X.pdf"),
				plan("b", "pdf", "x.pdf"), // case-insensitive duplicate
			},
		},
		{
			name:  "target exists outside batch",
			batch: models.Batch{plan("a", "pdf", "taken.pdf")},
		},
		{
			name:  "invalid target name",
			batch: models.Batch{plan("a", "pdf", "bad/name.pdf")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := library.Apply(app, dir, tt.batch); err == nil {
				t.Error("Apply should have failed")
			}
			// Nothing may have been renamed.
			if !exists(dir, "a.pdf") || !exists(dir, "b.pdf") {
				t.Error("a rejected batch must not touch files")
			}
		})
	}
}

func TestApplyRollbackOnMissingSource(t *testing.T) {
	app := testutil.SetupTestApp(t)
	dir := app.Config().Library.Path
	writeFile(t, dir, "a.pdf")
	// "ghost.pdf" is in the batch but not on disk; staging it fails
	// after a.pdf has already been moved to its temp name.
	batch := models.Batch{
		plan("a", "pdf", "Title_A-Author-2001.pdf"),
		plan("ghost", "pdf", "Ghost-Author-2002.pdf"),
	}

	if _, err := library.Apply(app, dir, batch); err == nil {
		t.Fatal("Apply should have failed")
	}
	if !exists(dir, "a.pdf") {
		t.Error("a.pdf was not rolled back")
	}
	if exists(dir, "Title_A-Author-2001.pdf") {
		t.Error("partial rename survived the rollback")
	}

	records, err := store.New(app.DB()).LastBatch()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 0 {
		t.Errorf("failed batch must not be recorded, got %+v", records)
	}
}

func TestUndoLast(t *testing.T) {
	app := testutil.SetupTestApp(t)
	dir := app.Config().Library.Path
	writeFile(t, dir, "a.pdf")
	writeFile(t, dir, "b.pdf")

	batch := models.Batch{
		plan("a", "pdf", "Title_A-Author-2001.pdf"),
		plan("b", "pdf", "Title_B-Author-2002.pdf"),
	}
	if _, err := library.Apply(app, dir, batch); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	undone, err := library.UndoLast(app)
	if err != nil {
		t.Fatalf("UndoLast failed: %v", err)
	}
	if undone != 2 {
		t.Errorf("undone = %d, want 2", undone)
	}
	if !exists(dir, "a.pdf") || !exists(dir, "b.pdf") {
		t.Error("undo did not restore original names")
	}

	// The undone batch is gone from history.
	if _, err := library.UndoLast(app); err == nil {
		t.Error("second undo should fail on empty history")
	}
}

func TestUndoLastDetectsMissingFile(t *testing.T) {
	app := testutil.SetupTestApp(t)
	dir := app.Config().Library.Path
	writeFile(t, dir, "a.pdf")

	batch := models.Batch{plan("a", "pdf", "Title_A-Author-2001.pdf")}
	if _, err := library.Apply(app, dir, batch); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if err := os.Remove(filepath.Join(dir, "Title_A-Author-2001.pdf")); err != nil {
		t.Fatal(err)
	}

	if _, err := library.UndoLast(app); err == nil {
		t.Error("UndoLast should fail when a renamed file is gone")
	}
}
