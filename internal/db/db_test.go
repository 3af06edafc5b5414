package db_test

import (
	"path/filepath"
	"testing"

	"github.com/tmalloy/bindery/internal/db"
	"github.com/tmalloy/bindery/internal/testutil"
)

func TestInitDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bindery.db")
	database, err := db.InitDB(path)
	if err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	defer database.Close()

	var foreignKeysEnabled int
	if err := database.QueryRow("PRAGMA foreign_keys").Scan(&foreignKeysEnabled); err != nil {
		t.Fatalf("Failed to check foreign keys status: %v", err)
	}
	if foreignKeysEnabled != 1 {
		t.Errorf("Foreign keys should be enabled, got: %d", foreignKeysEnabled)
	}
}

func TestMigrationsCreateSchema(t *testing.T) {
	// Setup test database with migrations already applied
	database := testutil.SetupTestDB(t)

	// The rename history table must exist and accept inserts.
	_, err := database.Exec(
		"INSERT INTO rename_history (batch_id, dir, old_name, new_name, applied_at) VALUES (?, ?, ?, ?, datetime('now'))",
		"batch-1", "/books", "a.pdf", "A-B-2000.pdf")
	if err != nil {
		t.Fatalf("Failed to insert into rename_history: %v", err)
	}

	var count int
	if err := database.QueryRow("SELECT COUNT(*) FROM rename_history").Scan(&count); err != nil {
		t.Fatalf("Failed to count rename_history rows: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 row in rename_history, got %d", count)
	}

	// Running migrations again must be a no-op, not an error.
	testutil.SetupTestDB(t)
}
