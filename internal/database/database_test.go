package database

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_CreatesConnection(t *testing.T) {
	// Setup: use temporary directory
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	// Test: create new database connection
	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v, want nil", err)
	}
	defer db.Close()

	// Verify: database file exists
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created")
	}

	// Verify: can ping database
	if err := db.Ping(); err != nil {
		t.Errorf("Ping() error = %v, want nil", err)
	}
}

func TestNew_InvalidPath_ReturnsError(t *testing.T) {
	// Test with invalid path (directory that doesn't exist and can't be created)
	_, err := New("/nonexistent/path/that/cannot/be/created/test.db")
	if err == nil {
		t.Error("New() with invalid path should return error")
	}
}

func TestRunMigrations_CreatesRunHistoryTable(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer db.Close()

	// Test: run migrations
	if err := db.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations() error = %v, want nil", err)
	}

	// Verify: table and index exist
	var exists int
	query := `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`
	if err := db.QueryRow(query, "run_history").Scan(&exists); err != nil {
		t.Fatalf("checking run_history table: %v", err)
	}
	if exists != 1 {
		t.Error("run_history table does not exist")
	}

	query = `SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name=?`
	if err := db.QueryRow(query, "idx_run_history_started_at").Scan(&exists); err != nil {
		t.Fatalf("checking run_history index: %v", err)
	}
	if exists != 1 {
		t.Error("idx_run_history_started_at index does not exist")
	}
}

func TestRunMigrations_Idempotent(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer db.Close()

	// Test: run migrations multiple times
	for i := 0; i < 3; i++ {
		if err := db.RunMigrations(); err != nil {
			t.Fatalf("RunMigrations() iteration %d error = %v, want nil", i+1, err)
		}
	}

	// Verify: still works and has correct tables
	var tableCount int
	query := `SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'`
	if err := db.QueryRow(query).Scan(&tableCount); err != nil {
		t.Fatalf("counting tables: %v", err)
	}

	if tableCount != 1 {
		t.Errorf("table count = %d, want 1", tableCount)
	}
}

func TestDB_Close(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	// Test: close database
	if err := db.Close(); err != nil {
		t.Errorf("Close() error = %v, want nil", err)
	}

	// Verify: operations fail after close
	if err := db.Ping(); err == nil {
		t.Error("Ping() after Close() should return error")
	}
}

func TestDB_Exec_InsertAndQuery(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	db, err := New(dbPath)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		t.Fatalf("RunMigrations() error = %v", err)
	}

	// Test: insert a run
	result, err := db.Exec(
		`INSERT INTO run_history (status, started_at) VALUES (?, ?)`,
		"started",
		"2024-03-05 12:00:00",
	)
	if err != nil {
		t.Fatalf("Exec() insert error = %v", err)
	}

	// Verify: got last insert ID
	id, err := result.LastInsertId()
	if err != nil {
		t.Fatalf("LastInsertId() error = %v", err)
	}
	if id != 1 {
		t.Errorf("LastInsertId() = %d, want 1", id)
	}

	// Verify: can query the run back
	var status string
	err = db.QueryRow(`SELECT status FROM run_history WHERE id = ?`, id).Scan(&status)
	if err != nil {
		t.Fatalf("QueryRow() error = %v", err)
	}
	if status != "started" {
		t.Errorf("status = %q, want %q", status, "started")
	}
}
