// ABOUTME: Tests for financial snapshot database operations
// ABOUTME: Covers snapshot CRUD and latest-pair ordering
package db

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/bizdesk/models"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := OpenDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenDatabase failed: %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestCreateSnapshot(t *testing.T) {
	database := setupTestDB(t)

	snap := &models.FinancialSnapshot{
		FinancialData: models.FinancialData{
			Revenue:     120000,
			COGS:        45000,
			Payroll:     30000,
			CashBalance: 80000,
		},
	}

	if err := CreateSnapshot(database, snap); err != nil {
		t.Fatalf("CreateSnapshot failed: %v", err)
	}

	if snap.ID == uuid.Nil {
		t.Error("Snapshot ID was not set")
	}
	if snap.Period == "" {
		t.Error("Period was not defaulted")
	}

	found, err := GetSnapshot(database, snap.ID)
	if err != nil {
		t.Fatalf("GetSnapshot failed: %v", err)
	}
	if found == nil {
		t.Fatal("Snapshot not found")
	}
	if found.Revenue != 120000 || found.COGS != 45000 {
		t.Errorf("Round-trip mismatch: %+v", found)
	}
}

func TestGetSnapshotMiss(t *testing.T) {
	database := setupTestDB(t)

	found, err := GetSnapshot(database, uuid.New())
	if err != nil {
		t.Fatalf("GetSnapshot failed: %v", err)
	}
	if found != nil {
		t.Error("Expected nil for unknown ID")
	}
}

func TestLatestPair(t *testing.T) {
	database := setupTestDB(t)

	older := &models.FinancialSnapshot{
		Period:        "2026-07",
		FinancialData: models.FinancialData{Revenue: 100000},
	}
	if err := CreateSnapshot(database, older); err != nil {
		t.Fatalf("CreateSnapshot failed: %v", err)
	}
	// created_at has second resolution in SQLite comparisons; force order.
	time.Sleep(10 * time.Millisecond)

	newer := &models.FinancialSnapshot{
		Period:        "2026-08",
		FinancialData: models.FinancialData{Revenue: 110000},
	}
	if err := CreateSnapshot(database, newer); err != nil {
		t.Fatalf("CreateSnapshot failed: %v", err)
	}

	current, previous, err := LatestPair(database)
	if err != nil {
		t.Fatalf("LatestPair failed: %v", err)
	}
	if current == nil || previous == nil {
		t.Fatal("Expected both snapshots")
	}
	if current.Period != "2026-08" || previous.Period != "2026-07" {
		t.Errorf("Pair out of order: current=%s previous=%s", current.Period, previous.Period)
	}
}

func TestLatestPairShortHistory(t *testing.T) {
	database := setupTestDB(t)

	current, previous, err := LatestPair(database)
	if err != nil {
		t.Fatalf("LatestPair failed: %v", err)
	}
	if current != nil || previous != nil {
		t.Error("Expected empty pair for empty history")
	}

	only := &models.FinancialSnapshot{FinancialData: models.FinancialData{Revenue: 1}}
	if err := CreateSnapshot(database, only); err != nil {
		t.Fatalf("CreateSnapshot failed: %v", err)
	}

	current, previous, err = LatestPair(database)
	if err != nil {
		t.Fatalf("LatestPair failed: %v", err)
	}
	if current == nil || previous != nil {
		t.Error("Expected only a current snapshot")
	}
}

func TestDeleteSnapshot(t *testing.T) {
	database := setupTestDB(t)

	snap := &models.FinancialSnapshot{FinancialData: models.FinancialData{Revenue: 1}}
	if err := CreateSnapshot(database, snap); err != nil {
		t.Fatalf("CreateSnapshot failed: %v", err)
	}
	if err := DeleteSnapshot(database, snap.ID); err != nil {
		t.Fatalf("DeleteSnapshot failed: %v", err)
	}

	found, err := GetSnapshot(database, snap.ID)
	if err != nil {
		t.Fatalf("GetSnapshot failed: %v", err)
	}
	if found != nil {
		t.Error("Snapshot still present after delete")
	}
}
