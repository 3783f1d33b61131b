//go:build integration
// +build integration

package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hoffis/storecheck/internal/reconcile"
	"github.com/hoffis/storecheck/internal/repository/testutil"
)

func sampleReport() *reconcile.Report {
	report := reconcile.NewReport()
	report.Append(reconcile.Entry{
		ProductID:   "10",
		ProductName: "TV",
		Kind:        reconcile.IssuePriceMismatch,
		Expected:    "129.99",
		Actual:      "119.99",
	})
	report.Append(reconcile.Entry{
		ProductID: "11",
		Kind:      reconcile.IssueFetchError,
		Side:      reconcile.SideObserved,
		Detail:    "element never became visible",
	})
	return report
}

func TestRunRepository_SaveAndGetRun_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewRunRepository(testDB.DB)

	started := time.Now().Add(-time.Minute).Truncate(time.Millisecond)
	finished := time.Now().Truncate(time.Millisecond)
	report := sampleReport()

	runID, err := repo.SaveRun("https://hoff.is", started, finished, report)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if runID == uuid.Nil {
		t.Fatal("SaveRun() returned nil run id")
	}

	record, err := repo.GetRun(runID)
	if err != nil {
		t.Fatalf("GetRun() failed: %v", err)
	}

	if record.StoreBaseURL != "https://hoff.is" {
		t.Errorf("StoreBaseURL mismatch: got %v", record.StoreBaseURL)
	}
	if record.Clean {
		t.Error("run with entries should not be clean")
	}
	if record.EntryCount != 2 {
		t.Errorf("EntryCount mismatch: got %d, want 2", record.EntryCount)
	}
}

func TestRunRepository_EntriesKeepOrder_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewRunRepository(testDB.DB)

	report := sampleReport()
	runID, err := repo.SaveRun("https://hoff.is", time.Now(), time.Now(), report)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	entries, err := repo.GetRunEntries(runID)
	if err != nil {
		t.Fatalf("GetRunEntries() failed: %v", err)
	}

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].ProductID != "10" || entries[0].Kind != reconcile.IssuePriceMismatch {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].ProductID != "11" || entries[1].Side != reconcile.SideObserved {
		t.Errorf("unexpected second entry: %+v", entries[1])
	}
}

func TestRunRepository_CleanRun_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewRunRepository(testDB.DB)

	runID, err := repo.SaveRun("https://hoff.is", time.Now(), time.Now(), reconcile.NewReport())
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	record, err := repo.GetRun(runID)
	if err != nil {
		t.Fatalf("GetRun() failed: %v", err)
	}
	if !record.Clean {
		t.Error("empty report should persist as a clean run")
	}

	entries, err := repo.GetRunEntries(runID)
	if err != nil {
		t.Fatalf("GetRunEntries() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestRunRepository_GetRun_NotFound_Integration(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	defer testDB.Teardown(t)

	repo := NewRunRepository(testDB.DB)

	if _, err := repo.GetRun(uuid.New()); err == nil {
		t.Error("expected error for unknown run id")
	}
}
