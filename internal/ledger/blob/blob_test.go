package blob

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pulse/internal/core"
	"pulse/internal/ledger"
)

func TestLoadSeedsWhenMissing(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)

	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected seed transactions for a fresh store")
	}
	// The seed snapshot is written immediately under the storage key.
	if _, err := os.Stat(filepath.Join(dir, ledger.StorageKey+".json")); err != nil {
		t.Fatalf("seed snapshot not written: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Date.After(got[i-1].Date) {
			t.Fatalf("snapshot not sorted descending at %d", i)
		}
	}
}

func TestCreateDeleteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := New(t.TempDir())

	before, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	created, err := s.Create(ctx, core.TransactionDraft{
		Type:        core.Expense,
		Amount:      core.Money{Cents: 990},
		Category:    "Food & Dining",
		Description: "espresso",
		Date:        time.Date(2025, 6, 10, 9, 30, 0, 0, time.FixedZone("CET", 3600)),
		Account:     "Cash",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.HasPrefix(created.ID, "txn-") {
		t.Fatalf("id = %q, want txn- prefix", created.ID)
	}
	if created.Date.Location() != time.UTC {
		t.Fatalf("date not normalized to UTC: %v", created.Date)
	}

	after, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load after create: %v", err)
	}
	if len(after) != len(before)+1 {
		t.Fatalf("snapshot has %d transactions, want %d", len(after), len(before)+1)
	}
	found := false
	for _, tx := range after {
		if tx.ID == created.ID {
			found = true
			if tx.Amount.Cents != 990 || tx.Description != "espresso" {
				t.Fatalf("stored transaction differs: %+v", tx)
			}
		}
	}
	if !found {
		t.Fatal("created transaction missing from reloaded snapshot")
	}

	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	final, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load after delete: %v", err)
	}
	for _, tx := range final {
		if tx.ID == created.ID {
			t.Fatal("deleted transaction still present")
		}
	}

	// Unknown ids are a no-op, not an error.
	if err := s.Delete(ctx, "txn-does-not-exist"); err != nil {
		t.Fatalf("Delete unknown id: %v", err)
	}
}

func TestCreateRejectsInvalidDraft(t *testing.T) {
	s := New(t.TempDir())
	_, err := s.Create(context.Background(), core.TransactionDraft{Type: "transfer"})
	if err == nil {
		t.Fatal("expected validation error")
	}
}

func TestLoadCorruptSnapshotFallsBackToSeed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ledger.StorageKey+".json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	s := New(dir)
	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("expected seed fallback for corrupt snapshot")
	}
	// The corrupt file must not be clobbered by a read.
	raw, err := os.ReadFile(path)
	if err != nil || string(raw) != "{not json" {
		t.Fatalf("corrupt snapshot rewritten: %q, %v", raw, err)
	}
}

func TestPersistOverwritesWholeSnapshot(t *testing.T) {
	ctx := context.Background()
	s := New(t.TempDir())

	snapshot := []core.Transaction{
		{ID: "txn-1", Type: core.Income, Amount: core.Money{Cents: 1000}, Category: "Salary", Description: "x", Date: time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC), Account: "Checking"},
		{ID: "txn-2", Type: core.Expense, Amount: core.Money{Cents: 500}, Category: "Other", Description: "y", Date: time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), Account: "Cash"},
	}
	if err := s.Persist(ctx, snapshot); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	// Idempotent full overwrite.
	if err := s.Persist(ctx, snapshot); err != nil {
		t.Fatalf("Persist twice: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d transactions, want 2", len(got))
	}
	if got[0].ID != "txn-2" {
		t.Fatalf("snapshot not sorted most-recent-first: %s first", got[0].ID)
	}
}
