package storage

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"pulse/internal/ledger"
)

func TestNewRepositorySeedsFreshDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")

	repo, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	defer repo.Close()

	got, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := len(ledger.Seed(time.Now()))
	if len(got) != want {
		t.Fatalf("fresh database holds %d transactions, want %d seed entries", len(got), want)
	}
	for _, tx := range got {
		if !strings.HasPrefix(tx.ID, "txn-seed-") {
			t.Errorf("unexpected non-seed transaction %q in fresh database", tx.ID)
		}
	}
}

func TestReopenDoesNotReseedEmptiedLedger(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "ledger.db")

	repo, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	if err := repo.Persist(ctx, nil); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// The file exists now, so reopening must respect the deliberately
	// emptied ledger instead of restoring the seed set.
	reopened, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Load(ctx)
	if err != nil {
		t.Fatalf("Load after reopen: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("reopened ledger holds %d transactions, want 0", len(got))
	}
}
