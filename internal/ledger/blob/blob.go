// Package blob implements ledger.Store over a single JSON snapshot file,
// written under the fixed storage key the dashboard has always used. The
// whole array is rewritten on every mutation; an unreadable or missing file
// falls back to the seed dataset rather than failing.
package blob

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"pulse/internal/core"
	"pulse/internal/ledger"
)

type Store struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// New creates a blob store rooted at dataDir. The snapshot lives at
// <dataDir>/<storage key>.json.
func New(dataDir string) *Store {
	return &Store{
		path: filepath.Join(dataDir, ledger.StorageKey+".json"),
		now:  time.Now,
	}
}

func (s *Store) Load(ctx context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

func (s *Store) load(ctx context.Context) ([]core.Transaction, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		seed := ledger.Seed(s.now())
		if werr := s.write(seed); werr != nil {
			return nil, fmt.Errorf("persist seed snapshot: %w", werr)
		}
		slog.InfoContext(ctx, "No snapshot found, seeded ledger", "path", s.path, "count", len(seed))
		return seed, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var transactions []core.Transaction
	if err := json.Unmarshal(raw, &transactions); err != nil {
		// Unparsable state is an external concern, not a fatal one: fall
		// back to the seed set without clobbering the file on disk.
		slog.WarnContext(ctx, "Snapshot unparsable, serving seed dataset", "path", s.path, "error", err)
		return ledger.Seed(s.now()), nil
	}
	core.SortByDateDesc(transactions)
	return transactions, nil
}

func (s *Store) Persist(ctx context.Context, transactions []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	core.SortByDateDesc(transactions)
	if err := s.write(transactions); err != nil {
		return err
	}
	slog.DebugContext(ctx, "Snapshot persisted", "path", s.path, "count", len(transactions))
	return nil
}

func (s *Store) Create(ctx context.Context, draft core.TransactionDraft) (core.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return core.Transaction{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	transactions, err := s.load(ctx)
	if err != nil {
		return core.Transaction{}, err
	}

	created := core.Transaction{
		ID:          ledger.NewID(),
		Type:        draft.Type,
		Amount:      draft.Amount,
		Category:    draft.Category,
		Description: draft.Description,
		Date:        draft.Date.UTC(),
		Account:     draft.Account,
		Project:     draft.Project,
		Notes:       draft.Notes,
	}
	transactions = append(transactions, created)
	core.SortByDateDesc(transactions)

	if err := s.write(transactions); err != nil {
		return core.Transaction{}, err
	}
	slog.InfoContext(ctx, "Transaction created",
		"id", created.ID,
		"transaction_type", created.Type,
		"amount_cents", created.Amount.Cents,
		"category", created.Category)
	return created, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	transactions, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := transactions[:0]
	for _, t := range transactions {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(transactions) {
		// Deleting an unknown id is a no-op, matching the UI contract.
		slog.WarnContext(ctx, "Delete for unknown transaction id", "id", id)
		return nil
	}

	if err := s.write(kept); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

// write replaces the snapshot atomically: marshal to a temp file in the
// same directory, then rename over the target.
func (s *Store) write(transactions []core.Transaction) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	data, err := json.MarshalIndent(transactions, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".snapshot-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
