// Package ledger defines the ports for the authoritative transaction
// collection. The engine in internal/core only ever consumes snapshots
// obtained through these interfaces; it never mutates a store.
package ledger

import (
	"context"

	"github.com/google/uuid"

	"pulse/internal/core"
)

// StorageKey is the fixed key under which the snapshot blob is persisted.
const StorageKey = "pulse-expense-tracker-v1"

type (
	// Store owns the ledger and its persistence. Load returns a seed set
	// when no prior state exists. Persist is an idempotent full overwrite.
	// Implementations keep the snapshot sorted most-recent-first after
	// every mutation.
	Store interface {
		Load(ctx context.Context) ([]core.Transaction, error)
		Persist(ctx context.Context, transactions []core.Transaction) error
		Create(ctx context.Context, draft core.TransactionDraft) (core.Transaction, error)
		Delete(ctx context.Context, id string) error
	}

	// Getter fetches a single transaction by id. The sync worker uses it to
	// hydrate lightweight mutation messages.
	Getter interface {
		Get(ctx context.Context, id string) (core.Transaction, error)
	}
)

// NewID returns a fresh transaction identifier. Ids are opaque to the
// engine and never reused.
func NewID() string {
	return "txn-" + uuid.NewString()
}
