package backend

import (
	"context"

	"pulse/internal/ledger"
	"pulse/internal/services"
)

// CleanupFunc releases resources held by a backend.
type CleanupFunc func() error

// Result contains a built backend. Service wraps Store with event
// publishing; Store is exposed for callers that need raw snapshot access.
type Result struct {
	Service *services.LedgerService
	Store   ledger.Store
	Cleanup CleanupFunc
}

// Factory creates ledger backends based on configuration.
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*Result, error)
}

// Config holds configuration for backend creation.
type Config struct {
	Type Type

	// Blob specific
	DataDir string

	// SQLite specific
	SQLiteDBPath string

	// AMQP event stream (optional for either backend)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

// Type selects the ledger backend.
type Type string

const (
	BlobBackend   Type = "blob"
	SQLiteBackend Type = "sqlite"
)

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case BlobBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}
