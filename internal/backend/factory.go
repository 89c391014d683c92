package backend

import (
	"context"
	"fmt"
	"log/slog"

	"pulse/internal/amqp"
	"pulse/internal/ledger"
	"pulse/internal/ledger/blob"
	"pulse/internal/services"
	"pulse/internal/storage"
)

// DefaultFactory implements the Factory interface.
type DefaultFactory struct {
	logger *slog.Logger
}

func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{logger: logger}
}

func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*Result, error) {
	if !config.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", config.Type)
	}

	switch config.Type {
	case BlobBackend:
		return f.createBlobBackend(config)
	case SQLiteBackend:
		return f.createSQLiteBackend(config)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}
}

func (f *DefaultFactory) createBlobBackend(config Config) (*Result, error) {
	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "data"
	}

	store := blob.New(dataDir)
	service := services.NewLedgerService(store, f.amqpClient(config))

	f.logger.Info("Initialized blob backend",
		"data_dir", dataDir,
		"file", ledger.StorageKey+".json")

	return &Result{
		Service: service,
		Store:   store,
		Cleanup: service.Close,
	}, nil
}

func (f *DefaultFactory) createSQLiteBackend(config Config) (*Result, error) {
	repo, err := storage.NewSQLiteRepository(config.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("initialize SQLite repository: %w", err)
	}

	service := services.NewLedgerService(repo, f.amqpClient(config))

	f.logger.Info("Initialized SQLite backend",
		"db_path", config.SQLiteDBPath)

	cleanup := func() error {
		serr := service.Close()
		if rerr := repo.Close(); rerr != nil {
			return rerr
		}
		return serr
	}

	return &Result{
		Service: service,
		Store:   repo,
		Cleanup: cleanup,
	}, nil
}

// amqpClient builds the optional event publisher. A broker that is down at
// startup disables events instead of failing the whole process.
func (f *DefaultFactory) amqpClient(config Config) *amqp.Client {
	if config.AMQPURL == "" {
		return nil
	}

	client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue)
	if err != nil {
		f.logger.Warn("Failed to initialize AMQP client, continuing without events", "error", err)
		return nil
	}

	f.logger.Info("Initialized AMQP client",
		"exchange", config.AMQPExchange,
		"queue", config.AMQPQueue)
	return client
}
