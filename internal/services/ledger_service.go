// Package services orchestrates ledger operations across the store and the
// AMQP event stream.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"pulse/internal/amqp"
	"pulse/internal/core"
	"pulse/internal/ledger"
)

// LedgerService wraps a ledger store and publishes change events for the
// sync worker. The AMQP client is optional; without it mutations still
// succeed, they just go unannounced.
type LedgerService struct {
	store      ledger.Store
	amqpClient *amqp.Client
}

func NewLedgerService(store ledger.Store, amqpClient *amqp.Client) *LedgerService {
	return &LedgerService{
		store:      store,
		amqpClient: amqpClient,
	}
}

// List returns the full ledger snapshot, most recent first.
func (s *LedgerService) List(ctx context.Context) ([]core.Transaction, error) {
	transactions, err := s.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}
	return transactions, nil
}

// Create saves a transaction locally and publishes a sync event.
func (s *LedgerService) Create(ctx context.Context, draft core.TransactionDraft) (core.Transaction, error) {
	// Store first. The event stream is best effort.
	created, err := s.store.Create(ctx, draft)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	if err := s.publishSync(ctx, created.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync event",
			"id", created.ID, "error", err)
		// The transaction is saved locally, so the request still succeeds.
	}

	return created, nil
}

// Delete removes a transaction locally and publishes a delete event.
func (s *LedgerService) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	if err := s.publishDelete(ctx, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish delete event",
			"id", id, "error", err)
	}

	return nil
}

func (s *LedgerService) publishSync(ctx context.Context, id string) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync event")
		return nil
	}
	return s.amqpClient.PublishTransactionSync(ctx, id)
}

func (s *LedgerService) publishDelete(ctx context.Context, id string) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping delete event")
		return nil
	}
	return s.amqpClient.PublishTransactionDelete(ctx, id)
}

// Close releases the AMQP connection. The store's lifecycle is owned by
// whoever built it.
func (s *LedgerService) Close() error {
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			return fmt.Errorf("close amqp client: %w", err)
		}
	}
	return nil
}
