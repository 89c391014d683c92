// Package worker keeps the exported spreadsheet in step with the ledger.
// Transaction events arrive over AMQP; a periodic full snapshot export
// papers over any events lost while the worker was down.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"pulse/internal/amqp"
	"pulse/internal/core"
	"pulse/internal/ledger"
	"pulse/internal/storage"
)

// Exporter is what the worker needs from an export target.
type Exporter interface {
	AppendTransaction(ctx context.Context, t core.Transaction) (string, error)
	RemoveTransaction(ctx context.Context, id string) error
	ExportSnapshot(ctx context.Context, transactions []core.Transaction) error
}

type SyncWorker struct {
	store    ledger.Store
	getter   ledger.Getter
	exporter Exporter
}

func NewSyncWorker(store ledger.Store, getter ledger.Getter, exporter Exporter) *SyncWorker {
	return &SyncWorker{
		store:    store,
		getter:   getter,
		exporter: exporter,
	}
}

// HandleSyncMessage exports the transaction named by a sync event.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionEventMessage) error {
	slog.InfoContext(ctx, "Processing sync event", "id", msg.ID)

	transaction, err := w.getter.Get(ctx, msg.ID)
	if errors.Is(err, storage.ErrNotFound) {
		// Deleted before the event was consumed. Nothing to export.
		slog.WarnContext(ctx, "Transaction gone before sync, skipping", "id", msg.ID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get transaction from store: %w", err)
	}

	ref, err := w.exporter.AppendTransaction(ctx, transaction)
	if err != nil {
		return fmt.Errorf("export transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction synced to export target",
		"id", msg.ID,
		"ref", ref)

	return nil
}

// HandleDeleteMessage removes the transaction named by a delete event from
// the export target.
func (w *SyncWorker) HandleDeleteMessage(ctx context.Context, msg *amqp.TransactionEventMessage) error {
	slog.InfoContext(ctx, "Processing delete event", "id", msg.ID)

	if err := w.exporter.RemoveTransaction(ctx, msg.ID); err != nil {
		return fmt.Errorf("remove exported transaction: %w", err)
	}

	return nil
}

// ExportSnapshot pushes the full ledger to the export target.
func (w *SyncWorker) ExportSnapshot(ctx context.Context) error {
	transactions, err := w.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load ledger: %w", err)
	}

	if err := w.exporter.ExportSnapshot(ctx, transactions); err != nil {
		return fmt.Errorf("export snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Full snapshot exported", "count", len(transactions))
	return nil
}

// RunPeriodicExport exports a full snapshot on the given interval until the
// context is done. Export failures are logged and retried next tick.
func (w *SyncWorker) RunPeriodicExport(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "Starting periodic snapshot export", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping periodic snapshot export", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if err := w.ExportSnapshot(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic snapshot export failed", "error", err)
			}
		}
	}
}
