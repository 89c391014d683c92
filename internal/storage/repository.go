// Package storage provides the SQLite-backed ledger store. The JSON blob
// store in internal/ledger/blob stays the default for single-user setups;
// this one exists for deployments where the worker and the dashboard share
// a database file.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"pulse/internal/core"
	"pulse/internal/ledger"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned by GetTransaction for unknown ids.
var ErrNotFound = errors.New("transaction not found")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	_, statErr := os.Stat(dbPath)
	firstRun := errors.Is(statErr, os.ErrNotExist)

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	repo := &SQLiteRepository{db: db}

	// A brand new database file starts from the seed dataset, same as the
	// blob store on a missing snapshot. An existing file is left alone even
	// when its ledger is empty: the user may have deleted everything.
	if firstRun {
		if err := repo.Persist(context.Background(), ledger.Seed(time.Now().UTC())); err != nil {
			db.Close()
			return nil, fmt.Errorf("seed ledger: %w", err)
		}
		slog.Info("Created new SQLite ledger from seed data", "path", dbPath)
	}

	return repo, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const selectColumns = `id, type, amount_cents, category, description, date, account, project, notes`

// Load implements ledger.Store. Rows come back most recent first, which is
// the order every consumer of the snapshot expects.
func (r *SQLiteRepository) Load(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM transactions ORDER BY date DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	transactions := []core.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return transactions, nil
}

// Persist implements ledger.Store as a full snapshot overwrite, matching
// the blob store's semantics. Runs in a single transaction so a crash
// mid-write never leaves a half-replaced ledger.
func (r *SQLiteRepository) Persist(ctx context.Context, transactions []core.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO transactions (id, type, amount_cents, category, description, date, account, project, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range transactions {
		if _, err := stmt.ExecContext(ctx,
			t.ID, string(t.Type), t.Amount.Cents, t.Category, t.Description,
			t.Date.UTC().Format(time.RFC3339Nano), t.Account, t.Project, t.Notes,
		); err != nil {
			return fmt.Errorf("insert transaction %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Ledger snapshot persisted to SQLite", "count", len(transactions))
	return nil
}

// Create implements ledger.Store.
func (r *SQLiteRepository) Create(ctx context.Context, draft core.TransactionDraft) (core.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return core.Transaction{}, err
	}

	t := core.Transaction{
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

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, type, amount_cents, category, description, date, account, project, notes)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, string(t.Type), t.Amount.Cents, t.Category, t.Description,
		t.Date.Format(time.RFC3339Nano), t.Account, t.Project, t.Notes,
	)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved to SQLite",
		"id", t.ID,
		"type", t.Type,
		"category", t.Category,
		"amount_cents", t.Amount.Cents)

	return t, nil
}

// Delete implements ledger.Store. Deleting an unknown id is a no-op.
func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		slog.WarnContext(ctx, "Delete for unknown transaction id", "id", id)
		return nil
	}

	slog.InfoContext(ctx, "Transaction deleted from SQLite", "id", id)
	return nil
}

// Get implements ledger.Getter for the sync worker.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+selectColumns+` FROM transactions WHERE id = ?`, id)

	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, fmt.Errorf("get transaction %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t       core.Transaction
		typ     string
		cents   int64
		rawDate string
	)
	err := row.Scan(&t.ID, &typ, &cents, &t.Category, &t.Description,
		&rawDate, &t.Account, &t.Project, &t.Notes)
	if err != nil {
		return core.Transaction{}, err
	}

	t.Type = core.TransactionType(typ)
	t.Amount = core.Money{Cents: cents}
	t.Date, err = time.Parse(time.RFC3339Nano, rawDate)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored date %q: %w", rawDate, err)
	}
	return t, nil
}
