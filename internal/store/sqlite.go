package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mohaiminul-islam-git/CashFlow/internal/core"
)

// SQLiteStore keeps the same whole-collection snapshots as FileStore, but
// in a single-table key/value schema. One row per collection; saving
// replaces the row.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the database and brings the schema up to date.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, errors.New("sqlite database path is required")
	}
	if err := RunMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Snapshots are serialized through a single writer.
	db.SetMaxOpenConns(1)

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) read(ctx context.Context, name string) ([]byte, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE name = ?`, name,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", name, err)
	}
	return payload, nil
}

func (s *SQLiteStore) write(ctx context.Context, name string, in any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", name, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (name, payload, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at`,
		name, payload, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("write snapshot %s: %w", name, err)
	}
	return nil
}

func (s *SQLiteStore) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	data, err := s.read(ctx, snapshotTransactions)
	if err != nil {
		return nil, err
	}
	return decodeSnapshot[core.Transaction](data), nil
}

func (s *SQLiteStore) SaveTransactions(ctx context.Context, transactions []core.Transaction) error {
	return s.write(ctx, snapshotTransactions, transactions)
}

func (s *SQLiteStore) LoadBudgets(ctx context.Context) ([]core.Budget, error) {
	data, err := s.read(ctx, snapshotBudgets)
	if err != nil {
		return nil, err
	}
	return decodeSnapshot[core.Budget](data), nil
}

func (s *SQLiteStore) SaveBudgets(ctx context.Context, budgets []core.Budget) error {
	return s.write(ctx, snapshotBudgets, budgets)
}

func (s *SQLiteStore) LoadCategories(ctx context.Context) ([]core.Category, error) {
	data, err := s.read(ctx, snapshotCategories)
	if err != nil {
		return nil, err
	}
	return decodeSnapshot[core.Category](data), nil
}

func (s *SQLiteStore) SaveCategories(ctx context.Context, categories []core.Category) error {
	return s.write(ctx, snapshotCategories, categories)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
