// Package store persists the tracker's collections as whole-document
// snapshots. Two backends exist: flat JSON files and a SQLite key/value
// table. Both share the same contract: a snapshot that is missing or does
// not parse loads as an empty collection, never as an error.
package store

import (
	"context"
	"fmt"

	"github.com/mohaiminul-islam-git/CashFlow/internal/core"
)

// Snapshot names, shared by both backends.
const (
	snapshotTransactions = "transactions"
	snapshotBudgets      = "budgets"
	snapshotCategories   = "categories"
)

// Store loads and saves the three collections the tracker owns.
type Store interface {
	LoadTransactions(ctx context.Context) ([]core.Transaction, error)
	SaveTransactions(ctx context.Context, transactions []core.Transaction) error

	LoadBudgets(ctx context.Context) ([]core.Budget, error)
	SaveBudgets(ctx context.Context, budgets []core.Budget) error

	LoadCategories(ctx context.Context) ([]core.Category, error)
	SaveCategories(ctx context.Context, categories []core.Category) error

	Close() error
}

// BackendType selects the persistence backend.
type BackendType string

const (
	FileBackend   BackendType = "file"
	SQLiteBackend BackendType = "sqlite"
)

func (t BackendType) IsValid() bool {
	return t == FileBackend || t == SQLiteBackend
}

// Config carries backend selection plus the settings each backend needs.
type Config struct {
	Type         BackendType
	DataDir      string
	SQLiteDBPath string
}

// New builds the store selected by cfg.Type.
func New(cfg Config) (Store, error) {
	switch cfg.Type {
	case FileBackend:
		return NewFileStore(cfg.DataDir)
	case SQLiteBackend:
		return NewSQLiteStore(cfg.SQLiteDBPath)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Type)
	}
}
