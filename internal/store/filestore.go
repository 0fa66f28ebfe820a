package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mohaiminul-islam-git/CashFlow/internal/core"
)

// FileStore keeps each collection in its own JSON file under a data
// directory. Writes go through a temp file and rename so a crash never
// leaves a half-written snapshot behind.
type FileStore struct {
	dir string
}

// NewFileStore creates the data directory if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = "data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// read returns the raw snapshot payload, or nil when the file does not
// exist yet.
func (s *FileStore) read(name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read snapshot %s: %w", name, err)
	}
	return data, nil
}

func (s *FileStore) save(name string, in any) error {
	data, err := json.MarshalIndent(in, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", name, err)
	}
	tmp := s.path(name) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", name, err)
	}
	if err := os.Rename(tmp, s.path(name)); err != nil {
		return fmt.Errorf("commit snapshot %s: %w", name, err)
	}
	return nil
}

// decodeSnapshot parses a snapshot payload. A missing or malformed payload
// yields the empty collection: corrupted local data resets rather than
// wedging startup.
func decodeSnapshot[T any](data []byte) []T {
	out := []T{}
	if len(data) == 0 {
		return out
	}
	var parsed []T
	if err := json.Unmarshal(data, &parsed); err != nil || parsed == nil {
		return out
	}
	return parsed
}

func (s *FileStore) LoadTransactions(_ context.Context) ([]core.Transaction, error) {
	data, err := s.read(snapshotTransactions)
	if err != nil {
		return nil, err
	}
	return decodeSnapshot[core.Transaction](data), nil
}

func (s *FileStore) SaveTransactions(_ context.Context, transactions []core.Transaction) error {
	return s.save(snapshotTransactions, transactions)
}

func (s *FileStore) LoadBudgets(_ context.Context) ([]core.Budget, error) {
	data, err := s.read(snapshotBudgets)
	if err != nil {
		return nil, err
	}
	return decodeSnapshot[core.Budget](data), nil
}

func (s *FileStore) SaveBudgets(_ context.Context, budgets []core.Budget) error {
	return s.save(snapshotBudgets, budgets)
}

func (s *FileStore) LoadCategories(_ context.Context) ([]core.Category, error) {
	data, err := s.read(snapshotCategories)
	if err != nil {
		return nil, err
	}
	return decodeSnapshot[core.Category](data), nil
}

func (s *FileStore) SaveCategories(_ context.Context, categories []core.Category) error {
	return s.save(snapshotCategories, categories)
}

func (s *FileStore) Close() error { return nil }
