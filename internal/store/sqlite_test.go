package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mohaiminul-islam-git/CashFlow/internal/core"
)

func newSQLiteStore(t *testing.T) (*SQLiteStore, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "cashflow.db")
	s, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s, dbPath
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s, _ := newSQLiteStore(t)
	ctx := context.Background()

	want := []core.Transaction{
		{ID: "t1", Date: "2025-01-10", Amount: core.Money{Cents: 20000}, Kind: core.Expense, Category: "Food & Dining"},
	}
	if err := s.SaveTransactions(ctx, want); err != nil {
		t.Fatalf("SaveTransactions: %v", err)
	}
	got, err := s.LoadTransactions(ctx)
	if err != nil {
		t.Fatalf("LoadTransactions: %v", err)
	}
	if len(got) != 1 || got[0].ID != "t1" || got[0].Amount.Cents != 20000 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestSQLiteStoreMissingSnapshotLoadsEmpty(t *testing.T) {
	s, _ := newSQLiteStore(t)
	got, err := s.LoadBudgets(context.Background())
	if err != nil {
		t.Fatalf("LoadBudgets: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil collection, got %#v", got)
	}
}

func TestSQLiteStoreMalformedSnapshotLoadsEmpty(t *testing.T) {
	s, _ := newSQLiteStore(t)
	ctx := context.Background()

	cases := map[string]string{
		"not json":     `{{{`,
		"wrong shape":  `{"a":1}`,
		"null payload": `null`,
	}
	for name, payload := range cases {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO snapshots (name, payload, updated_at)
			VALUES (?, ?, '')
			ON CONFLICT(name) DO UPDATE SET payload = excluded.payload`,
			snapshotTransactions, []byte(payload),
		)
		if err != nil {
			t.Fatalf("%s: seed row: %v", name, err)
		}
		got, err := s.LoadTransactions(ctx)
		if err != nil {
			t.Fatalf("%s: LoadTransactions: %v", name, err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("%s: expected empty collection, got %#v", name, got)
		}
	}
}

func TestSQLiteStoreOverwrite(t *testing.T) {
	s, _ := newSQLiteStore(t)
	ctx := context.Background()

	first := []core.Budget{{Category: "Transport", Limit: core.Money{Cents: 5000}, Month: "2025-01"}}
	if err := s.SaveBudgets(ctx, first); err != nil {
		t.Fatalf("SaveBudgets: %v", err)
	}
	second := []core.Budget{
		{Category: "Transport", Limit: core.Money{Cents: 8000}, Month: "2025-01"},
		{Category: "Shopping", Limit: core.Money{Cents: 3000}, Month: "2025-01"},
	}
	if err := s.SaveBudgets(ctx, second); err != nil {
		t.Fatalf("SaveBudgets: %v", err)
	}

	got, err := s.LoadBudgets(ctx)
	if err != nil {
		t.Fatalf("LoadBudgets: %v", err)
	}
	if len(got) != 2 || got[0].Limit.Cents != 8000 {
		t.Fatalf("save must replace the whole snapshot, got %+v", got)
	}
}

func TestSQLiteStoreReopen(t *testing.T) {
	s, dbPath := newSQLiteStore(t)
	ctx := context.Background()

	want := []core.Category{{Name: "Transport"}}
	if err := s.SaveCategories(ctx, want); err != nil {
		t.Fatalf("SaveCategories: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// Reopening runs the migrations again; an up-to-date schema is not an error.
	reopened, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("NewSQLiteStore reopen: %v", err)
	}
	defer reopened.Close()

	got, err := reopened.LoadCategories(ctx)
	if err != nil {
		t.Fatalf("LoadCategories: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Transport" {
		t.Fatalf("data must survive reopen, got %+v", got)
	}
}

func TestNewSQLiteStoreRequiresPath(t *testing.T) {
	if _, err := NewSQLiteStore(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
