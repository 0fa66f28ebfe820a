package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mohaiminul-islam-git/CashFlow/internal/core"
)

func TestFileStoreRoundTrip(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
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

func TestFileStoreMissingSnapshotLoadsEmpty(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	got, err := s.LoadBudgets(context.Background())
	if err != nil {
		t.Fatalf("LoadBudgets: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil collection, got %#v", got)
	}
}

func TestFileStoreMalformedSnapshotLoadsEmpty(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	cases := map[string]string{
		"not json":     `{{{`,
		"wrong shape":  `{"a":1}`,
		"null payload": `null`,
	}
	for name, payload := range cases {
		if err := os.WriteFile(filepath.Join(dir, "transactions.json"), []byte(payload), 0o644); err != nil {
			t.Fatalf("%s: seed file: %v", name, err)
		}
		got, err := s.LoadTransactions(context.Background())
		if err != nil {
			t.Fatalf("%s: LoadTransactions: %v", name, err)
		}
		if got == nil || len(got) != 0 {
			t.Fatalf("%s: expected empty collection, got %#v", name, got)
		}
	}
}

func TestFileStoreOverwrite(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
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

func TestFileStoreCategories(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx := context.Background()

	if err := s.SaveCategories(ctx, core.DefaultCategories()); err != nil {
		t.Fatalf("SaveCategories: %v", err)
	}
	got, err := s.LoadCategories(ctx)
	if err != nil {
		t.Fatalf("LoadCategories: %v", err)
	}
	if len(got) != len(core.DefaultCategories()) {
		t.Fatalf("expected %d categories, got %d", len(core.DefaultCategories()), len(got))
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	if _, err := New(Config{Type: "redis"}); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}
