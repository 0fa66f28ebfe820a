package core

import "testing"

func TestDateValidate(t *testing.T) {
	cases := []struct {
		d  Date
		ok bool
	}{
		{"2025-01-01", true},
		{"2025-12-31", true},
		{"2025-02-30", false},
		{"2025-13-01", false},
		{"not-a-date", false},
		{"", false},
	}
	for i, tc := range cases {
		err := tc.d.Validate()
		if tc.ok && err != nil {
			t.Fatalf("case %d expected ok, got %v", i, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestDateInMonth(t *testing.T) {
	if !Date("2025-01-05").InMonth("2025-01") {
		t.Fatalf("expected 2025-01-05 in 2025-01")
	}
	if Date("2025-02-05").InMonth("2025-01") {
		t.Fatalf("did not expect 2025-02-05 in 2025-01")
	}
	// Unparsable dates never match any month, even on prefix.
	if Date("2025-01-99").InMonth("2025-01") {
		t.Fatalf("invalid date must not match a month")
	}
}

func TestTransactionValidate(t *testing.T) {
	good := Transaction{
		ID:       "t1",
		Date:     "2025-01-01",
		Amount:   Money{Cents: 100},
		Kind:     Expense,
		Category: "Food & Dining",
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []Transaction{
		{Date: "bad", Amount: Money{Cents: 1}, Kind: Expense, Category: "c"},
		{Date: "2025-01-01", Amount: Money{Cents: 0}, Kind: Expense, Category: "c"},
		{Date: "2025-01-01", Amount: Money{Cents: 1}, Kind: "transfer", Category: "c"},
		{Date: "2025-01-01", Amount: Money{Cents: 1}, Kind: Income, Category: "  "},
	}
	for i, tr := range bads {
		if err := tr.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestBudgetValidate(t *testing.T) {
	good := Budget{Category: "Food & Dining", Limit: Money{Cents: 15000}, Month: "2025-01"}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	bads := []Budget{
		{Category: "", Limit: Money{Cents: 100}, Month: "2025-01"},
		{Category: "Food & Dining", Limit: Money{Cents: 0}, Month: "2025-01"},
		{Category: "Food & Dining", Limit: Money{Cents: 100}, Month: "2025-1"},
	}
	for i, b := range bads {
		if err := b.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestNormalizeCategory(t *testing.T) {
	cats := DefaultCategories()
	if got := NormalizeCategory("Transport", cats); got != "Transport" {
		t.Fatalf("known category changed: %q", got)
	}
	if got := NormalizeCategory("transport", cats); got != FallbackCategory {
		t.Fatalf("matching must be case-sensitive, got %q", got)
	}
	if got := NormalizeCategory("Groceries", cats); got != FallbackCategory {
		t.Fatalf("unknown category must fall back, got %q", got)
	}
}

func TestNormalizePaymentMethod(t *testing.T) {
	methods := DefaultPaymentMethods()
	if got := NormalizePaymentMethod("Cash", methods); got != "Cash" {
		t.Fatalf("known method changed: %q", got)
	}
	if got := NormalizePaymentMethod("Cheque", methods); got != FallbackPaymentMethod {
		t.Fatalf("unknown method must fall back, got %q", got)
	}
}
