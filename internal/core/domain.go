package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  Kind = "income"
	Expense Kind = "expense"
)

type (
	// Kind is the direction of a transaction. Amounts are always positive;
	// the kind carries the sign of meaning.
	Kind string

	// Date is a calendar day in YYYY-MM-DD form. Month membership is a
	// prefix test on the string, so an unparsable date never matches.
	Date string

	// MonthKey identifies a calendar month in YYYY-MM form.
	MonthKey string

	Transaction struct {
		ID            string   `json:"id"`
		Date          Date     `json:"date"`
		Amount        Money    `json:"amount"`
		Kind          Kind     `json:"type"`
		Category      string   `json:"category"`
		PaymentMethod string   `json:"paymentMethod"`
		Note          string   `json:"note"`
		Recurring     bool     `json:"isRecurring,omitempty"`
		Tags          []string `json:"tags,omitempty"`
	}

	Budget struct {
		Category string   `json:"category"`
		Limit    Money    `json:"limit"`
		Month    MonthKey `json:"month"`
	}

	// Category is read-only reference data seeded at first run.
	Category struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Icon  string `json:"icon"`
		Color string `json:"color"`
	}
)

var (
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidMonth  = errors.New("invalid month")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidKind   = errors.New("invalid transaction kind")
	ErrInvalidLimit  = errors.New("invalid budget limit")
	ErrEmptyCategory = errors.New("empty category")
	ErrNoteTooLong   = errors.New("note too long")
)

// FallbackCategory and FallbackPaymentMethod absorb labels that do not
// match the seeded reference data.
const (
	FallbackCategory      = "Others"
	FallbackPaymentMethod = "Other"
)

func DefaultCategories() []Category {
	return []Category{
		{ID: "cat-1", Name: "Housing", Icon: "🏠", Color: "#1E293B"},
		{ID: "cat-2", Name: "Food & Dining", Icon: "🍔", Color: "#10B981"},
		{ID: "cat-3", Name: "Transport", Icon: "🚗", Color: "#3B82F6"},
		{ID: "cat-4", Name: "Shopping", Icon: "🛍️", Color: "#F59E0B"},
		{ID: "cat-5", Name: "Utilities", Icon: "⚡", Color: "#6366F1"},
		{ID: "cat-6", Name: "Healthcare", Icon: "🏥", Color: "#EF4444"},
		{ID: "cat-7", Name: "Entertainment", Icon: "🎮", Color: "#8B5CF6"},
		{ID: "cat-8", Name: "Income", Icon: "💰", Color: "#059669"},
		{ID: "cat-9", Name: FallbackCategory, Icon: "📦", Color: "#94A3B8"},
	}
}

func DefaultPaymentMethods() []string {
	return []string{"Cash", "Credit Card", "Debit Card", "Bank Transfer", "Mobile Pay"}
}

func (k Kind) Validate() error {
	switch k {
	case Income, Expense:
		return nil
	default:
		return ErrInvalidKind
	}
}

// Today returns the current day as a Date.
func Today() Date {
	return Date(time.Now().Format("2006-01-02"))
}

func (d Date) Validate() error {
	if _, err := time.Parse("2006-01-02", string(d)); err != nil {
		return ErrInvalidDate
	}
	return nil
}

// MonthKey returns the YYYY-MM prefix of the date. Callers that need a
// valid month must check Validate first.
func (d Date) MonthKey() MonthKey {
	if len(d) < 7 {
		return MonthKey(d)
	}
	return MonthKey(d[:7])
}

// InMonth reports whether the date is a valid calendar day inside m.
func (d Date) InMonth(m MonthKey) bool {
	return d.Validate() == nil && strings.HasPrefix(string(d), string(m))
}

func (m MonthKey) Validate() error {
	if _, err := time.Parse("2006-01", string(m)); err != nil {
		return ErrInvalidMonth
	}
	return nil
}

// Label renders the month for display, e.g. "January 2025".
func (m MonthKey) Label() string {
	t, err := time.Parse("2006-01", string(m))
	if err != nil {
		return string(m)
	}
	return t.Format("January 2006")
}

// CurrentMonth returns the month key for the current day.
func CurrentMonth() MonthKey {
	return MonthKey(time.Now().Format("2006-01"))
}

func (t Transaction) Validate() error {
	if err := t.Date.Validate(); err != nil {
		return err
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if err := t.Kind.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if len(t.Note) > 500 {
		return ErrNoteTooLong
	}
	return nil
}

func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return ErrEmptyCategory
	}
	if b.Limit.Cents <= 0 {
		return ErrInvalidLimit
	}
	return b.Month.Validate()
}

// BudgetKey identifies a budget by its uniqueness key (category, month).
type BudgetKey struct {
	Category string
	Month    MonthKey
}

func (b Budget) Key() BudgetKey {
	return BudgetKey{Category: b.Category, Month: b.Month}
}

// NormalizeCategory maps a free-form label onto the seeded category set,
// falling back to FallbackCategory. Matching is exact and case-sensitive.
func NormalizeCategory(name string, categories []Category) string {
	name = strings.TrimSpace(name)
	for _, c := range categories {
		if c.Name == name {
			return name
		}
	}
	return FallbackCategory
}

// NormalizePaymentMethod maps a free-form label onto the known payment
// methods, falling back to FallbackPaymentMethod.
func NormalizePaymentMethod(method string, known []string) string {
	method = strings.TrimSpace(method)
	for _, m := range known {
		if m == method {
			return method
		}
	}
	return FallbackPaymentMethod
}
