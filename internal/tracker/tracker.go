// Package tracker holds the in-memory working state of a single user's
// finances and orchestrates validation, persistence and event publishing
// around every mutation. Reads recompute aggregates from the collections;
// nothing derived is stored.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/mohaiminul-islam-git/CashFlow/internal/amqp"
	"github.com/mohaiminul-islam-git/CashFlow/internal/core"
	"github.com/mohaiminul-islam-git/CashFlow/internal/store"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrBudgetNotFound      = errors.New("budget not found")
)

// EventPublisher is the slice of the AMQP client the tracker needs.
// Publishing is best-effort: a failed publish is logged, never returned.
type EventPublisher interface {
	PublishTransactionEvent(ctx context.Context, action string, t core.Transaction) error
}

// Tracker is safe for concurrent use. All mutations persist the affected
// collection before returning.
type Tracker struct {
	mu           sync.Mutex
	transactions []core.Transaction
	budgets      []core.Budget
	categories   []core.Category

	store     store.Store
	publisher EventPublisher
	logger    *slog.Logger
}

// New loads the collections from s. An empty category snapshot is seeded
// with the defaults so a fresh installation has something to pick from.
func New(ctx context.Context, s store.Store, publisher EventPublisher, logger *slog.Logger) (*Tracker, error) {
	if logger == nil {
		logger = slog.Default()
	}

	transactions, err := s.LoadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}
	budgets, err := s.LoadBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("load budgets: %w", err)
	}
	categories, err := s.LoadCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	if len(categories) == 0 {
		categories = core.DefaultCategories()
		if err := s.SaveCategories(ctx, categories); err != nil {
			return nil, fmt.Errorf("seed categories: %w", err)
		}
	}

	if n := core.InvalidDateCount(transactions); n > 0 {
		logger.WarnContext(ctx, "Loaded transactions with invalid dates, they are excluded from aggregates",
			"count", n)
	}

	return &Tracker{
		transactions: transactions,
		budgets:      budgets,
		categories:   categories,
		store:        s,
		publisher:    publisher,
		logger:       logger,
	}, nil
}

// TransactionInput is the mutable part of a transaction. ID assignment
// stays with the tracker.
type TransactionInput struct {
	Date          core.Date  `json:"date"`
	Amount        core.Money `json:"amount"`
	Kind          core.Kind  `json:"type"`
	Category      string     `json:"category"`
	PaymentMethod string     `json:"paymentMethod"`
	Note          string     `json:"note"`
	Recurring     bool       `json:"isRecurring,omitempty"`
	Tags          []string   `json:"tags,omitempty"`
}

func (t *Tracker) buildTransaction(id string, in TransactionInput) (core.Transaction, error) {
	tx := core.Transaction{
		ID:            id,
		Date:          in.Date,
		Amount:        in.Amount,
		Kind:          in.Kind,
		Category:      core.NormalizeCategory(in.Category, t.categories),
		PaymentMethod: core.NormalizePaymentMethod(in.PaymentMethod, core.DefaultPaymentMethods()),
		Note:          strings.TrimSpace(in.Note),
		Recurring:     in.Recurring,
		Tags:          in.Tags,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}

// AddTransaction validates, normalizes and stores a new transaction.
func (t *Tracker) AddTransaction(ctx context.Context, in TransactionInput) (core.Transaction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	tx, err := t.buildTransaction(uuid.NewString(), in)
	if err != nil {
		return core.Transaction{}, err
	}

	t.transactions = append(t.transactions, tx)
	if err := t.store.SaveTransactions(ctx, t.transactions); err != nil {
		t.transactions = t.transactions[:len(t.transactions)-1]
		return core.Transaction{}, fmt.Errorf("persist transactions: %w", err)
	}

	t.publish(ctx, amqp.ActionCreated, tx)
	return tx, nil
}

// UpdateTransaction replaces the mutable fields of an existing
// transaction, keeping its ID.
func (t *Tracker) UpdateTransaction(ctx context.Context, id string, in TransactionInput) (core.Transaction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.indexOf(id)
	if idx < 0 {
		return core.Transaction{}, ErrTransactionNotFound
	}

	tx, err := t.buildTransaction(id, in)
	if err != nil {
		return core.Transaction{}, err
	}

	previous := t.transactions[idx]
	t.transactions[idx] = tx
	if err := t.store.SaveTransactions(ctx, t.transactions); err != nil {
		t.transactions[idx] = previous
		return core.Transaction{}, fmt.Errorf("persist transactions: %w", err)
	}

	t.publish(ctx, amqp.ActionUpdated, tx)
	return tx, nil
}

// DeleteTransaction removes a transaction by ID.
func (t *Tracker) DeleteTransaction(ctx context.Context, id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.indexOf(id)
	if idx < 0 {
		return ErrTransactionNotFound
	}

	removed := t.transactions[idx]
	updated := append(append([]core.Transaction{}, t.transactions[:idx]...), t.transactions[idx+1:]...)
	if err := t.store.SaveTransactions(ctx, updated); err != nil {
		return fmt.Errorf("persist transactions: %w", err)
	}
	t.transactions = updated

	t.publish(ctx, amqp.ActionDeleted, removed)
	return nil
}

// DuplicateTransaction copies an existing transaction under a fresh ID
// with the date reset to today.
func (t *Tracker) DuplicateTransaction(ctx context.Context, id string) (core.Transaction, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	idx := t.indexOf(id)
	if idx < 0 {
		return core.Transaction{}, ErrTransactionNotFound
	}

	tx := t.transactions[idx]
	tx.ID = uuid.NewString()
	tx.Date = core.Today()

	t.transactions = append(t.transactions, tx)
	if err := t.store.SaveTransactions(ctx, t.transactions); err != nil {
		t.transactions = t.transactions[:len(t.transactions)-1]
		return core.Transaction{}, fmt.Errorf("persist transactions: %w", err)
	}

	t.publish(ctx, amqp.ActionCreated, tx)
	return tx, nil
}

func (t *Tracker) indexOf(id string) int {
	for i, tx := range t.transactions {
		if tx.ID == id {
			return i
		}
	}
	return -1
}

func (t *Tracker) publish(ctx context.Context, action string, tx core.Transaction) {
	if t.publisher == nil {
		return
	}
	if err := t.publisher.PublishTransactionEvent(ctx, action, tx); err != nil {
		t.logger.ErrorContext(ctx, "Failed to publish transaction event",
			"action", action,
			"transaction_id", tx.ID,
			"error", err)
	}
}

// ListFilter narrows and orders ListTransactions output. Zero value means
// everything, newest date first.
type ListFilter struct {
	Search string    // substring match on category and note, case-insensitive
	Kind   core.Kind // empty means both kinds
	Month  core.MonthKey
	SortBy string // "date" (default) or "amount"
	Asc    bool
}

// ListTransactions returns a filtered copy of the collection.
func (t *Tracker) ListTransactions(f ListFilter) []core.Transaction {
	t.mu.Lock()
	defer t.mu.Unlock()

	search := strings.ToLower(f.Search)
	out := []core.Transaction{}
	for _, tx := range t.transactions {
		if f.Kind != "" && tx.Kind != f.Kind {
			continue
		}
		if f.Month != "" && !tx.Date.InMonth(f.Month) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(tx.Category), search) &&
			!strings.Contains(strings.ToLower(tx.Note), search) {
			continue
		}
		out = append(out, tx)
	}

	less := func(i, j int) bool { return out[i].Date > out[j].Date }
	switch {
	case f.SortBy == "amount" && f.Asc:
		less = func(i, j int) bool { return out[i].Amount.Cents < out[j].Amount.Cents }
	case f.SortBy == "amount":
		less = func(i, j int) bool { return out[i].Amount.Cents > out[j].Amount.Cents }
	case f.Asc:
		less = func(i, j int) bool { return out[i].Date < out[j].Date }
	}
	sort.SliceStable(out, less)
	return out
}

// SetBudget inserts or replaces the budget for its (category, month) pair.
func (t *Tracker) SetBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	updated := make([]core.Budget, 0, len(t.budgets)+1)
	for _, existing := range t.budgets {
		if existing.Key() != b.Key() {
			updated = append(updated, existing)
		}
	}
	updated = append(updated, b)

	if err := t.store.SaveBudgets(ctx, updated); err != nil {
		return core.Budget{}, fmt.Errorf("persist budgets: %w", err)
	}
	t.budgets = updated
	return b, nil
}

// DeleteBudget removes the budget for the given category and month.
func (t *Tracker) DeleteBudget(ctx context.Context, category string, month core.MonthKey) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	key := core.BudgetKey{Category: category, Month: month}
	updated := make([]core.Budget, 0, len(t.budgets))
	found := false
	for _, b := range t.budgets {
		if b.Key() == key {
			found = true
			continue
		}
		updated = append(updated, b)
	}
	if !found {
		return ErrBudgetNotFound
	}

	if err := t.store.SaveBudgets(ctx, updated); err != nil {
		return fmt.Errorf("persist budgets: %w", err)
	}
	t.budgets = updated
	return nil
}

// Budgets returns a copy of every stored budget.
func (t *Tracker) Budgets() []core.Budget {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]core.Budget, len(t.budgets))
	copy(out, t.budgets)
	return out
}

// Categories returns a copy of the category list.
func (t *Tracker) Categories() []core.Category {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]core.Category, len(t.categories))
	copy(out, t.categories)
	return out
}

// Transactions returns a copy of the whole collection in stored order.
func (t *Tracker) Transactions() []core.Transaction {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]core.Transaction, len(t.transactions))
	copy(out, t.transactions)
	return out
}

// Dashboard is the month view: totals, expense breakdown and budget
// progress, recomputed on every call.
type Dashboard struct {
	Totals    core.MonthTotals      `json:"totals"`
	Breakdown []core.CategoryAmount `json:"breakdown"`
	Budgets   []core.BudgetProgress `json:"budgets"`
}

// DashboardFor assembles the dashboard for one month.
func (t *Tracker) DashboardFor(month core.MonthKey) (Dashboard, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	progress, err := core.ComputeBudgetProgress(t.budgets, t.transactions, month)
	if err != nil {
		return Dashboard{}, err
	}
	if progress == nil {
		progress = []core.BudgetProgress{}
	}
	return Dashboard{
		Totals:    core.MonthlyTotals(t.transactions, month),
		Breakdown: core.CategoryBreakdown(t.transactions, month, core.Expense),
		Budgets:   progress,
	}, nil
}

// Summary returns the all-time rollup, most recent month first.
func (t *Tracker) Summary() []core.MonthSummary {
	t.mu.Lock()
	defer t.mu.Unlock()
	return core.MonthlyRollup(t.transactions)
}
