package core

import "sort"

// Aggregates are derived views, recomputed from the transaction collection
// on every call. Nothing here caches, mutates its inputs, or performs I/O.
//
// Transactions whose date does not parse as a calendar day are excluded
// from every aggregate; InvalidDateCount lets callers surface that as a
// data-quality warning.

// MonthTotals is the income/expense/balance summary for one month.
type MonthTotals struct {
	Month   MonthKey `json:"month"`
	Income  Money    `json:"income"`
	Expense Money    `json:"expense"`
	Balance Money    `json:"balance"`
}

// CategoryAmount is an amount aggregated under one category name.
type CategoryAmount struct {
	Name   string `json:"category"`
	Amount Money  `json:"amount"`
}

// BudgetProgress pairs a budget with the actual spend recorded against it.
type BudgetProgress struct {
	Budget
	Actual    Money   `json:"actual"`
	Percent   float64 `json:"percent"`
	Overspent bool    `json:"overspent"`
}

// Status reports "overspent" only when actual spend strictly exceeds the
// limit; hitting the limit exactly is still on track.
func (p BudgetProgress) Status() string {
	if p.Overspent {
		return "overspent"
	}
	return "on track"
}

// MonthSummary is one entry of the all-time rollup: totals plus the
// transactions that produced them.
type MonthSummary struct {
	MonthTotals
	Transactions []Transaction `json:"transactions"`
}

// MonthlyTotals sums amounts by kind over the transactions dated inside
// month. Empty input is valid and yields zeros.
func MonthlyTotals(transactions []Transaction, month MonthKey) MonthTotals {
	totals := MonthTotals{Month: month}
	for _, t := range transactions {
		if !t.Date.InMonth(month) {
			continue
		}
		switch t.Kind {
		case Income:
			totals.Income.Cents += t.Amount.Cents
		case Expense:
			totals.Expense.Cents += t.Amount.Cents
		}
	}
	totals.Balance.Cents = totals.Income.Cents - totals.Expense.Cents
	return totals
}

// CategoryBreakdown sums amounts per category for one month and kind.
// Entries are sorted by category name so repeated calls are reproducible.
// Category names compare case-sensitively, by exact match.
func CategoryBreakdown(transactions []Transaction, month MonthKey, kind Kind) []CategoryAmount {
	sums := make(map[string]int64)
	for _, t := range transactions {
		if t.Kind != kind || !t.Date.InMonth(month) {
			continue
		}
		sums[t.Category] += t.Amount.Cents
	}
	return sortedAmounts(sums)
}

// CombinedCategoryTotals sums amounts per category for one month across
// both kinds, matching the shape the assistant context was built on. Income
// and expense land in the same number; see DESIGN.md before "fixing" this.
func CombinedCategoryTotals(transactions []Transaction, month MonthKey) []CategoryAmount {
	sums := make(map[string]int64)
	for _, t := range transactions {
		if !t.Date.InMonth(month) {
			continue
		}
		sums[t.Category] += t.Amount.Cents
	}
	return sortedAmounts(sums)
}

func sortedAmounts(sums map[string]int64) []CategoryAmount {
	out := make([]CategoryAmount, 0, len(sums))
	for name, cents := range sums {
		out = append(out, CategoryAmount{Name: name, Amount: Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ActualSpend sums expense-kind transactions for one category in one month.
func ActualSpend(transactions []Transaction, category string, month MonthKey) Money {
	var cents int64
	for _, t := range transactions {
		if t.Kind != Expense || t.Category != category || !t.Date.InMonth(month) {
			continue
		}
		cents += t.Amount.Cents
	}
	return Money{Cents: cents}
}

// ComputeBudgetProgress derives progress for every budget whose month
// equals month. A non-positive limit is invalid input: the limit is
// guaranteed positive by construction, so rather than produce Inf/NaN the
// whole call fails with ErrInvalidLimit.
func ComputeBudgetProgress(budgets []Budget, transactions []Transaction, month MonthKey) ([]BudgetProgress, error) {
	var out []BudgetProgress
	for _, b := range budgets {
		if b.Month != month {
			continue
		}
		if b.Limit.Cents <= 0 {
			return nil, ErrInvalidLimit
		}
		actual := ActualSpend(transactions, b.Category, month)
		out = append(out, BudgetProgress{
			Budget:    b,
			Actual:    actual,
			Percent:   float64(actual.Cents) / float64(b.Limit.Cents) * 100,
			Overspent: actual.Cents > b.Limit.Cents,
		})
	}
	return out, nil
}

// MonthlyRollup folds the whole collection into one summary per distinct
// month present in the data, most recent month first. Transactions keep
// their input order within each month.
func MonthlyRollup(transactions []Transaction) []MonthSummary {
	byMonth := make(map[MonthKey]*MonthSummary)
	for _, t := range transactions {
		if t.Date.Validate() != nil {
			continue
		}
		key := t.Date.MonthKey()
		s, ok := byMonth[key]
		if !ok {
			s = &MonthSummary{MonthTotals: MonthTotals{Month: key}}
			byMonth[key] = s
		}
		switch t.Kind {
		case Income:
			s.Income.Cents += t.Amount.Cents
		case Expense:
			s.Expense.Cents += t.Amount.Cents
		}
		s.Transactions = append(s.Transactions, t)
	}

	out := make([]MonthSummary, 0, len(byMonth))
	for _, s := range byMonth {
		s.Balance.Cents = s.Income.Cents - s.Expense.Cents
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month > out[j].Month })
	return out
}

// InvalidDateCount counts transactions that every aggregate will skip.
func InvalidDateCount(transactions []Transaction) int {
	n := 0
	for _, t := range transactions {
		if t.Date.Validate() != nil {
			n++
		}
	}
	return n
}
