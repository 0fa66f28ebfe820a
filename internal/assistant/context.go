// Package assistant builds the financial context handed to the language
// model and wraps the chat completion client behind a small port.
package assistant

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mohaiminul-islam-git/CashFlow/internal/core"
)

// recentLimit caps how many transactions travel with each question.
const recentLimit = 10

// RecentTransaction is the reduced projection sent to the model. Payment
// method, tags and identifiers are deliberately left out.
type RecentTransaction struct {
	Date     core.Date  `json:"date"`
	Amount   core.Money `json:"amount"`
	Category string     `json:"category"`
	Kind     core.Kind  `json:"type"`
	Note     string     `json:"note,omitempty"`
}

// Context is the snapshot of the user's finances serialized into the
// prompt. Field names match the shape the model was prompted with
// historically, so they stay camelCase.
type Context struct {
	CurrentMonth              core.MonthKey         `json:"currentMonth"`
	TotalTransactionsCount    int                   `json:"totalTransactionsCount"`
	MonthlySpendingByCategory []core.CategoryAmount `json:"monthlySpendingByCategory"`
	ActiveBudgets             []core.Budget         `json:"activeBudgets"`
	RecentTransactions        []RecentTransaction   `json:"recentTransactions"`
}

// BuildContext assembles the assistant context for asOf. Output is fully
// determined by the inputs: category totals are name-sorted and the recent
// slice keeps collection order, newest entries last in, first out.
func BuildContext(transactions []core.Transaction, budgets []core.Budget, asOf core.MonthKey) Context {
	ctx := Context{
		CurrentMonth:              asOf,
		TotalTransactionsCount:    len(transactions),
		MonthlySpendingByCategory: core.CombinedCategoryTotals(transactions, asOf),
		ActiveBudgets:             []core.Budget{},
		RecentTransactions:        []RecentTransaction{},
	}

	for _, b := range budgets {
		if b.Month == asOf {
			ctx.ActiveBudgets = append(ctx.ActiveBudgets, b)
		}
	}
	sort.SliceStable(ctx.ActiveBudgets, func(i, j int) bool {
		return ctx.ActiveBudgets[i].Category < ctx.ActiveBudgets[j].Category
	})

	start := len(transactions) - recentLimit
	if start < 0 {
		start = 0
	}
	for _, t := range transactions[start:] {
		ctx.RecentTransactions = append(ctx.RecentTransactions, RecentTransaction{
			Date:     t.Date,
			Amount:   t.Amount,
			Category: t.Category,
			Kind:     t.Kind,
			Note:     t.Note,
		})
	}
	return ctx
}

// JSON renders the context for prompt embedding.
func (c Context) JSON() (string, error) {
	out, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("marshal assistant context: %w", err)
	}
	return string(out), nil
}
