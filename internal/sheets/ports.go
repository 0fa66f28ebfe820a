// Package sheets defines the outbound port for mirroring transactions to a
// spreadsheet, with a Google Sheets adapter and an in-memory fake.
package sheets

import (
	"context"

	"github.com/mohaiminul-islam-git/CashFlow/internal/core"
)

// TransactionWriter appends one transaction row to the mirror sheet and
// returns a reference to the written row.
type TransactionWriter interface {
	Append(ctx context.Context, t core.Transaction) (rowRef string, err error)
}
