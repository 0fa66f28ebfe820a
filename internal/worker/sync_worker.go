// Package worker mirrors created transactions to the configured
// spreadsheet by consuming the transaction event stream.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mohaiminul-islam-git/CashFlow/internal/amqp"
	"github.com/mohaiminul-islam-git/CashFlow/internal/sheets"
)

// SyncWorker consumes transaction events and appends created transactions
// to the sheet. Updates and deletes are acknowledged without a sheet write:
// the mirror is append-only.
type SyncWorker struct {
	client *amqp.Client
	writer sheets.TransactionWriter
	logger *slog.Logger
}

func New(client *amqp.Client, writer sheets.TransactionWriter, logger *slog.Logger) *SyncWorker {
	if logger == nil {
		logger = slog.Default()
	}
	return &SyncWorker{client: client, writer: writer, logger: logger}
}

// Run blocks consuming events until ctx is done.
func (w *SyncWorker) Run(ctx context.Context) error {
	return w.client.ConsumeTransactionEvents(ctx, func(event *amqp.TransactionEvent) error {
		return w.Handle(ctx, event)
	})
}

// Handle processes one event. Returning an error requeues the event.
func (w *SyncWorker) Handle(ctx context.Context, event *amqp.TransactionEvent) error {
	if event.Action != amqp.ActionCreated {
		w.logger.DebugContext(ctx, "Skipping non-create event",
			"action", event.Action,
			"transaction_id", event.Transaction.ID)
		return nil
	}

	rowRef, err := w.writer.Append(ctx, event.Transaction)
	if err != nil {
		return fmt.Errorf("append to sheet: %w", err)
	}

	w.logger.InfoContext(ctx, "Synced transaction to sheet",
		"transaction_id", event.Transaction.ID,
		"row", rowRef)
	return nil
}
