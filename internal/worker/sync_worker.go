// Package worker mirrors ledger changes from the AMQP feed into the
// spreadsheet.
package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"finmo/internal/amqp"
	"finmo/internal/core"
	"finmo/internal/log"
	"finmo/internal/sheets"
	"finmo/internal/store"
)

// SyncWorker applies transaction events to the sheet mirror.
type SyncWorker struct {
	local  store.Reader
	mirror sheets.Mirror
	logger *log.Logger
}

// NewSyncWorker builds a worker. local may be nil, in which case startup
// reconciliation is skipped.
func NewSyncWorker(local store.Reader, mirror sheets.Mirror, logger *log.Logger) *SyncWorker {
	if logger == nil {
		logger = log.Discard()
	}
	return &SyncWorker{
		local:  local,
		mirror: mirror,
		logger: logger.WithComponent(log.ComponentWorker),
	}
}

// HandleEvent processes a single event from the feed. Errors cause the
// message to be requeued, so every branch is idempotent.
func (w *SyncWorker) HandleEvent(ctx context.Context, ev *amqp.TransactionEvent) error {
	switch ev.Op {
	case amqp.EventTransactionCreated:
		ref, err := w.mirror.AppendTransaction(ctx, *ev.Transaction)
		if err != nil {
			return fmt.Errorf("append transaction %s: %w", ev.TransactionID, err)
		}
		w.logger.InfoContext(ctx, "Transaction mirrored",
			log.FieldTransactionID, ev.TransactionID,
			log.FieldSheetsRef, ref,
			log.FieldAmountCents, ev.Transaction.Amount.Cents)

	case amqp.EventTransactionDeleted:
		found, err := w.mirror.DeleteTransaction(ctx, ev.TransactionID)
		if err != nil {
			return fmt.Errorf("delete transaction %s: %w", ev.TransactionID, err)
		}
		if !found {
			w.logger.WarnContext(ctx, "Deleted transaction was not mirrored", log.FieldTransactionID, ev.TransactionID)
			return nil
		}
		w.logger.InfoContext(ctx, "Mirrored transaction removed", log.FieldTransactionID, ev.TransactionID)

	case amqp.EventLedgerReset:
		if err := w.mirror.ClearTransactions(ctx); err != nil {
			return fmt.Errorf("clear mirror: %w", err)
		}
		w.logger.InfoContext(ctx, "Mirror cleared after ledger reset")

	default:
		w.logger.WarnContext(ctx, "Ignoring unknown event", log.FieldEvent, ev.Op)
	}
	return nil
}

// ReconcileResult summarises a startup reconciliation.
type ReconcileResult struct {
	Appended int
	Removed  int
	Errors   int
}

// StartupSyncCheck brings the mirror in line with the local ledger: rows for
// transactions that no longer exist are removed, missing ones are appended.
// This recovers from events lost while the worker was down.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) (ReconcileResult, error) {
	var res ReconcileResult
	if w.local == nil {
		w.logger.InfoContext(ctx, "No local store configured, skipping startup sync")
		return res, nil
	}

	local, err := w.localTransactions(ctx)
	if err != nil {
		return res, err
	}

	mirrored, err := w.mirror.ListTransactionIDs(ctx)
	if err != nil {
		return res, fmt.Errorf("list mirrored transactions: %w", err)
	}

	localByID := make(map[string]struct{}, len(local))
	for _, t := range local {
		localByID[t.ID] = struct{}{}
	}
	mirroredByID := make(map[string]struct{}, len(mirrored))
	for _, id := range mirrored {
		mirroredByID[id] = struct{}{}
	}

	for _, id := range mirrored {
		if _, ok := localByID[id]; ok {
			continue
		}
		if _, err := w.mirror.DeleteTransaction(ctx, id); err != nil {
			w.logger.ErrorContext(ctx, "Failed to remove stale row", log.FieldTransactionID, id, log.FieldError, err)
			res.Errors++
			continue
		}
		res.Removed++
	}

	// Oldest first so the sheet reads chronologically.
	for i := len(local) - 1; i >= 0; i-- {
		t := local[i]
		if _, ok := mirroredByID[t.ID]; ok {
			continue
		}
		if _, err := w.mirror.AppendTransaction(ctx, t); err != nil {
			w.logger.ErrorContext(ctx, "Failed to append missing row", log.FieldTransactionID, t.ID, log.FieldError, err)
			res.Errors++
			continue
		}
		res.Appended++
	}

	w.logger.InfoContext(ctx, "Startup sync completed",
		"local", len(local),
		"mirrored", len(mirrored),
		"appended", res.Appended,
		"removed", res.Removed,
		"errors", res.Errors)

	return res, nil
}

func (w *SyncWorker) localTransactions(ctx context.Context) ([]core.Transaction, error) {
	raw, ok, err := w.local.Get(ctx, store.KeyTransactions)
	if err != nil {
		return nil, fmt.Errorf("read local transactions: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var txs []core.Transaction
	if err := json.Unmarshal(raw, &txs); err != nil {
		return nil, fmt.Errorf("decode local transactions: %w", err)
	}
	return txs, nil
}
