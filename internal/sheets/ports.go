// Package sheets defines the ports of the spreadsheet mirror that receives
// a copy of every transaction.
package sheets

import (
	"context"

	"finmo/internal/core"
)

// Ports for outbound adapters.
type (
	TransactionWriter interface {
		// AppendTransaction adds a row for t unless one with the same ID
		// already exists. It returns a reference to the row.
		AppendTransaction(ctx context.Context, t core.Transaction) (rowRef string, err error)
	}

	TransactionDeleter interface {
		// DeleteTransaction removes the row with the given ID and reports
		// whether one was found.
		DeleteTransaction(ctx context.Context, id string) (bool, error)
	}

	TransactionClearer interface {
		// ClearTransactions removes every mirrored row, keeping the header.
		ClearTransactions(ctx context.Context) error
	}

	TransactionLister interface {
		// ListTransactionIDs returns the IDs currently mirrored, in sheet order.
		ListTransactionIDs(ctx context.Context) ([]string, error)
	}

	// Mirror is everything the sync worker needs from the spreadsheet.
	Mirror interface {
		TransactionWriter
		TransactionDeleter
		TransactionClearer
		TransactionLister
	}
)
