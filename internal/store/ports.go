// Package store defines the key-value persistence ports used by the ledger.
package store

import (
	"context"
	"errors"
)

// Keys under which the ledger persists its state. Values are JSON.
const (
	KeyIncome       = "finmo_income"
	KeyPayday       = "finmo_payday"
	KeyFixed        = "finmo_fixed"
	KeyTransactions = "finmo_transactions"
	KeyUser         = "finmo_user"
)

var ErrEmptyKey = errors.New("store: empty key")

// Ports for the persistence adapters.
type (
	Reader interface {
		// Get returns the stored value and whether the key exists.
		Get(ctx context.Context, key string) ([]byte, bool, error)
	}

	Writer interface {
		Put(ctx context.Context, key string, value []byte) error
		Delete(ctx context.Context, key string) error
	}

	KV interface {
		Reader
		Writer
	}
)

// Keys returns every key the ledger owns, in a stable order.
func Keys() []string {
	return []string{KeyIncome, KeyPayday, KeyFixed, KeyTransactions, KeyUser}
}
