package amqp

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"finmo/internal/core"
)

// EventType names a ledger change published on the feed.
type EventType string

const (
	EventTransactionCreated EventType = "transaction.created"
	EventTransactionDeleted EventType = "transaction.deleted"
	EventLedgerReset        EventType = "ledger.reset"
)

var ErrInvalidEvent = errors.New("invalid transaction event")

// TransactionEvent describes one change to the transaction collection.
// Created events carry the full transaction so consumers never read the
// local store.
type TransactionEvent struct {
	Op            EventType         `json:"op"`
	TransactionID string            `json:"transaction_id,omitempty"`
	Transaction   *core.Transaction `json:"transaction,omitempty"`
	Timestamp     time.Time         `json:"timestamp"`
}

func NewTransactionCreated(t core.Transaction) *TransactionEvent {
	return &TransactionEvent{
		Op:            EventTransactionCreated,
		TransactionID: t.ID,
		Transaction:   &t,
		Timestamp:     time.Now().UTC(),
	}
}

func NewTransactionDeleted(id string) *TransactionEvent {
	return &TransactionEvent{
		Op:            EventTransactionDeleted,
		TransactionID: id,
		Timestamp:     time.Now().UTC(),
	}
}

func NewLedgerReset() *TransactionEvent {
	return &TransactionEvent{
		Op:        EventLedgerReset,
		Timestamp: time.Now().UTC(),
	}
}

// Validate checks the event carries what its op needs.
func (e *TransactionEvent) Validate() error {
	switch e.Op {
	case EventTransactionCreated:
		if e.Transaction == nil {
			return fmt.Errorf("%w: %s without transaction", ErrInvalidEvent, e.Op)
		}
		if err := e.Transaction.Validate(); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidEvent, err)
		}
	case EventTransactionDeleted:
		if e.TransactionID == "" {
			return fmt.Errorf("%w: %s without id", ErrInvalidEvent, e.Op)
		}
	case EventLedgerReset:
	default:
		return fmt.Errorf("%w: unknown op %q", ErrInvalidEvent, e.Op)
	}
	return nil
}

// ToJSON converts the event to JSON bytes
func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TransactionEventFromJSON decodes and validates an event.
func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var ev TransactionEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, err
	}
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	return &ev, nil
}
