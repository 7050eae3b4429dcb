package backend

import (
	"context"

	"finmo/internal/ledger"
	"finmo/internal/store"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// BackendResult holds what the ledger needs to run: a key-value store and,
// when the change feed is configured, a publisher.
type BackendResult struct {
	Store     store.KV
	Publisher ledger.Publisher // nil without a change feed
	Cleanup   CleanupFunc
}

// Factory creates backends based on configuration
type Factory interface {
	CreateBackend(ctx context.Context, config Config) (*BackendResult, error)
}

// Config holds configuration for backend creation
type Config struct {
	Type BackendType

	// SQLite specific
	SQLiteDBPath string

	// Change feed, optional for every backend
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Memory backend specific
	Seed map[string]string
}

// BackendType represents the type of backend
type BackendType string

const (
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid
func (bt BackendType) IsValid() bool {
	switch bt {
	case SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}
