// Package storage provides abstractions for persistent ledger state.
package storage

import (
	"context"
	"errors"
)

// Keys of the persisted ledger structures.
const (
	KeySettlements    = "settlements"
	KeyPayerOverrides = "payer-overrides"
)

// ErrNotFound is returned by Get when a key has never been written or was
// deleted.
var ErrNotFound = errors.New("key not found")

// Store is a small key-value store holding serialized ledger state.
// This abstraction allows swapping storage backends (SQLite, in-memory)
// without changing the ledger session.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put writes value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// Close releases any resources held by the store.
	Close() error
}
