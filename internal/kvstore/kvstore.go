// Package kvstore provides the durable key-value gateway every resource
// module persists through. Documents are opaque JSON blobs addressed by
// string keys namespaced with a prefix such as "product:" or "cart:".
package kvstore

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when no document exists under the key.
var ErrKeyNotFound = errors.New("key not found")

// UpdateFunc transforms the current value of a key into its next value.
// old is nil when the key does not exist yet.
type UpdateFunc func(old []byte) ([]byte, error)

// Store is the gateway contract. GetByPrefix returns values in key order.
// Update performs an atomic read-modify-write of a single key: concurrent
// updates to the same key never lose writes, whatever the backend.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	GetByPrefix(ctx context.Context, prefix string) ([][]byte, error)
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Close() error
}
