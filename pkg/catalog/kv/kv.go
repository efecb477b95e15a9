// Package kv defines the byte-blob key-value interface that backs the local
// list variant of the catalog store.
package kv

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned by Get when nothing is stored under the key
var ErrKeyNotFound = errors.New("key not found")

// Store persists opaque values under string keys
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
