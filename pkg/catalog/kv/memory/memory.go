package memory

import (
	"context"
	"sync"

	"github.com/tendant/simple-catalog/pkg/catalog/kv"
)

// Backend is an in-memory implementation of kv.Store
type Backend struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// New creates a new in-memory key-value backend
func New() kv.Store {
	return &Backend{
		values: make(map[string][]byte),
	}
}

func (b *Backend) Get(ctx context.Context, key string) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	v, ok := b.values[key]
	if !ok {
		return nil, kv.ErrKeyNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (b *Backend) Put(ctx context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	b.values[key] = stored
	return nil
}

// Delete removes key; deleting a missing key is not an error
func (b *Backend) Delete(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.values, key)
	return nil
}
