package cart

import (
	"context"
	"sync"

	"github.com/veldbloem/storefront/internal/models"
)

// Keeper is the persistence boundary of the cart store. Implementations
// persist the plain list of line items under the given cart key.
// Concurrent writers to the same key are last-write-wins.
type Keeper interface {
	Load(ctx context.Context, key string) ([]models.CartItem, error)
	Save(ctx context.Context, key string, items []models.CartItem) error
	Delete(ctx context.Context, key string) error
}

// MemoryKeeper keeps carts in process memory. Used by tests and by the
// memory cart driver for running without Redis.
type MemoryKeeper struct {
	mu    sync.RWMutex
	carts map[string][]models.CartItem
}

func NewMemoryKeeper() *MemoryKeeper {
	return &MemoryKeeper{carts: make(map[string][]models.CartItem)}
}

func (m *MemoryKeeper) Load(ctx context.Context, key string) ([]models.CartItem, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items, ok := m.carts[key]
	if !ok {
		return nil, nil
	}
	out := make([]models.CartItem, len(items))
	copy(out, items)
	return out, nil
}

func (m *MemoryKeeper) Save(ctx context.Context, key string, items []models.CartItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored := make([]models.CartItem, len(items))
	copy(stored, items)
	m.carts[key] = stored
	return nil
}

func (m *MemoryKeeper) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.carts, key)
	return nil
}
