package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"blinds-storefront/internal/domain"
)

// MemoryCartStore keeps carts in process memory. Carts are stored as JSON
// snapshots so callers never share item slices with the store.
type MemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string][]byte
}

func NewMemoryCartStore() *MemoryCartStore {
	return &MemoryCartStore{carts: make(map[string][]byte)}
}

var _ CartStorer = (*MemoryCartStore)(nil)

func (m *MemoryCartStore) GetCart(ctx context.Context, id string) (*domain.Cart, error) {
	m.mu.RLock()
	data, ok := m.carts[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrCartNotFound
	}
	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, fmt.Errorf("store: GetCart failed to decode cart %s: %w", id, err)
	}
	if cart.Items == nil {
		cart.Items = []domain.CartItem{}
	}
	return &cart, nil
}

func (m *MemoryCartStore) SaveCart(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("store: SaveCart failed to encode cart %s: %w", cart.ID, err)
	}
	m.mu.Lock()
	m.carts[cart.ID] = data
	m.mu.Unlock()
	return nil
}

func (m *MemoryCartStore) DeleteCart(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.carts[id]; !ok {
		return ErrCartNotFound
	}
	delete(m.carts, id)
	return nil
}
