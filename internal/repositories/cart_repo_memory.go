package repositories

import (
	"context"
	"fmt"
	"sync"

	"storefront/internal/models"

	"github.com/google/uuid"
)

type cartKey struct {
	sessionID string
	productID string
}

// MemoryCartRepository is an in-memory implementation of CartRepository.
// bySessionProduct is the compound index that makes Upsert a single step.
type MemoryCartRepository struct {
	items            *orderedRows[models.CartItem]
	bySessionProduct map[cartKey]string
	mu               sync.RWMutex
}

// NewMemoryCartRepository creates a new instance of MemoryCartRepository.
func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{
		items:            newOrderedRows[models.CartItem](),
		bySessionProduct: make(map[cartKey]string),
	}
}

// GetByID returns a cart item by its ID.
func (r *MemoryCartRepository) GetByID(_ context.Context, id string) (*models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items.get(id)
	if !ok {
		return nil, fmt.Errorf("cart item with ID %s: %w", id, ErrNotFound)
	}
	return &item, nil
}

// GetBySession returns the session's cart items in insertion order.
func (r *MemoryCartRepository) GetBySession(_ context.Context, sessionID string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.items.filter(func(item models.CartItem) bool {
		return item.SessionID == sessionID
	}), nil
}

// Upsert merges item into the cart under a single write lock.
func (r *MemoryCartRepository) Upsert(_ context.Context, item *models.CartItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := cartKey{sessionID: item.SessionID, productID: item.ProductID}
	if id, ok := r.bySessionProduct[key]; ok {
		existing, _ := r.items.get(id)
		existing.Quantity += item.Quantity
		r.items.put(id, existing)
		*item = existing
		return nil
	}

	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	r.items.put(item.ID, *item)
	r.bySessionProduct[key] = item.ID
	return nil
}

// UpdateQuantity overwrites the quantity of an existing item.
func (r *MemoryCartRepository) UpdateQuantity(_ context.Context, id string, quantity int) (*models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items.get(id)
	if !ok {
		return nil, fmt.Errorf("cart item with ID %s: %w", id, ErrNotFound)
	}
	item.Quantity = quantity
	r.items.put(id, item)
	return &item, nil
}

// Delete removes a cart item, reporting whether it existed.
func (r *MemoryCartRepository) Delete(_ context.Context, id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items.get(id)
	if !ok {
		return false, nil
	}
	r.items.remove(id)
	delete(r.bySessionProduct, cartKey{sessionID: item.SessionID, productID: item.ProductID})
	return true, nil
}

// DeleteBySession removes every item belonging to the session.
func (r *MemoryCartRepository) DeleteBySession(_ context.Context, sessionID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doomed := r.items.filter(func(item models.CartItem) bool {
		return item.SessionID == sessionID
	})
	for _, item := range doomed {
		r.items.remove(item.ID)
		delete(r.bySessionProduct, cartKey{sessionID: item.SessionID, productID: item.ProductID})
	}
	return len(doomed), nil
}
