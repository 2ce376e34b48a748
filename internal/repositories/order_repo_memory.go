package repositories

import (
	"context"
	"fmt"
	"sync"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// MemoryOrderRepository is an in-memory implementation of OrderRepository.
type MemoryOrderRepository struct {
	orders *orderedRows[models.Order]
	mu     sync.RWMutex
}

// NewMemoryOrderRepository creates a new instance of MemoryOrderRepository.
func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: newOrderedRows[models.Order](),
	}
}

// GetByID returns an order by its ID.
func (r *MemoryOrderRepository) GetByID(_ context.Context, id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders.get(id)
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	order = order.Clone()
	return &order, nil
}

// GetBySession returns the orders placed from a session, oldest first.
func (r *MemoryOrderRepository) GetBySession(_ context.Context, sessionID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := r.orders.filter(func(o models.Order) bool {
		return o.SessionID == sessionID
	})
	for i := range orderList {
		orderList[i] = orderList[i].Clone()
	}
	return orderList, nil
}

// Create adds a new order.
func (r *MemoryOrderRepository) Create(_ context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if r.orders.has(order.ID) {
		return fmt.Errorf("order with ID %s: %w", order.ID, ErrConflict)
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	r.orders.put(order.ID, order.Clone())
	return nil
}
