package repositories

import (
	"context"

	"storefront/internal/models"
)

// OrderRepository defines the interface for order data access.
// Orders are immutable: there is no update or delete.
type OrderRepository interface {
	GetByID(ctx context.Context, id string) (*models.Order, error)
	GetBySession(ctx context.Context, sessionID string) ([]models.Order, error)
	Create(ctx context.Context, order *models.Order) error
}
