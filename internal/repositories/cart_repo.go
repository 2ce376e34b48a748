package repositories

import (
	"context"

	"storefront/internal/models"
)

// CartRepository defines the interface for cart item data access.
type CartRepository interface {
	GetByID(ctx context.Context, id string) (*models.CartItem, error)
	GetBySession(ctx context.Context, sessionID string) ([]models.CartItem, error)
	// Upsert inserts item, or adds item.Quantity to the existing row for the same
	// (SessionID, ProductID) pair. The lookup and the write happen atomically.
	// On return item holds the stored row.
	Upsert(ctx context.Context, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, id string, quantity int) (*models.CartItem, error)
	Delete(ctx context.Context, id string) (bool, error)
	DeleteBySession(ctx context.Context, sessionID string) (int, error)
}
