package repositories

import (
	"context"

	"storefront/internal/models"
)

// ProductRepository defines the interface for product data access.
// Products have no update or delete operation.
type ProductRepository interface {
	GetAll(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
}

// CategoryRepository defines the interface for category data access.
type CategoryRepository interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id string) (*models.Category, error)
	// Create fails with ErrConflict when a category with the same name
	// (compared case-insensitively) already exists.
	Create(ctx context.Context, category *models.Category) error
}

// ReviewRepository defines the interface for review data access.
type ReviewRepository interface {
	GetByProduct(ctx context.Context, productID string) ([]models.Review, error)
	Create(ctx context.Context, review *models.Review) error
}
