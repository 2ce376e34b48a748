package repositories

import (
	"context"
	"fmt"
	"sync"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	products *orderedRows[models.Product]
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: newOrderedRows[models.Product](),
	}
}

// GetAll returns all products in insertion order.
func (r *MemoryProductRepository) GetAll(_ context.Context) ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := r.products.filter(nil)
	for i := range productList {
		productList[i] = productList[i].Clone()
	}
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MemoryProductRepository) GetByID(_ context.Context, id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products.get(id)
	if !ok {
		return nil, fmt.Errorf("product with ID %s: %w", id, ErrNotFound)
	}
	product = product.Clone()
	return &product, nil
}

// Create adds a new product, generating an ID if none is set.
func (r *MemoryProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	if r.products.has(product.ID) {
		return fmt.Errorf("product with ID %s: %w", product.ID, ErrConflict)
	}
	normalizeProduct(product)
	r.products.put(product.ID, product.Clone())
	return nil
}

func normalizeProduct(product *models.Product) {
	if product.Images == nil {
		product.Images = []string{}
	}
	if product.Specifications == nil {
		product.Specifications = []string{}
	}
}
