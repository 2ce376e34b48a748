package repositories

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// MemoryCategoryRepository is an in-memory implementation of CategoryRepository.
type MemoryCategoryRepository struct {
	categories *orderedRows[models.Category]
	byName     map[string]string // lower-cased name -> id
	mu         sync.RWMutex
}

// NewMemoryCategoryRepository creates a new instance of MemoryCategoryRepository.
func NewMemoryCategoryRepository() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{
		categories: newOrderedRows[models.Category](),
		byName:     make(map[string]string),
	}
}

// GetAll returns all categories in insertion order.
func (r *MemoryCategoryRepository) GetAll(_ context.Context) ([]models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.categories.filter(nil), nil
}

// GetByID returns a category by its ID.
func (r *MemoryCategoryRepository) GetByID(_ context.Context, id string) (*models.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.categories.get(id)
	if !ok {
		return nil, fmt.Errorf("category with ID %s: %w", id, ErrNotFound)
	}
	return &category, nil
}

// Create adds a new category. Names are unique regardless of case.
func (r *MemoryCategoryRepository) Create(_ context.Context, category *models.Category) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(category.Name)
	if _, taken := r.byName[key]; taken {
		return fmt.Errorf("category %q: %w", category.Name, ErrConflict)
	}
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	if r.categories.has(category.ID) {
		return fmt.Errorf("category with ID %s: %w", category.ID, ErrConflict)
	}
	r.categories.put(category.ID, *category)
	r.byName[key] = category.ID
	return nil
}
