package repositories

import (
	"context"
	"fmt"
	"sync"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// MemoryReviewRepository is an in-memory implementation of ReviewRepository.
type MemoryReviewRepository struct {
	reviews *orderedRows[models.Review]
	mu      sync.RWMutex
}

// NewMemoryReviewRepository creates a new instance of MemoryReviewRepository.
func NewMemoryReviewRepository() *MemoryReviewRepository {
	return &MemoryReviewRepository{
		reviews: newOrderedRows[models.Review](),
	}
}

func (r *MemoryReviewRepository) GetByProduct(_ context.Context, productID string) ([]models.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.reviews.filter(func(review models.Review) bool {
		return review.ProductID == productID
	}), nil
}

func (r *MemoryReviewRepository) Create(_ context.Context, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	if r.reviews.has(review.ID) {
		return fmt.Errorf("review with ID %s: %w", review.ID, ErrConflict)
	}
	r.reviews.put(review.ID, *review)
	return nil
}
