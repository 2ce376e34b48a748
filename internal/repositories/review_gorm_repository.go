package repositories

import (
	"context"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{db: db}
}

func (r *GORMReviewRepository) GetByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("position").
		Find(&reviews).Error; err != nil {
		return nil, translateError(err, "failed to get reviews for product %s", productID)
	}
	return reviews, nil
}

func (r *GORMReviewRepository) Create(ctx context.Context, review *models.Review) error {
	if review.ID == "" {
		review.ID = uuid.New().String()
	}
	review.Position = nextPosition()
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return translateError(err, "failed to create review %s", review.ID)
	}
	return nil
}
