package services

import (
	"context"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// ReviewService manages append-only product reviews.
type ReviewService struct {
	reviews        repositories.ReviewRepository
	products       repositories.ProductRepository
	requireProduct bool
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviews repositories.ReviewRepository, products repositories.ProductRepository, requireProduct bool) *ReviewService {
	return &ReviewService{
		reviews:        reviews,
		products:       products,
		requireProduct: requireProduct,
	}
}

// ListByProduct returns the reviews of a product, oldest first.
func (s *ReviewService) ListByProduct(ctx context.Context, productID string) ([]models.Review, error) {
	reviews, err := s.reviews.GetByProduct(ctx, productID)
	if err != nil {
		return nil, storeError("list reviews", err)
	}
	if reviews == nil {
		reviews = []models.Review{}
	}
	return reviews, nil
}

// AddReview stores a new review with no helpful votes.
func (s *ReviewService) AddReview(ctx context.Context, productID string, rating int, comment, reviewerName string) (*models.Review, error) {
	if s.requireProduct {
		if _, err := s.products.GetByID(ctx, productID); err != nil {
			return nil, storeError("add review", err)
		}
	}

	review := &models.Review{
		ProductID:    productID,
		Rating:       rating,
		Comment:      comment,
		ReviewerName: reviewerName,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		return nil, storeError("add review", err)
	}
	return review, nil
}
