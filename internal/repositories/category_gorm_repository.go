package repositories

import (
	"context"
	"fmt"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCategoryRepository is a GORM implementation of CategoryRepository.
type GORMCategoryRepository struct {
	db *gorm.DB
}

// NewGORMCategoryRepository creates a new instance of GORMCategoryRepository.
func NewGORMCategoryRepository(db *gorm.DB) *GORMCategoryRepository {
	return &GORMCategoryRepository{db: db}
}

func (r *GORMCategoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.WithContext(ctx).Order("position").Find(&categories).Error; err != nil {
		return nil, translateError(err, "failed to get all categories")
	}
	return categories, nil
}

func (r *GORMCategoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	if err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "category with ID %s", id)
	}
	return &category, nil
}

// Create checks the case-insensitive name rule and inserts in one transaction.
func (r *GORMCategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	category.Position = nextPosition()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var taken int64
		if err := tx.Model(&models.Category{}).
			Where("LOWER(name) = LOWER(?)", category.Name).
			Count(&taken).Error; err != nil {
			return translateError(err, "failed to check category name")
		}
		if taken > 0 {
			return fmt.Errorf("category %q: %w", category.Name, ErrConflict)
		}
		if err := tx.Create(category).Error; err != nil {
			return translateError(err, "failed to create category %q", category.Name)
		}
		return nil
	})
}
