package repositories

import (
	"context"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMCartRepository is a GORM implementation of CartRepository.
// The unique index on (session_id, product_id) backs the atomic Upsert.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{db: db}
}

func (r *GORMCartRepository) GetByID(ctx context.Context, id string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "cart item with ID %s", id)
	}
	return &item, nil
}

func (r *GORMCartRepository) GetBySession(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("position").
		Find(&items).Error; err != nil {
		return nil, translateError(err, "failed to get cart for session %s", sessionID)
	}
	return items, nil
}

// Upsert relies on INSERT .. ON CONFLICT so that concurrent adds of the same
// product to the same session sum their quantities instead of racing.
func (r *GORMCartRepository) Upsert(ctx context.Context, item *models.CartItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.Position = nextPosition()

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "session_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("cart_items.quantity + excluded.quantity"),
			}),
		}).Create(item).Error; err != nil {
			return translateError(err, "failed to add product %s to cart", item.ProductID)
		}

		var stored models.CartItem
		if err := tx.Where("session_id = ? AND product_id = ?", item.SessionID, item.ProductID).
			Take(&stored).Error; err != nil {
			return translateError(err, "failed to reload cart item")
		}
		*item = stored
		return nil
	})
}

func (r *GORMCartRepository) UpdateQuantity(ctx context.Context, id string, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Take(&item, "id = ?", id).Error; err != nil {
			return translateError(err, "cart item with ID %s", id)
		}
		if err := tx.Model(&models.CartItem{}).Where("id = ?", id).Update("quantity", quantity).Error; err != nil {
			return translateError(err, "failed to update cart item %s", id)
		}
		item.Quantity = quantity
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GORMCartRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", id)
	if res.Error != nil {
		return false, translateError(res.Error, "failed to delete cart item %s", id)
	}
	return res.RowsAffected > 0, nil
}

func (r *GORMCartRepository) DeleteBySession(ctx context.Context, sessionID string) (int, error) {
	res := r.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&models.CartItem{})
	if res.Error != nil {
		return 0, translateError(res.Error, "failed to clear cart for session %s", sessionID)
	}
	return int(res.RowsAffected), nil
}
