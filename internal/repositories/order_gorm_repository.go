package repositories

import (
	"context"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{db: db}
}

// GetByID retrieves a single order by its ID from the database.
func (r *GORMOrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error; err != nil {
		return nil, translateError(err, "order with ID %s", id)
	}
	return &order, nil
}

// GetBySession retrieves the orders placed from a session, oldest first.
func (r *GORMOrderRepository) GetBySession(ctx context.Context, sessionID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("position").
		Find(&orders).Error; err != nil {
		return nil, translateError(err, "failed to get orders for session %s", sessionID)
	}
	return orders, nil
}

// Create creates a new order in the database.
func (r *GORMOrderRepository) Create(ctx context.Context, order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now()
	}
	order.Position = nextPosition()
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return translateError(err, "failed to create order %s", order.ID)
	}
	return nil
}
