package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/rs/zerolog"
)

const (
	// OrderExchange is the topic exchange order events go to.
	OrderExchange = "orders"
	// OrderCreatedKey is the routing key of the event sent after checkout.
	OrderCreatedKey = "order.created"
)

// EventPublisher delivers domain events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, exchange, routingKey string, body []byte) error
}

// CartSnapshotSource yields the live, product-joined cart of a session.
type CartSnapshotSource interface {
	ListCartWithProducts(ctx context.Context, sessionID string) ([]models.CartItemWithProduct, error)
}

// OrderCreatedEvent is the body of the order.created message.
type OrderCreatedEvent struct {
	OrderID   string       `json:"orderId"`
	SessionID string       `json:"sessionId,omitempty"`
	Total     models.Money `json:"total"`
	ItemCount int          `json:"itemCount"`
	Status    string       `json:"status"`
	CreatedAt time.Time    `json:"createdAt"`
}

// OrderService turns carts into immutable orders.
type OrderService struct {
	orders    repositories.OrderRepository
	carts     CartSnapshotSource
	pricing   Pricing
	publisher EventPublisher // nil disables events
	logger    zerolog.Logger
}

// NewOrderService creates a new OrderService.
func NewOrderService(orders repositories.OrderRepository, carts CartSnapshotSource, pricing Pricing, publisher EventPublisher, logger zerolog.Logger) *OrderService {
	return &OrderService{
		orders:    orders,
		carts:     carts,
		pricing:   pricing,
		publisher: publisher,
		logger:    logger.With().Str("service", "order").Logger(),
	}
}

// PlaceOrder freezes the line items and stores a pending order. When the request
// carries no items, the session's current cart is used. The cart is left untouched.
func (s *OrderService) PlaceOrder(ctx context.Context, req models.CheckoutRequest) (*models.Order, error) {
	lines := append(models.OrderLines{}, req.Items...)
	if len(lines) == 0 && strings.TrimSpace(req.SessionID) != "" {
		snapshot, err := s.snapshotCart(ctx, req.SessionID)
		if err != nil {
			return nil, err
		}
		lines = snapshot
	}
	if len(lines) == 0 {
		return nil, validationError("cart is empty")
	}
	for _, line := range lines {
		if line.Quantity < 1 {
			return nil, validationError("quantity for product %s must be at least 1", line.ProductID)
		}
		if line.Price.IsNegative() {
			return nil, validationError("price for product %s must not be negative", line.ProductID)
		}
	}

	subtotal := LinesSubtotal(lines)
	order := &models.Order{
		Items:         lines,
		Total:         models.NewMoney(subtotal.Add(s.pricing.DeliveryFeeFor(subtotal))),
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		CustomerPhone: req.CustomerPhone,
		Address:       req.Address,
		Status:        models.OrderStatusPending,
		SessionID:     req.SessionID,
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, storeError("place order", err)
	}

	s.logger.Info().
		Str("order_id", order.ID).
		Str("session_id", order.SessionID).
		Str("total", order.Total.String()).
		Int("lines", len(order.Items)).
		Msg("order placed")

	s.publishCreated(ctx, order)
	return order, nil
}

func (s *OrderService) snapshotCart(ctx context.Context, sessionID string) (models.OrderLines, error) {
	items, err := s.carts.ListCartWithProducts(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	lines := make(models.OrderLines, 0, len(items))
	for _, item := range items {
		lines = append(lines, models.OrderLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Product.Price,
			Name:      item.Product.Name,
		})
	}
	return lines, nil
}

// publishCreated never fails the order; broker problems are only logged.
func (s *OrderService) publishCreated(ctx context.Context, order *models.Order) {
	if s.publisher == nil {
		s.logger.Debug().Str("order_id", order.ID).Msg("no event publisher configured, skipping order.created")
		return
	}

	count := 0
	for _, line := range order.Items {
		count += line.Quantity
	}
	body, err := json.Marshal(OrderCreatedEvent{
		OrderID:   order.ID,
		SessionID: order.SessionID,
		Total:     order.Total,
		ItemCount: count,
		Status:    order.Status,
		CreatedAt: order.CreatedAt,
	})
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to marshal order.created event")
		return
	}
	if err := s.publisher.Publish(ctx, OrderExchange, OrderCreatedKey, body); err != nil {
		s.logger.Warn().Err(err).Str("order_id", order.ID).Msg("failed to publish order.created event")
	}
}

// GetOrder returns the order with id or ErrNotFound.
func (s *OrderService) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get order", err)
	}
	return order, nil
}

// ListOrdersBySession returns the orders placed from a session, oldest first.
func (s *OrderService) ListOrdersBySession(ctx context.Context, sessionID string) ([]models.Order, error) {
	orders, err := s.orders.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, storeError("list orders", err)
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}
