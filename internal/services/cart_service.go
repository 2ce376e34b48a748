package services

import (
	"context"
	"errors"
	"strings"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/rs/zerolog"
)

// CartService manages session-scoped carts.
type CartService struct {
	cart           repositories.CartRepository
	products       repositories.ProductRepository
	pricing        Pricing
	requireProduct bool
	logger         zerolog.Logger
}

// NewCartService creates a new CartService. When requireProduct is set, adding an
// unknown product fails with ErrNotFound instead of storing a dangling row.
func NewCartService(cart repositories.CartRepository, products repositories.ProductRepository, pricing Pricing, requireProduct bool, logger zerolog.Logger) *CartService {
	return &CartService{
		cart:           cart,
		products:       products,
		pricing:        pricing,
		requireProduct: requireProduct,
		logger:         logger.With().Str("service", "cart").Logger(),
	}
}

// AddToCart puts quantity units of productID into the session's cart. If the
// product is already there the quantities are summed.
func (s *CartService) AddToCart(ctx context.Context, sessionID, productID string, quantity int) (*models.CartItem, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, validationError("session id is required")
	}
	if strings.TrimSpace(productID) == "" {
		return nil, validationError("product id is required")
	}
	if quantity < 1 {
		return nil, validationError("quantity must be at least 1, got %d", quantity)
	}

	if s.requireProduct {
		if _, err := s.products.GetByID(ctx, productID); err != nil {
			return nil, storeError("add to cart", err)
		}
	}

	item := &models.CartItem{
		SessionID: sessionID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.cart.Upsert(ctx, item); err != nil {
		return nil, storeError("add to cart", err)
	}

	s.logger.Debug().
		Str("session_id", sessionID).
		Str("product_id", productID).
		Int("quantity", item.Quantity).
		Msg("cart item stored")
	return item, nil
}

// GetItem returns a single cart item.
func (s *CartService) GetItem(ctx context.Context, id string) (*models.CartItem, error) {
	item, err := s.cart.GetByID(ctx, id)
	if err != nil {
		return nil, storeError("get cart item", err)
	}
	return item, nil
}

// UpdateQuantity overwrites the quantity of a cart item.
func (s *CartService) UpdateQuantity(ctx context.Context, id string, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, validationError("quantity must be at least 1, got %d", quantity)
	}
	item, err := s.cart.UpdateQuantity(ctx, id, quantity)
	if err != nil {
		return nil, storeError("update cart item", err)
	}
	return item, nil
}

// RemoveItem deletes a cart item and reports whether it existed.
func (s *CartService) RemoveItem(ctx context.Context, id string) (bool, error) {
	removed, err := s.cart.Delete(ctx, id)
	if err != nil {
		return false, storeError("remove cart item", err)
	}
	return removed, nil
}

// ListCart returns the session's raw cart rows in insertion order.
func (s *CartService) ListCart(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	items, err := s.cart.GetBySession(ctx, sessionID)
	if err != nil {
		return nil, storeError("list cart", err)
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items, nil
}

// ListCartWithProducts joins each cart row with its product. Rows whose product
// no longer resolves are skipped.
func (s *CartService) ListCartWithProducts(ctx context.Context, sessionID string) ([]models.CartItemWithProduct, error) {
	items, err := s.ListCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	joined := make([]models.CartItemWithProduct, 0, len(items))
	for _, item := range items {
		product, err := s.products.GetByID(ctx, item.ProductID)
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Debug().Str("product_id", item.ProductID).Msg("skipping cart row with unknown product")
			continue
		}
		if err != nil {
			return nil, storeError("list cart", err)
		}
		joined = append(joined, models.CartItemWithProduct{CartItem: item, Product: *product})
	}
	return joined, nil
}

// ClearCart removes every item in the session's cart and returns how many were removed.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) (int, error) {
	n, err := s.cart.DeleteBySession(ctx, sessionID)
	if err != nil {
		return 0, storeError("clear cart", err)
	}
	return n, nil
}

// Summary returns the joined cart with its totals.
func (s *CartService) Summary(ctx context.Context, sessionID string) (*models.CartSummary, error) {
	items, err := s.ListCartWithProducts(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.pricing.Summarize(sessionID, items), nil
}
