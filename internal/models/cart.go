package models

// CartItem is one line of a session's cart. A session holds at most one item per product.
type CartItem struct {
	ID        string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID string `json:"productId" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_session_product,priority:2"`
	Quantity  int    `json:"quantity" gorm:"not null"`
	SessionID string `json:"sessionId" gorm:"type:varchar(128);not null;uniqueIndex:idx_cart_session_product,priority:1"`
	Position  int64  `json:"-" gorm:"index"`
}

// CartItemWithProduct joins a cart line with the product it references. Never persisted.
type CartItemWithProduct struct {
	CartItem
	Product Product `json:"product"`
}

// CartSummary carries the derived totals for a session's cart.
type CartSummary struct {
	SessionID             string                `json:"sessionId"`
	Items                 []CartItemWithProduct `json:"items"`
	ItemCount             int                   `json:"itemCount"`
	Subtotal              Money                 `json:"subtotal"`
	Savings               Money                 `json:"savings"`
	DeliveryFee           Money                 `json:"deliveryFee"`
	Total                 Money                 `json:"total"`
	FreeDeliveryRemaining Money                 `json:"freeDeliveryRemaining"`
}

// AddToCartRequest is the body of POST /api/cart.
type AddToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	SessionID string `json:"sessionId"`
}

// UpdateCartItemRequest is the body of PATCH /api/cart/:id.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}
