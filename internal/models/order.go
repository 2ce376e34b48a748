package models

import (
	"bytes"
	"encoding/json"
	"time"
)

// OrderStatusPending is the only status this service ever assigns.
const OrderStatusPending = "pending"

// OrderLine is a frozen line item captured at checkout time.
type OrderLine struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
	Price     Money  `json:"price"` // unit price at the time of order
	Name      string `json:"name"`
}

// OrderLines is the serialized snapshot stored on an order.
type OrderLines []OrderLine

// UnmarshalJSON accepts either a JSON array or a string holding a JSON array,
// which is how browser clients that pre-serialize the cart send it.
func (l *OrderLines) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		if raw == "" {
			*l = nil
			return nil
		}
		data = []byte(raw)
	}
	var lines []OrderLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}
	*l = lines
	return nil
}

// Order represents a placed customer order. Orders are immutable.
type Order struct {
	ID            string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Items         OrderLines `json:"items" gorm:"serializer:json;type:text;not null"`
	Total         Money      `json:"total" gorm:"type:decimal(10,2);not null"`
	CustomerName  string     `json:"customerName" gorm:"not null"`
	CustomerEmail string     `json:"customerEmail" gorm:"not null"`
	CustomerPhone string     `json:"customerPhone" gorm:"not null"`
	Address       string     `json:"address" gorm:"not null"`
	Status        string     `json:"status" gorm:"not null"`
	SessionID     string     `json:"sessionId,omitempty" gorm:"index"`
	CreatedAt     time.Time  `json:"createdAt"`
	Position      int64      `json:"-" gorm:"index"`
}

// Clone returns a copy that does not share the line slice.
func (o Order) Clone() Order {
	out := o
	out.Items = append(OrderLines{}, o.Items...)
	return out
}

// CheckoutRequest is the body of POST /api/orders.
// Items is optional; when empty the session's current cart is used.
type CheckoutRequest struct {
	CustomerName  string     `json:"customerName" validate:"required,min=2"`
	CustomerEmail string     `json:"customerEmail" validate:"required,email"`
	CustomerPhone string     `json:"customerPhone" validate:"required,phone"`
	Address       string     `json:"address" validate:"required,min=10"`
	SessionID     string     `json:"sessionId"`
	Items         OrderLines `json:"items" validate:"omitempty,dive"`
}
