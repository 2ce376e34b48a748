package services

import (
	"storefront/internal/models"

	"github.com/shopspring/decimal"
)

// Pricing holds the delivery rule: orders strictly above FreeDeliveryThreshold ship free,
// everything else pays DeliveryFee.
type Pricing struct {
	FreeDeliveryThreshold decimal.Decimal
	DeliveryFee           decimal.Decimal
}

// DefaultPricing is 5.00 delivery, free above 50.00.
func DefaultPricing() Pricing {
	return Pricing{
		FreeDeliveryThreshold: decimal.RequireFromString("50.00"),
		DeliveryFee:           decimal.RequireFromString("5.00"),
	}
}

// DeliveryFeeFor returns the fee owed on subtotal.
func (p Pricing) DeliveryFeeFor(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThan(p.FreeDeliveryThreshold) {
		return decimal.Zero
	}
	return p.DeliveryFee
}

// Subtotal sums price times quantity over live cart lines.
func Subtotal(items []models.CartItemWithProduct) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// Savings sums (originalPrice - price) times quantity for lines that have an original price.
func Savings(items []models.CartItemWithProduct) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		if item.Product.OriginalPrice == nil {
			continue
		}
		diff := item.Product.OriginalPrice.Sub(item.Product.Price.Decimal)
		sum = sum.Add(diff.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return sum
}

// LinesSubtotal sums price times quantity over frozen order lines.
func LinesSubtotal(lines models.OrderLines) decimal.Decimal {
	sum := decimal.Zero
	for _, line := range lines {
		sum = sum.Add(line.Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return sum
}

// Summarize derives the cart totals for items.
func (p Pricing) Summarize(sessionID string, items []models.CartItemWithProduct) *models.CartSummary {
	subtotal := Subtotal(items)
	fee := p.DeliveryFeeFor(subtotal)

	remaining := p.FreeDeliveryThreshold.Sub(subtotal)
	if remaining.IsNegative() || fee.IsZero() {
		remaining = decimal.Zero
	}

	count := 0
	for _, item := range items {
		count += item.Quantity
	}

	return &models.CartSummary{
		SessionID:             sessionID,
		Items:                 items,
		ItemCount:             count,
		Subtotal:              models.NewMoney(subtotal),
		Savings:               models.NewMoney(Savings(items)),
		DeliveryFee:           models.NewMoney(fee),
		Total:                 models.NewMoney(subtotal.Add(fee)),
		FreeDeliveryRemaining: models.NewMoney(remaining),
	}
}
