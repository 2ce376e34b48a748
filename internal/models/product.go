package models

import "github.com/shopspring/decimal"

// Product represents a catalog entry. Products are immutable once created.
type Product struct {
	ID             string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name           string          `json:"name" gorm:"not null"`
	Description    string          `json:"description" gorm:"type:text;not null"`
	Price          Money           `json:"price" gorm:"type:decimal(10,2);not null"`
	OriginalPrice  *Money          `json:"originalPrice" gorm:"type:decimal(10,2)"`
	Discount       int             `json:"discount"` // whole percent, 0-100
	Image          string          `json:"image" gorm:"not null"`
	Images         []string        `json:"images" gorm:"serializer:json;type:text"`
	Category       string          `json:"category" gorm:"index;not null"`
	Rating         decimal.Decimal `json:"rating" gorm:"type:decimal(2,1)"`
	ReviewCount    int             `json:"reviewCount"`
	InStock        bool            `json:"inStock"`
	Brand          string          `json:"brand,omitempty"`
	Specifications []string        `json:"specifications" gorm:"serializer:json;type:text"`
	Position       int64           `json:"-" gorm:"index"`
}

// Clone returns a deep copy so callers never share slices with the store.
func (p Product) Clone() Product {
	out := p
	out.Images = append([]string{}, p.Images...)
	out.Specifications = append([]string{}, p.Specifications...)
	if p.OriginalPrice != nil {
		op := *p.OriginalPrice
		out.OriginalPrice = &op
	}
	return out
}
