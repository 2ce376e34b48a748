package models

// Category groups products by name. Product.Category refers to Name, not ID.
type Category struct {
	ID       string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name     string `json:"name" gorm:"uniqueIndex;not null"`
	Icon     string `json:"icon" gorm:"not null"`
	Image    string `json:"image,omitempty"`
	Position int64  `json:"-" gorm:"index"`
}
