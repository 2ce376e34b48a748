package models

// Review is a customer review of a product. Reviews are append-only.
type Review struct {
	ID           string `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProductID    string `json:"productId" gorm:"type:varchar(36);index;not null"`
	Rating       int    `json:"rating" gorm:"not null"`
	Comment      string `json:"comment" gorm:"type:text;not null"`
	ReviewerName string `json:"reviewerName" gorm:"not null"`
	Helpful      int    `json:"helpful"`
	Position     int64  `json:"-" gorm:"index"`
}

// CreateReviewRequest is the body of POST /api/reviews.
type CreateReviewRequest struct {
	ProductID    string `json:"productId" validate:"required"`
	Rating       int    `json:"rating" validate:"required,min=1,max=5"`
	Comment      string `json:"comment" validate:"required"`
	ReviewerName string `json:"reviewerName" validate:"required"`
}
