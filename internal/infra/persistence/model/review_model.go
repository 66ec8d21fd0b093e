package model

import (
	"time"

	"github.com/google/uuid"
)

// ReviewModel mirrors the 'reviews' table. The composite unique index
// enforces at most one review per buyer and vendor.
type ReviewModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	BuyerID   uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_buyer_vendor"`
	VendorID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_reviews_buyer_vendor;index"`
	OrderID   *uuid.UUID `gorm:"type:uuid"`
	Rating    int        `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment   string     `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}
