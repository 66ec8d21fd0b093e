package model

import (
	"time"

	"github.com/google/uuid"
)

// FavoriteModel mirrors the 'favorites' table.
type FavoriteModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	BuyerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_buyer_vendor"`
	VendorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_buyer_vendor;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (FavoriteModel) TableName() string {
	return "favorites"
}
