package model

import (
	"time"

	"github.com/google/uuid"
)

// VendorModel mirrors the 'vendors' table. Latitude and Longitude hold the
// last durably stored position; the realtime registry holds the live one.
type VendorModel struct {
	ID               uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	OwnerUserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	StoreName        string    `gorm:"type:varchar(100);not null"`
	Description      string    `gorm:"type:text"`
	Status           string    `gorm:"type:varchar(20);not null;index;default:'INACTIVE'"`
	IsSuspended      bool      `gorm:"not null;default:false"`
	Latitude         float64   `gorm:"type:double precision"`
	Longitude        float64   `gorm:"type:double precision"`
	LastLocationTime *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        *time.Time `gorm:"index"`

	MenuItems []MenuItemModel `gorm:"foreignKey:VendorID"`
}

// TableName explicitly sets the table name for GORM.
func (VendorModel) TableName() string {
	return "vendors"
}

// MenuItemModel mirrors the 'menu_items' table.
type MenuItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	VendorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:text"`
	Price       int64     `gorm:"not null"`
	IsAvailable bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   *time.Time `gorm:"index"`
}

// TableName explicitly sets the table name for GORM.
func (MenuItemModel) TableName() string {
	return "menu_items"
}
