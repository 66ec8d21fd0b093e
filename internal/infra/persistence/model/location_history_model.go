package model

import (
	"time"

	"github.com/google/uuid"
)

// VendorLocationSampleModel mirrors the 'vendor_location_history' table.
// Append-only; written by the location worker, read by admin analytics.
type VendorLocationSampleModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	VendorID   uuid.UUID `gorm:"type:uuid;not null;index:idx_location_history_vendor_recorded"`
	Latitude   float64   `gorm:"type:double precision;not null"`
	Longitude  float64   `gorm:"type:double precision;not null"`
	RecordedAt time.Time `gorm:"not null;index:idx_location_history_vendor_recorded;index"`
}

// TableName explicitly sets the table name for GORM.
func (VendorLocationSampleModel) TableName() string {
	return "vendor_location_history"
}
