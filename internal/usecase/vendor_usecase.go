package usecase

import (
	"context"

	"kakilima/internal/domain/entity"
	"kakilima/internal/proximity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// UpdateVendorInput defines the mutable stall fields.
type UpdateVendorInput struct {
	OwnerUserID uuid.UUID `json:"-"`
	StoreName   *string   `json:"store_name,omitempty"`
	Description *string   `json:"description,omitempty"`
}

// UpsertMenuItemInput defines a menu item create or update.
type UpsertMenuItemInput struct {
	OwnerUserID uuid.UUID  `json:"-"`
	ItemID      *uuid.UUID `json:"item_id,omitempty"` // nil creates a new item
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       int64      `json:"price"`
	IsAvailable bool       `json:"is_available"`
}

// NearbyVendorsInput defines a buyer-side proximity query.
type NearbyVendorsInput struct {
	Latitude     float64 `json:"latitude" query:"lat"`
	Longitude    float64 `json:"longitude" query:"lon"`
	RadiusMeters float64 `json:"radius_meters" query:"radius"` // 0 applies the configured default
}

// --- Output DTOs ---

// VendorDetailOutput aggregates everything a buyer sees on a stall page.
type VendorDetailOutput struct {
	Vendor        *entity.Vendor     `json:"vendor"`
	Menu          []*entity.MenuItem `json:"menu"`
	AverageRating float64            `json:"average_rating"`
	HasRating     bool               `json:"has_rating"`
	IsLive        bool               `json:"is_live"`       // True when the vendor currently appears in the live registry.
	LiveLatitude  float64            `json:"live_latitude"` // Meaningful only when IsLive.
	LiveLongitude float64            `json:"live_longitude"`
}

// VendorUsecase defines the interface for vendor-related business operations.
type VendorUsecase interface {
	GetVendor(ctx context.Context, vendorID uuid.UUID) (*VendorDetailOutput, error)
	GetOwnVendor(ctx context.Context, ownerUserID uuid.UUID) (*entity.Vendor, error)
	UpdateVendor(ctx context.Context, input UpdateVendorInput) (*entity.Vendor, error)
	SetStatus(ctx context.Context, ownerUserID uuid.UUID, status entity.VendorStatus) (*entity.Vendor, error)

	// NearbyVendors returns ACTIVE, non-suspended vendors within the radius,
	// using live registry coordinates when fresher than the stored ones.
	NearbyVendors(ctx context.Context, input NearbyVendorsInput) ([]proximity.AnnotatedVendor, error)

	UpsertMenuItem(ctx context.Context, input UpsertMenuItemInput) (*entity.MenuItem, error)
	DeleteMenuItem(ctx context.Context, ownerUserID, itemID uuid.UUID) error

	// StallQR renders the PNG QR code buyers scan at the stall.
	StallQR(ctx context.Context, vendorID uuid.UUID) ([]byte, error)
}
