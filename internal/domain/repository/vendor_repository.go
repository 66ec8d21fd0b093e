package repository

import (
	"context"
	"errors"
	"time"

	"kakilima/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrVendorNotFound is returned when a vendor is not found.
var ErrVendorNotFound = errors.New("vendor not found")

// ErrMenuItemNotFound is returned when a menu item is not found.
var ErrMenuItemNotFound = errors.New("menu item not found")

// VendorRepository defines the standard operations for vendor persistence.
// It is the durable collaborator behind the live registry: the broker writes
// accepted pings here asynchronously, and nearby queries read the ACTIVE set.
type VendorRepository interface {
	// FindByID retrieves a single vendor by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Vendor, error)

	// FindByOwner retrieves the vendor owned by the given user account.
	FindByOwner(ctx context.Context, ownerUserID uuid.UUID) (*entity.Vendor, error)

	// FindActive retrieves all non-suspended vendors with status ACTIVE.
	FindActive(ctx context.Context) ([]*entity.Vendor, error)

	// List retrieves all vendors, including suspended ones (admin view).
	List(ctx context.Context) ([]*entity.Vendor, error)

	// Create persists a new vendor entity to the storage.
	Create(ctx context.Context, vendor *entity.Vendor) error

	// Update modifies an existing vendor entity in the storage.
	Update(ctx context.Context, vendor *entity.Vendor) error

	// UpdateLocation stores the vendor's latest coordinates. The write is
	// best-effort from the broker's perspective; in-memory state is not
	// rolled back when it fails.
	UpdateLocation(ctx context.Context, vendorID uuid.UUID, lat, lon float64, at time.Time) error
}

// MenuRepository defines the operations for a vendor's menu items.
type MenuRepository interface {
	// FindByVendor retrieves all menu items belonging to a vendor.
	FindByVendor(ctx context.Context, vendorID uuid.UUID) ([]*entity.MenuItem, error)

	// FindByID retrieves a single menu item by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MenuItem, error)

	// Create persists a new menu item.
	Create(ctx context.Context, item *entity.MenuItem) error

	// Update modifies an existing menu item.
	Update(ctx context.Context, item *entity.MenuItem) error

	// Delete removes a menu item.
	Delete(ctx context.Context, id uuid.UUID) error
}
