// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"kakilima/internal/domain/entity"
	domainerrors "kakilima/internal/domain/errors"
	"kakilima/internal/domain/repository"
	"kakilima/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// vendorRepository implements the repository.VendorRepository interface using GORM.
type vendorRepository struct {
	db *gorm.DB
}

// NewVendorRepository is the constructor for vendorRepository.
func NewVendorRepository(db *gorm.DB) repository.VendorRepository {
	return &vendorRepository{
		db: db,
	}
}

// FindByID retrieves a single vendor by its unique ID.
func (repo *vendorRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vendor, error) {
	var vendorM model.VendorModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&vendorM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "failed to find vendor by id")
	}

	return toVendorDomain(&vendorM), nil
}

// FindByOwner retrieves the vendor owned by the given user account.
func (repo *vendorRepository) FindByOwner(ctx context.Context, ownerUserID uuid.UUID) (*entity.Vendor, error) {
	var vendorM model.VendorModel

	if err := repo.db.WithContext(ctx).
		Where("owner_user_id = ?", ownerUserID).
		First(&vendorM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrVendorNotFound
		}

		return nil, errors.Wrap(err, "failed to find vendor by owner")
	}

	return toVendorDomain(&vendorM), nil
}

// FindActive retrieves all non-suspended vendors with status ACTIVE.
func (repo *vendorRepository) FindActive(ctx context.Context) ([]*entity.Vendor, error) {
	var vendorModels []*model.VendorModel

	if err := repo.db.WithContext(ctx).
		Where("status = ? AND is_suspended = ?", entity.VendorStatusActive.String(), false).
		Order("created_at ASC").
		Find(&vendorModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find active vendors")
	}

	return toVendorDomains(vendorModels), nil
}

// List retrieves all vendors, including suspended ones (admin view).
func (repo *vendorRepository) List(ctx context.Context) ([]*entity.Vendor, error) {
	var vendorModels []*model.VendorModel

	if err := repo.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&vendorModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list vendors")
	}

	return toVendorDomains(vendorModels), nil
}

// Create persists a new vendor entity.
func (repo *vendorRepository) Create(ctx context.Context, vendor *entity.Vendor) error {
	vendorM := fromVendorDomain(vendor)

	if err := repo.db.WithContext(ctx).Create(vendorM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("user already owns a vendor")
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "invalid owner reference")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create vendor")
	}

	vendor.ID = vendorM.ID
	vendor.CreatedAt = vendorM.CreatedAt
	vendor.UpdatedAt = vendorM.UpdatedAt

	return nil
}

// Update modifies an existing vendor entity.
func (repo *vendorRepository) Update(ctx context.Context, vendor *entity.Vendor) error {
	vendorM := fromVendorDomain(vendor)

	if err := repo.db.WithContext(ctx).Save(vendorM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to update vendor")
	}

	vendor.UpdatedAt = vendorM.UpdatedAt

	return nil
}

// UpdateLocation stores the vendor's latest coordinates without touching the
// rest of the row.
func (repo *vendorRepository) UpdateLocation(ctx context.Context, vendorID uuid.UUID, lat, lon float64, at time.Time) error {
	result := repo.db.WithContext(ctx).
		Model(&model.VendorModel{}).
		Where("id = ?", vendorID).
		Updates(map[string]any{
			"latitude":           lat,
			"longitude":          lon,
			"last_location_time": at,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update vendor location")
	}

	if result.RowsAffected == 0 {
		return repository.ErrVendorNotFound
	}

	return nil
}

// --- Mapper Functions ---

// toVendorDomain converts a GORM VendorModel to a domain Vendor entity.
func toVendorDomain(data *model.VendorModel) *entity.Vendor {
	if data == nil {
		return nil
	}

	return &entity.Vendor{
		ID:               data.ID,
		OwnerUserID:      data.OwnerUserID,
		StoreName:        data.StoreName,
		Description:      data.Description,
		Status:           entity.VendorStatus(data.Status),
		IsSuspended:      data.IsSuspended,
		Latitude:         data.Latitude,
		Longitude:        data.Longitude,
		LastLocationTime: data.LastLocationTime,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}

func toVendorDomains(models []*model.VendorModel) []*entity.Vendor {
	vendors := make([]*entity.Vendor, 0, len(models))
	for _, vendorM := range models {
		vendors = append(vendors, toVendorDomain(vendorM))
	}

	return vendors
}

// fromVendorDomain converts a domain Vendor entity to a GORM VendorModel.
func fromVendorDomain(data *entity.Vendor) *model.VendorModel {
	if data == nil {
		return nil
	}

	return &model.VendorModel{
		ID:               data.ID,
		OwnerUserID:      data.OwnerUserID,
		StoreName:        data.StoreName,
		Description:      data.Description,
		Status:           data.Status.String(),
		IsSuspended:      data.IsSuspended,
		Latitude:         data.Latitude,
		Longitude:        data.Longitude,
		LastLocationTime: data.LastLocationTime,
		CreatedAt:        data.CreatedAt,
		UpdatedAt:        data.UpdatedAt,
	}
}
