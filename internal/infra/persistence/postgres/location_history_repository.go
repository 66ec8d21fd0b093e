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

// locationHistoryRepository implements the repository.LocationHistoryRepository interface using GORM.
type locationHistoryRepository struct {
	db *gorm.DB
}

// NewLocationHistoryRepository is the constructor for locationHistoryRepository.
func NewLocationHistoryRepository(db *gorm.DB) repository.LocationHistoryRepository {
	return &locationHistoryRepository{
		db: db,
	}
}

// Create persists one location sample.
func (repo *locationHistoryRepository) Create(ctx context.Context, sample *entity.VendorLocationSample) error {
	sampleM := fromLocationSampleDomain(sample)

	if err := repo.db.WithContext(ctx).Create(sampleM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create location sample")
	}

	sample.ID = sampleM.ID

	return nil
}

// FindSince retrieves all samples recorded after the given time.
func (repo *locationHistoryRepository) FindSince(ctx context.Context, since time.Time) ([]*entity.VendorLocationSample, error) {
	var sampleModels []*model.VendorLocationSampleModel

	if err := repo.db.WithContext(ctx).
		Where("recorded_at > ?", since).
		Order("recorded_at ASC").
		Find(&sampleModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find location samples since")
	}

	return toLocationSampleDomains(sampleModels), nil
}

// FindByVendorSince retrieves a vendor's samples recorded after the given time.
func (repo *locationHistoryRepository) FindByVendorSince(ctx context.Context, vendorID uuid.UUID, since time.Time) ([]*entity.VendorLocationSample, error) {
	var sampleModels []*model.VendorLocationSampleModel

	if err := repo.db.WithContext(ctx).
		Where("vendor_id = ? AND recorded_at > ?", vendorID, since).
		Order("recorded_at ASC").
		Find(&sampleModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find vendor location samples since")
	}

	return toLocationSampleDomains(sampleModels), nil
}

// --- Mapper Functions ---

func toLocationSampleDomain(data *model.VendorLocationSampleModel) *entity.VendorLocationSample {
	if data == nil {
		return nil
	}

	return &entity.VendorLocationSample{
		ID:         data.ID,
		VendorID:   data.VendorID,
		Latitude:   data.Latitude,
		Longitude:  data.Longitude,
		RecordedAt: data.RecordedAt,
	}
}

func toLocationSampleDomains(models []*model.VendorLocationSampleModel) []*entity.VendorLocationSample {
	samples := make([]*entity.VendorLocationSample, 0, len(models))
	for _, sampleM := range models {
		samples = append(samples, toLocationSampleDomain(sampleM))
	}

	return samples
}

func fromLocationSampleDomain(data *entity.VendorLocationSample) *model.VendorLocationSampleModel {
	if data == nil {
		return nil
	}

	return &model.VendorLocationSampleModel{
		ID:         data.ID,
		VendorID:   data.VendorID,
		Latitude:   data.Latitude,
		Longitude:  data.Longitude,
		RecordedAt: data.RecordedAt,
	}
}
