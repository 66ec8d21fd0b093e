// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"kakilima/internal/domain/entity"
	domainerrors "kakilima/internal/domain/errors"
	"kakilima/internal/domain/repository"
	"kakilima/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// favoriteRepository implements the repository.FavoriteRepository interface using GORM.
type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository is the constructor for favoriteRepository.
func NewFavoriteRepository(db *gorm.DB) repository.FavoriteRepository {
	return &favoriteRepository{
		db: db,
	}
}

// FindByBuyer retrieves all favorites of a buyer.
func (repo *favoriteRepository) FindByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*entity.Favorite, error) {
	var favoriteModels []*model.FavoriteModel

	if err := repo.db.WithContext(ctx).
		Where("buyer_id = ?", buyerID).
		Order("created_at ASC").
		Find(&favoriteModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find favorites by buyer")
	}

	favorites := make([]*entity.Favorite, 0, len(favoriteModels))
	for _, favoriteM := range favoriteModels {
		favorites = append(favorites, toFavoriteDomain(favoriteM))
	}

	return favorites, nil
}

// FindVendorIDsByBuyer retrieves just the favorited vendor IDs of a buyer.
func (repo *favoriteRepository) FindVendorIDsByBuyer(ctx context.Context, buyerID uuid.UUID) ([]uuid.UUID, error) {
	var vendorIDs []uuid.UUID

	if err := repo.db.WithContext(ctx).
		Model(&model.FavoriteModel{}).
		Where("buyer_id = ?", buyerID).
		Pluck("vendor_id", &vendorIDs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find favorite vendor ids")
	}

	return vendorIDs, nil
}

// Create persists a new favorite.
func (repo *favoriteRepository) Create(ctx context.Context, favorite *entity.Favorite) error {
	favoriteM := fromFavoriteDomain(favorite)

	if err := repo.db.WithContext(ctx).Create(favoriteM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateFavorite
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create favorite")
	}

	favorite.ID = favoriteM.ID
	favorite.CreatedAt = favoriteM.CreatedAt

	return nil
}

// Delete removes a favorite; it is a no-op when absent.
func (repo *favoriteRepository) Delete(ctx context.Context, buyerID, vendorID uuid.UUID) error {
	if err := repo.db.WithContext(ctx).
		Where("buyer_id = ? AND vendor_id = ?", buyerID, vendorID).
		Delete(&model.FavoriteModel{}).Error; err != nil {
		return errors.Wrap(err, "failed to delete favorite")
	}

	return nil
}

// --- Mapper Functions ---

// toFavoriteDomain converts a GORM FavoriteModel to a domain Favorite entity.
func toFavoriteDomain(data *model.FavoriteModel) *entity.Favorite {
	if data == nil {
		return nil
	}

	return &entity.Favorite{
		ID:        data.ID,
		BuyerID:   data.BuyerID,
		VendorID:  data.VendorID,
		CreatedAt: data.CreatedAt,
	}
}

// fromFavoriteDomain converts a domain Favorite entity to a GORM FavoriteModel.
func fromFavoriteDomain(data *entity.Favorite) *model.FavoriteModel {
	if data == nil {
		return nil
	}

	return &model.FavoriteModel{
		ID:        data.ID,
		BuyerID:   data.BuyerID,
		VendorID:  data.VendorID,
		CreatedAt: data.CreatedAt,
	}
}
