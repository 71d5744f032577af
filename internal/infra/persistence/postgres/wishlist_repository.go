package postgres

import (
	"context"
	"time"

	"cosmiccraft/internal/domain/entity"
	domainerrors "cosmiccraft/internal/domain/errors"
	"cosmiccraft/internal/domain/repository"
	"cosmiccraft/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository is the constructor for wishlistRepository.
func NewWishlistRepository(db *gorm.DB) repository.WishlistRepository {
	return &wishlistRepository{db: db}
}

func (repo *wishlistRepository) FindByOwner(ctx context.Context, userID int64) (*entity.Wishlist, error) {
	var wishlistM model.WishlistModel
	err := repo.db.WithContext(ctx).
		Preload("Products", func(db *gorm.DB) *gorm.DB {
			return db.Order("position")
		}).
		Where("user_id = ?", userID).
		First(&wishlistM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOwnedResourceNotFound
		}

		return nil, errors.Wrap(err, "failed to find wishlist by owner")
	}

	return toWishlistDomain(&wishlistM), nil
}

func (repo *wishlistRepository) CreateEmpty(ctx context.Context, userID int64) (*entity.Wishlist, error) {
	wishlistM := model.WishlistModel{UserID: userID}
	result := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&wishlistM)
	if result.Error != nil {
		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to create wishlist")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrOwnedResourceExists
	}

	return toWishlistDomain(&wishlistM), nil
}

func (repo *wishlistRepository) Save(ctx context.Context, wishlist *entity.Wishlist) error {
	now := time.Now()

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.WishlistModel{}).
			Where("id = ?", wishlist.ID).
			Update("updated_at", now)
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to touch wishlist")
		}
		if result.RowsAffected == 0 {
			return repository.ErrOwnedResourceNotFound
		}

		if err := tx.Where("wishlist_id = ?", wishlist.ID).Delete(&model.WishlistProductModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to clear wishlist products")
		}

		if len(wishlist.ProductIDs) == 0 {
			return nil
		}

		rows := make([]model.WishlistProductModel, 0, len(wishlist.ProductIDs))
		for i, productID := range wishlist.ProductIDs {
			rows = append(rows, model.WishlistProductModel{
				WishlistID: wishlist.ID,
				ProductID:  productID,
				Position:   i,
			})
		}

		return errors.Wrap(tx.Create(&rows).Error, "failed to insert wishlist products")
	})
	if err != nil {
		if errors.Is(err, repository.ErrOwnedResourceNotFound) {
			return err
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to save wishlist")
	}

	wishlist.UpdatedAt = now

	return nil
}

func toWishlistDomain(data *model.WishlistModel) *entity.Wishlist {
	productIDs := make([]int64, 0, len(data.Products))
	for _, p := range data.Products {
		productIDs = append(productIDs, p.ProductID)
	}

	return &entity.Wishlist{
		ID:         data.ID,
		UserID:     data.UserID,
		ProductIDs: productIDs,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
