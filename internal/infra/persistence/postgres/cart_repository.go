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

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository is the constructor for cartRepository.
func NewCartRepository(db *gorm.DB) repository.CartRepository {
	return &cartRepository{db: db}
}

func (repo *cartRepository) FindByOwner(ctx context.Context, userID int64) (*entity.Cart, error) {
	var cartM model.CartModel
	err := repo.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("id")
		}).
		Where("user_id = ?", userID).
		First(&cartM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOwnedResourceNotFound
		}

		return nil, errors.Wrap(err, "failed to find cart by owner")
	}

	return toCartDomain(&cartM), nil
}

// CreateEmpty inserts with ON CONFLICT (user_id) DO NOTHING, so a concurrent
// creator on another replica makes this insert affect zero rows instead of failing.
func (repo *cartRepository) CreateEmpty(ctx context.Context, userID int64) (*entity.Cart, error) {
	cartM := model.CartModel{UserID: userID}
	result := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoNothing: true,
		}).
		Create(&cartM)
	if result.Error != nil {
		return nil, domainerrors.NewDatabaseExecuteError(result.Error, "failed to create cart")
	}
	if result.RowsAffected == 0 {
		return nil, repository.ErrOwnedResourceExists
	}

	return toCartDomain(&cartM), nil
}

// Save replaces the cart lines in one transaction.
func (repo *cartRepository) Save(ctx context.Context, cart *entity.Cart) error {
	now := time.Now()

	err := repo.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.CartModel{}).
			Where("id = ?", cart.ID).
			Update("updated_at", now)
		if result.Error != nil {
			return errors.Wrap(result.Error, "failed to touch cart")
		}
		if result.RowsAffected == 0 {
			return repository.ErrOwnedResourceNotFound
		}

		if err := tx.Where("cart_id = ?", cart.ID).Delete(&model.CartItemModel{}).Error; err != nil {
			return errors.Wrap(err, "failed to clear cart items")
		}

		if len(cart.Items) == 0 {
			return nil
		}

		itemMs := make([]model.CartItemModel, 0, len(cart.Items))
		for _, item := range cart.Items {
			itemMs = append(itemMs, model.CartItemModel{
				CartID:    cart.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
			})
		}

		return errors.Wrap(tx.Create(&itemMs).Error, "failed to insert cart items")
	})
	if err != nil {
		if errors.Is(err, repository.ErrOwnedResourceNotFound) {
			return err
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to save cart")
	}

	cart.UpdatedAt = now

	return nil
}

func toCartDomain(data *model.CartModel) *entity.Cart {
	items := make([]entity.CartItem, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, entity.CartItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	return &entity.Cart{
		ID:        data.ID,
		UserID:    data.UserID,
		Items:     items,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
