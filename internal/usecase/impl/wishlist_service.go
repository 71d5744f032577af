package impl

import (
	"context"
	"log/slog"

	deliverycontext "cosmiccraft/internal/delivery/context"
	"cosmiccraft/internal/domain/entity"
	domainerrors "cosmiccraft/internal/domain/errors"
	"cosmiccraft/internal/domain/repository"
	"cosmiccraft/internal/domain/service"
	"cosmiccraft/internal/usecase"
	"cosmiccraft/internal/usecase/singleton"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type wishlistService struct {
	wishlists *singleton.Manager[*entity.Wishlist]
	logger    *slog.Logger
}

// WishlistServiceParams holds dependencies for WishlistService, injected by Fx.
type WishlistServiceParams struct {
	fx.In

	WishlistRepo repository.WishlistRepository
	Locker       service.KeyedLocker
	Logger       *slog.Logger
}

// NewWishlistService creates a wishlist service backed by a per-owner singleton manager.
func NewWishlistService(params WishlistServiceParams) usecase.WishlistUsecase {
	return &wishlistService{
		wishlists: singleton.NewManager[*entity.Wishlist]("wishlist", params.WishlistRepo, params.Locker),
		logger:    params.Logger,
	}
}

func (srv *wishlistService) GetWishlist(ctx context.Context, userID int64) (*entity.Wishlist, error) {
	wishlist, err := srv.wishlists.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get wishlist")
	}

	return wishlist, nil
}

func (srv *wishlistService) AddProduct(ctx context.Context, userID, productID int64) (*entity.Wishlist, error) {
	wishlist, err := srv.wishlists.Mutate(ctx, userID, singleton.CreateIfAbsent, func(wishlist *entity.Wishlist) error {
		wishlist.AddProduct(productID)

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to add product to wishlist")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Debug("Wishlist product added",
		slog.Int64("userID", userID), slog.Int64("productID", productID))

	return wishlist, nil
}

func (srv *wishlistService) RemoveProduct(ctx context.Context, userID, productID int64) (*entity.Wishlist, error) {
	wishlist, err := srv.wishlists.Mutate(ctx, userID, singleton.RequireExisting, func(wishlist *entity.Wishlist) error {
		wishlist.RemoveProduct(productID)

		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrOwnedResourceNotFound) {
			return nil, errors.Wrapf(domainerrors.ErrWishlistNotFound, "user %d", userID)
		}

		return nil, errors.Wrap(err, "failed to remove product from wishlist")
	}

	return wishlist, nil
}
