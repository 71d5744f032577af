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

const cartResourceKind = "cart"

type cartService struct {
	carts  *singleton.Manager[*entity.Cart]
	logger *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo repository.CartRepository
	Locker   service.KeyedLocker
	Logger   *slog.Logger
}

// NewCartService creates a cart service backed by a per-owner singleton manager.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		carts:  singleton.NewManager[*entity.Cart](cartResourceKind, params.CartRepo, params.Locker),
		logger: params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *cartService) GetCart(ctx context.Context, userID int64) (*entity.Cart, error) {
	cart, err := srv.carts.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get cart")
	}

	return cart, nil
}

func (srv *cartService) AddItem(ctx context.Context, userID, productID int64, quantity int) (*entity.Cart, error) {
	if quantity <= 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("quantity must be positive")
	}

	cart, err := srv.carts.Mutate(ctx, userID, singleton.RequireExisting, func(cart *entity.Cart) error {
		if !cart.AddItem(productID, quantity) {
			return domainerrors.ErrValidationFailed.WithDetails("quantity exceeds the maximum per cart line")
		}

		return nil
	})
	if err != nil {
		return nil, srv.translate(err, userID)
	}

	srv.log(ctx).Debug("Cart item added", slog.Int64("userID", userID), slog.Int64("productID", productID), slog.Int("quantity", quantity))

	return cart, nil
}

func (srv *cartService) UpdateItem(ctx context.Context, userID, productID int64, quantity int) (*entity.Cart, error) {
	if quantity <= 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("quantity must be positive")
	}

	cart, err := srv.carts.Mutate(ctx, userID, singleton.RequireExisting, func(cart *entity.Cart) error {
		if !cart.SetQuantity(productID, quantity) {
			return errors.Wrapf(domainerrors.ErrCartItemNotFound, "product %d", productID)
		}

		return nil
	})
	if err != nil {
		return nil, srv.translate(err, userID)
	}

	return cart, nil
}

func (srv *cartService) RemoveItem(ctx context.Context, userID, productID int64) (*entity.Cart, error) {
	cart, err := srv.carts.Mutate(ctx, userID, singleton.RequireExisting, func(cart *entity.Cart) error {
		cart.RemoveItem(productID)

		return nil
	})
	if err != nil {
		return nil, srv.translate(err, userID)
	}

	return cart, nil
}

func (srv *cartService) ClearCart(ctx context.Context, userID int64) (*entity.Cart, error) {
	cart, err := srv.carts.Mutate(ctx, userID, singleton.RequireExisting, func(cart *entity.Cart) error {
		cart.Clear()

		return nil
	})
	if err != nil {
		return nil, srv.translate(err, userID)
	}

	srv.log(ctx).Debug("Cart cleared", slog.Int64("userID", userID))

	return cart, nil
}

func (srv *cartService) translate(err error, userID int64) error {
	if errors.Is(err, repository.ErrOwnedResourceNotFound) {
		return errors.Wrapf(domainerrors.ErrCartNotFound, "user %d", userID)
	}

	return errors.Wrap(err, "failed to update cart")
}
