package usecase

import (
	"context"

	"cosmiccraft/internal/domain/entity"
)

// CartUsecase manages the single cart of each user.
//
// GetCart creates an empty cart on first access. Every mutation requires the cart to
// exist already and fails with ErrCartNotFound otherwise.
type CartUsecase interface {
	GetCart(ctx context.Context, userID int64) (*entity.Cart, error)
	// AddItem increments the quantity of an existing line instead of adding a second one.
	AddItem(ctx context.Context, userID, productID int64, quantity int) (*entity.Cart, error)
	// UpdateItem replaces the quantity of an existing line.
	UpdateItem(ctx context.Context, userID, productID int64, quantity int) (*entity.Cart, error)
	// RemoveItem is a no-op when the cart has no line for productID.
	RemoveItem(ctx context.Context, userID, productID int64) (*entity.Cart, error)
	ClearCart(ctx context.Context, userID int64) (*entity.Cart, error)
}
