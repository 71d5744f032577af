package usecase

import (
	"context"

	"cosmiccraft/internal/domain/entity"
)

// WishlistUsecase manages the single wishlist of each user.
type WishlistUsecase interface {
	// GetWishlist creates an empty wishlist on first access.
	GetWishlist(ctx context.Context, userID int64) (*entity.Wishlist, error)
	// AddProduct creates the wishlist if needed. Adding a product twice keeps one entry.
	AddProduct(ctx context.Context, userID, productID int64) (*entity.Wishlist, error)
	// RemoveProduct requires an existing wishlist and is a no-op for an absent product.
	RemoveProduct(ctx context.Context, userID, productID int64) (*entity.Wishlist, error)
}
