package repository

import (
	"context"

	"cosmiccraft/internal/domain/entity"

	"github.com/pkg/errors"
)

var (
	// ErrOwnedResourceNotFound is returned when an owner has no cart or wishlist yet.
	ErrOwnedResourceNotFound = errors.New("owned resource not found")
	// ErrOwnedResourceExists is returned when an insert lost the race against another creator.
	ErrOwnedResourceExists = errors.New("owned resource already exists")
)

// CartRepository stores one cart per user.
type CartRepository interface {
	// FindByOwner retrieves the cart of userID with its items.
	FindByOwner(ctx context.Context, userID int64) (*entity.Cart, error)

	// CreateEmpty inserts an empty cart for userID if none exists.
	// It returns ErrOwnedResourceExists when another cart already holds the owner.
	CreateEmpty(ctx context.Context, userID int64) (*entity.Cart, error)

	// Save replaces the items of an existing cart atomically.
	Save(ctx context.Context, cart *entity.Cart) error
}

// WishlistRepository stores one wishlist per user.
type WishlistRepository interface {
	FindByOwner(ctx context.Context, userID int64) (*entity.Wishlist, error)
	CreateEmpty(ctx context.Context, userID int64) (*entity.Wishlist, error)
	Save(ctx context.Context, wishlist *entity.Wishlist) error
}
