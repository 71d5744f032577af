package repository

import (
	"context"

	"cosmiccraft/internal/domain/entity"

	"github.com/pkg/errors"
)

var (
	// ErrProductNotFound is returned when a product is not found.
	ErrProductNotFound = errors.New("product not found")
	// ErrCategoryNotFound is returned when a category is not found.
	ErrCategoryNotFound = errors.New("category not found")
)

// ProductRepository defines the interface for catalog product operations.
type ProductRepository interface {
	// Create persists a product and its image references.
	Create(ctx context.Context, product *entity.Product) error

	// Update overwrites scalar fields and the category of an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// AddImages appends image references to a product.
	AddImages(ctx context.Context, productID int64, images []entity.ProductImage) error

	// FindByID retrieves a product with its category and images.
	FindByID(ctx context.Context, id int64) (*entity.Product, error)

	// Find lists products matching filter, ordered by ID.
	Find(ctx context.Context, filter entity.ProductFilter) ([]*entity.Product, error)

	// Delete removes a product and its image references. Deleting an absent ID is a no-op.
	Delete(ctx context.Context, id int64) error
}

// CategoryRepository defines the interface for catalog category operations.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	FindByID(ctx context.Context, id int64) (*entity.Category, error)
	FindAll(ctx context.Context) ([]*entity.Category, error)
	// Delete removes a category; products referencing it become uncategorised.
	Delete(ctx context.Context, id int64) error
}
