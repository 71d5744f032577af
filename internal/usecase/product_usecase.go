package usecase

import (
	"context"

	"cosmiccraft/internal/domain/entity"
)

// CreateProductInput defines a new catalog entry. CategoryID is optional.
type CreateProductInput struct {
	Title       string
	Description string
	Price       int
	CategoryID  *int64
}

// ImageUpload is one uploaded image file.
type ImageUpload struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ImageContent is a stored image loaded back from the bucket.
type ImageContent struct {
	ContentType string
	Data        []byte
}

// ProductDetails is a product together with the bytes of its images.
type ProductDetails struct {
	Product *entity.Product
	Images  []ImageContent
}

// ProductUsecase defines catalog operations on products.
type ProductUsecase interface {
	ListProducts(ctx context.Context, filter entity.ProductFilter) ([]*ProductDetails, error)
	GetProduct(ctx context.Context, id int64) (*ProductDetails, error)
	CreateProduct(ctx context.Context, input *CreateProductInput) (*ProductDetails, error)
	// UpdateProduct applies patch and appends uploads. An unknown category clears the product's category.
	UpdateProduct(ctx context.Context, id int64, patch entity.ProductPatch, uploads []ImageUpload) (*ProductDetails, error)
	// DeleteProduct is a no-op for an absent product.
	DeleteProduct(ctx context.Context, id int64) error
	// ProductQRCode returns a PNG pointing at the product page.
	ProductQRCode(ctx context.Context, id int64) ([]byte, error)
}

// CategoryUsecase defines catalog operations on categories.
type CategoryUsecase interface {
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	CreateCategory(ctx context.Context, name, description string) (*entity.Category, error)
	DeleteCategory(ctx context.Context, id int64) error
}
