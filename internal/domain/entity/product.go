package entity

import "time"

// Category groups products in the catalog.
type Category struct {
	ID          int64
	Name        string
	Description string
}

// Product is a catalog entry. Price is in minor currency units.
type Product struct {
	ID          int64
	Title       string
	Description string
	Price       int
	IsOnSale    bool
	Category    *Category // nil when the product is uncategorised.
	Images      []ProductImage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductImage references an image blob stored outside the database.
type ProductImage struct {
	ID               int64
	ProductID        int64
	StorageKey       string // Key inside the image bucket.
	OriginalFileName string
	ContentType      string
}

// ProductFilter narrows a catalog listing. Nil fields do not filter.
type ProductFilter struct {
	Title      string // Case-insensitive substring of the title.
	CategoryID *int64
	MaxPrice   *int
}

// ProductPatch carries a partial product update. Nil fields are left untouched.
type ProductPatch struct {
	Title       *string
	Description *string
	Price       *int
	CategoryID  *int64
	IsOnSale    *bool
}
