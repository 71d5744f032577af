package model

import "time"

// CategoryModel mirrors the 'categories' table.
type CategoryModel struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

// ProductModel mirrors the 'products' table. CategoryID is set to NULL when its category is deleted.
type ProductModel struct {
	ID          int64  `gorm:"primaryKey"`
	Title       string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:text"`
	Price       int    `gorm:"not null"`
	IsOnSale    bool   `gorm:"not null;default:false"`
	CategoryID  *int64
	Category    *CategoryModel      `gorm:"foreignKey:CategoryID"`
	Images      []ProductImageModel `gorm:"foreignKey:ProductID"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (ProductModel) TableName() string {
	return "products"
}

// ProductImageModel mirrors the 'product_images' table. The bytes live in the image bucket.
type ProductImageModel struct {
	ID               int64  `gorm:"primaryKey"`
	ProductID        int64  `gorm:"not null;index"`
	StorageKey       string `gorm:"type:varchar(255);not null"`
	OriginalFileName string `gorm:"type:varchar(255)"`
	ContentType      string `gorm:"type:varchar(100)"`
}

func (ProductImageModel) TableName() string {
	return "product_images"
}
