package model

import "time"

// CartModel mirrors the 'carts' table. user_id is unique: one cart per user.
type CartModel struct {
	ID        int64           `gorm:"primaryKey"`
	UserID    int64           `gorm:"not null;uniqueIndex"`
	Items     []CartItemModel `gorm:"foreignKey:CartID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CartModel) TableName() string {
	return "carts"
}

// CartItemModel mirrors the 'cart_items' table, unique on (cart_id, product_id).
type CartItemModel struct {
	ID        int64 `gorm:"primaryKey"`
	CartID    int64 `gorm:"not null;uniqueIndex:idx_cart_items_cart_product"`
	ProductID int64 `gorm:"not null;uniqueIndex:idx_cart_items_cart_product"`
	Quantity  int   `gorm:"not null"`
}

func (CartItemModel) TableName() string {
	return "cart_items"
}

// WishlistModel mirrors the 'wishlists' table. user_id is unique: one wishlist per user.
type WishlistModel struct {
	ID        int64                  `gorm:"primaryKey"`
	UserID    int64                  `gorm:"not null;uniqueIndex"`
	Products  []WishlistProductModel `gorm:"foreignKey:WishlistID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (WishlistModel) TableName() string {
	return "wishlists"
}

// WishlistProductModel mirrors the 'wishlist_products' join table.
// Position keeps the order in which products were added.
type WishlistProductModel struct {
	WishlistID int64 `gorm:"primaryKey"`
	ProductID  int64 `gorm:"primaryKey"`
	Position   int   `gorm:"not null"`
}

func (WishlistProductModel) TableName() string {
	return "wishlist_products"
}
