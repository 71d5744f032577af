package entity

import (
	"slices"
	"time"
)

// Wishlist is the per-user set of saved products. At most one wishlist exists per UserID.
type Wishlist struct {
	ID         int64
	UserID     int64
	ProductIDs []int64 // Set semantics, kept in insertion order.
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AddProduct inserts productID unless it is already present.
func (w *Wishlist) AddProduct(productID int64) {
	if slices.Contains(w.ProductIDs, productID) {
		return
	}
	w.ProductIDs = append(w.ProductIDs, productID)
}

// RemoveProduct drops productID. Removing an absent product is a no-op.
func (w *Wishlist) RemoveProduct(productID int64) {
	w.ProductIDs = slices.DeleteFunc(w.ProductIDs, func(id int64) bool {
		return id == productID
	})
}
