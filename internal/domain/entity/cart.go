package entity

import (
	"math"
	"time"
)

// MaxQuantity is the largest quantity a single cart line can hold.
const MaxQuantity = math.MaxInt32

// Cart is the per-user shopping cart. At most one cart exists per UserID.
type Cart struct {
	ID        int64
	UserID    int64
	Items     []CartItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CartItem is one line of a cart. A cart holds at most one line per product.
type CartItem struct {
	ProductID int64
	Quantity  int
}

// AddItem merges quantity into the line for productID, appending a new line when none exists.
// It reports false and leaves the cart untouched when the merged quantity would exceed MaxQuantity.
func (c *Cart) AddItem(productID int64, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			if quantity > MaxQuantity-c.Items[i].Quantity {
				return false
			}
			c.Items[i].Quantity += quantity

			return true
		}
	}
	if quantity > MaxQuantity {
		return false
	}
	c.Items = append(c.Items, CartItem{ProductID: productID, Quantity: quantity})

	return true
}

// SetQuantity overwrites the quantity of an existing line. It reports false when
// the cart has no line for productID.
func (c *Cart) SetQuantity(productID int64, quantity int) bool {
	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity = quantity

			return true
		}
	}

	return false
}

// RemoveItem drops the line for productID. Removing an absent product is a no-op.
func (c *Cart) RemoveItem(productID int64) {
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	c.Items = kept
}

// Clear empties the cart without removing the cart itself.
func (c *Cart) Clear() {
	c.Items = []CartItem{}
}
