package entity

import "time"

// OrderStatusNew is the status every order starts in. Later statuses are free-form.
const OrderStatusNew = "NEW"

// Order is the durable record of a checkout. Items are fixed at creation.
type Order struct {
	ID        int64
	UserID    int64
	Total     int // Caller-supplied, not recomputed from items.
	Status    string
	CreatedAt time.Time
	Items     []OrderItem
}

// OrderItem is one purchased line, owned by its Order.
type OrderItem struct {
	ProductID int64
	Quantity  int
	UnitPrice int
}

// ItemsTotal sums quantity times unit price over all items.
func (o *Order) ItemsTotal() int {
	total := 0
	for _, item := range o.Items {
		total += item.Quantity * item.UnitPrice
	}

	return total
}
