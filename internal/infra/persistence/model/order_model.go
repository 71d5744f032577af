package model

import "time"

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	ID        int64            `gorm:"primaryKey"`
	UserID    int64            `gorm:"not null;index"`
	Total     int              `gorm:"not null"`
	Status    string           `gorm:"type:varchar(64);not null"`
	Items     []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt time.Time
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel mirrors the 'order_items' table.
type OrderItemModel struct {
	ID        int64 `gorm:"primaryKey"`
	OrderID   int64 `gorm:"not null;index"`
	ProductID int64 `gorm:"not null"`
	Quantity  int   `gorm:"not null"`
	UnitPrice int   `gorm:"not null"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}
