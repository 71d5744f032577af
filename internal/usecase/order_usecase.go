package usecase

import (
	"context"

	"cosmiccraft/internal/domain/entity"
)

// CreateOrderInput is a checkout request. Total is taken as given.
type CreateOrderInput struct {
	UserID    int64
	UserEmail string
	Total     int
	Items     []entity.OrderItem
}

// OrderUsecase defines the order lifecycle.
type OrderUsecase interface {
	// CreateOrder persists the order with its items, then notifies the purchaser.
	// A failed notification is logged and never fails the call.
	CreateOrder(ctx context.Context, input *CreateOrderInput) (*entity.Order, error)
	GetOrder(ctx context.Context, id int64) (*entity.Order, error)
	GetOrdersByUser(ctx context.Context, userID int64) ([]*entity.Order, error)
	GetAllOrders(ctx context.Context) ([]*entity.Order, error)
	// UpdateStatus overwrites the status with any non-empty string.
	UpdateStatus(ctx context.Context, id int64, status string) error
	// DeleteOrder is a no-op for an absent order.
	DeleteOrder(ctx context.Context, id int64) error
}
