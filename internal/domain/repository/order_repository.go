package repository

import (
	"context"

	"cosmiccraft/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the interface for order persistence.
type OrderRepository interface {
	// Create persists an order together with its items and assigns the order ID.
	// Callers needing atomicity run it inside TransactionManager.Execute.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order with its items.
	FindByID(ctx context.Context, id int64) (*entity.Order, error)

	// FindByUser lists the orders of userID ordered by creation time.
	FindByUser(ctx context.Context, userID int64) ([]*entity.Order, error)

	// FindAll lists every order ordered by creation time.
	FindAll(ctx context.Context) ([]*entity.Order, error)

	// UpdateStatus overwrites the status of an order.
	UpdateStatus(ctx context.Context, id int64, status string) error

	// Delete removes an order and its items. Deleting an absent ID is a no-op.
	Delete(ctx context.Context, id int64) error
}
