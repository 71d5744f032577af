package postgres

import (
	"context"

	"cosmiccraft/internal/domain/entity"
	domainerrors "cosmiccraft/internal/domain/errors"
	"cosmiccraft/internal/domain/repository"
	"cosmiccraft/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository is the constructor for orderRepository.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

// Create inserts the order and its items. GORM writes the items through the association.
func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)

	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt

	return nil
}

func (repo *orderRepository) FindByID(ctx context.Context, id int64) (*entity.Order, error) {
	var orderM model.OrderModel
	if err := repo.withItems(ctx).First(&orderM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	return toOrderDomain(&orderM), nil
}

func (repo *orderRepository) FindByUser(ctx context.Context, userID int64) ([]*entity.Order, error) {
	var orderMs []model.OrderModel
	err := repo.withItems(ctx).
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&orderMs).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders by user")
	}

	return toOrderDomains(orderMs), nil
}

func (repo *orderRepository) FindAll(ctx context.Context) ([]*entity.Order, error) {
	var orderMs []model.OrderModel
	if err := repo.withItems(ctx).Order("created_at, id").Find(&orderMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return toOrderDomains(orderMs), nil
}

func (repo *orderRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update order status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrOrderNotFound
	}

	return nil
}

// Delete relies on ON DELETE CASCADE for order_items.
func (repo *orderRepository) Delete(ctx context.Context, id int64) error {
	if err := repo.db.WithContext(ctx).Where("id = ?", id).Delete(&model.OrderModel{}).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to delete order")
	}

	return nil
}

func (repo *orderRepository) withItems(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	})
}

// --- Mapper Functions ---

func toOrderDomains(orderMs []model.OrderModel) []*entity.Order {
	orders := make([]*entity.Order, 0, len(orderMs))
	for i := range orderMs {
		orders = append(orders, toOrderDomain(&orderMs[i]))
	}

	return orders
}

func toOrderDomain(data *model.OrderModel) *entity.Order {
	items := make([]entity.OrderItem, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, entity.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return &entity.Order{
		ID:        data.ID,
		UserID:    data.UserID,
		Total:     data.Total,
		Status:    data.Status,
		CreatedAt: data.CreatedAt,
		Items:     items,
	}
}

func fromOrderDomain(data *entity.Order) *model.OrderModel {
	itemMs := make([]model.OrderItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		itemMs = append(itemMs, model.OrderItemModel{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	return &model.OrderModel{
		ID:        data.ID,
		UserID:    data.UserID,
		Total:     data.Total,
		Status:    data.Status,
		CreatedAt: data.CreatedAt,
		Items:     itemMs,
	}
}
