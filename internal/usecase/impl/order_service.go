package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	deliverycontext "cosmiccraft/internal/delivery/context"
	"cosmiccraft/internal/domain/entity"
	domainerrors "cosmiccraft/internal/domain/errors"
	"cosmiccraft/internal/domain/repository"
	"cosmiccraft/internal/domain/service"
	"cosmiccraft/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const orderCreatedSubject = "Your order successfully created"

type orderService struct {
	txManager repository.TransactionManager
	orderRepo repository.OrderRepository
	notifier  service.NotificationSender
	logger    *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	OrderRepo repository.OrderRepository
	Notifier  service.NotificationSender
	Logger    *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager: params.TxManager,
		orderRepo: params.OrderRepo,
		notifier:  params.Notifier,
		logger:    params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateOrder commits the order first. The notification runs after the commit and its
// outcome never reaches the caller.
func (srv *orderService) CreateOrder(ctx context.Context, input *usecase.CreateOrderInput) (*entity.Order, error) {
	order := &entity.Order{
		UserID: input.UserID,
		Total:  input.Total,
		Status: entity.OrderStatusNew,
		Items:  append([]entity.OrderItem(nil), input.Items...),
	}

	if itemsTotal := order.ItemsTotal(); itemsTotal != order.Total {
		srv.log(ctx).Warn("Order total differs from item sum",
			slog.Int64("userID", order.UserID), slog.Int("total", order.Total), slog.Int("itemsTotal", itemsTotal))
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		return repoFactory.NewOrderRepository().Create(ctx, order)
	})
	if err != nil {
		srv.log(ctx).Error("Failed to persist order", slog.Int64("userID", order.UserID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create order")
	}

	srv.log(ctx).Info("Order created", slog.Int64("orderID", order.ID), slog.Int64("userID", order.UserID))

	srv.notifyCreated(ctx, order, input.UserEmail)

	return order, nil
}

// notifyCreated is best effort: failures are logged and dropped.
func (srv *orderService) notifyCreated(ctx context.Context, order *entity.Order, email string) {
	email = strings.TrimSpace(email)
	if email == "" {
		srv.log(ctx).Warn("Order has no contact address, skipping notification", slog.Int64("orderID", order.ID))

		return
	}

	req := entity.NotificationRequest{
		Recipient: email,
		Subject:   orderCreatedSubject,
		Body:      "Your order #" + strconv.FormatInt(order.ID, 10) + " successfully created!",
	}

	// The order is already durable; a client disconnect must not cancel the notification.
	if err := srv.notifier.Send(context.WithoutCancel(ctx), req); err != nil {
		srv.log(ctx).Warn("Failed to send order notification",
			slog.Int64("orderID", order.ID), slog.String("recipient", email), slog.Any("error", err))

		return
	}

	srv.log(ctx).Debug("Order notification sent", slog.Int64("orderID", order.ID))
}

func (srv *orderService) GetOrder(ctx context.Context, id int64) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.Wrapf(domainerrors.ErrOrderNotFound, "order %d", id)
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

func (srv *orderService) GetOrdersByUser(ctx context.Context, userID int64) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders of user")
	}

	return orders, nil
}

func (srv *orderService) GetAllOrders(ctx context.Context) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.FindAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// UpdateStatus looks the order up before writing so a missing order fails without a write.
func (srv *orderService) UpdateStatus(ctx context.Context, id int64, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return domainerrors.ErrValidationFailed.WithDetails("status must not be empty")
	}

	if _, err := srv.GetOrder(ctx, id); err != nil {
		return err
	}

	if err := srv.orderRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return errors.Wrapf(domainerrors.ErrOrderNotFound, "order %d", id)
		}

		return errors.Wrap(err, "failed to update order status")
	}

	srv.log(ctx).Info("Order status updated", slog.Int64("orderID", id), slog.String("status", status))

	return nil
}

func (srv *orderService) DeleteOrder(ctx context.Context, id int64) error {
	if err := srv.orderRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete order")
	}

	return nil
}
