package impl

import (
	"context"
	"testing"

	"cosmiccraft/internal/domain/entity"
	domainerrors "cosmiccraft/internal/domain/errors"
	"cosmiccraft/internal/domain/repository"
	mockRepo "cosmiccraft/internal/mocks/repository"
	mockSvc "cosmiccraft/internal/mocks/service"
	"cosmiccraft/internal/usecase"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type orderServiceFixtures struct {
	service   usecase.OrderUsecase
	txManager *mockRepo.MockTransactionManager
	factory   *mockRepo.MockRepositoryFactory
	orderRepo *mockRepo.MockOrderRepository
	notifier  *mockSvc.MockNotificationSender
}

func createTestOrderService(t *testing.T) orderServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	factory := mockRepo.NewMockRepositoryFactory(t)
	orderRepo := mockRepo.NewMockOrderRepository(t)
	notifier := mockSvc.NewMockNotificationSender(t)

	service := NewOrderService(OrderServiceParams{
		TxManager: txManager,
		OrderRepo: orderRepo,
		Notifier:  notifier,
		Logger:    newDiscardLogger(),
	})

	return orderServiceFixtures{
		service:   service,
		txManager: txManager,
		factory:   factory,
		orderRepo: orderRepo,
		notifier:  notifier,
	}
}

func (fx orderServiceFixtures) expectPersist(orderID int64) {
	runInTx(fx.txManager, fx.factory)
	fx.factory.EXPECT().NewOrderRepository().Return(fx.orderRepo)
	fx.orderRepo.EXPECT().
		Create(mock.Anything, mock.AnythingOfType("*entity.Order")).
		RunAndReturn(func(_ context.Context, order *entity.Order) error {
			order.ID = orderID

			return nil
		})
}

func newOrderInput() *usecase.CreateOrderInput {
	return &usecase.CreateOrderInput{
		UserID:    int64(gofakeit.Number(1, 1000)),
		UserEmail: gofakeit.Email(),
		Total:     2*150 + 1*999,
		Items: []entity.OrderItem{
			{ProductID: 1, Quantity: 2, UnitPrice: 150},
			{ProductID: 2, Quantity: 1, UnitPrice: 999},
		},
	}
}

func TestOrderService_CreateOrder_Success(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	input := newOrderInput()

	fx.expectPersist(42)
	fx.notifier.EXPECT().
		Send(mock.Anything, entity.NotificationRequest{
			Recipient: input.UserEmail,
			Subject:   "Your order successfully created",
			Body:      "Your order #42 successfully created!",
		}).
		Return(nil)

	order, err := fx.service.CreateOrder(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, entity.OrderStatusNew, order.Status)
	assert.Equal(t, input.Total, order.Total)
	assert.Equal(t, input.Items, order.Items)
}

func TestOrderService_CreateOrder_NotifierAlwaysFailing(t *testing.T) {
	failures := []error{
		errors.New("connection refused"),
		context.DeadlineExceeded,
		errors.New("notification backend returned 500"),
	}

	for _, failure := range failures {
		t.Run(failure.Error(), func(t *testing.T) {
			fx := createTestOrderService(t)
			ctx := context.Background()

			fx.expectPersist(43)
			fx.notifier.EXPECT().Send(mock.Anything, mock.Anything).Return(failure)

			order, err := fx.service.CreateOrder(ctx, newOrderInput())

			require.NoError(t, err)
			require.NotNil(t, order)
			assert.Equal(t, int64(43), order.ID)
		})
	}
}

func TestOrderService_CreateOrder_NotificationOutlivesCancelledRequest(t *testing.T) {
	fx := createTestOrderService(t)
	ctx, cancel := context.WithCancel(context.Background())

	fx.expectPersist(44)
	fx.notifier.EXPECT().
		Send(mock.Anything, mock.Anything).
		RunAndReturn(func(ctx context.Context, _ entity.NotificationRequest) error {
			cancel()

			return ctx.Err()
		})

	order, err := fx.service.CreateOrder(ctx, newOrderInput())

	require.NoError(t, err)
	assert.Equal(t, int64(44), order.ID)
}

func TestOrderService_CreateOrder_PersistFailureSkipsNotification(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	fx.txManager.EXPECT().Execute(ctx, mock.Anything).Return(domainerrors.ErrTransactionFailed)

	order, err := fx.service.CreateOrder(ctx, newOrderInput())

	require.Error(t, err)
	assert.Nil(t, order)
	fx.notifier.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestOrderService_CreateOrder_NoEmailSkipsNotification(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()
	input := newOrderInput()
	input.UserEmail = "  "

	fx.expectPersist(45)

	order, err := fx.service.CreateOrder(ctx, input)

	require.NoError(t, err)
	assert.Equal(t, int64(45), order.ID)
}

func TestOrderService_UpdateStatus(t *testing.T) {
	t.Run("missing order performs no write", func(t *testing.T) {
		fx := createTestOrderService(t)
		ctx := context.Background()

		fx.orderRepo.EXPECT().FindByID(ctx, int64(404)).Return(nil, repository.ErrOrderNotFound)

		err := fx.service.UpdateStatus(ctx, 404, "SHIPPED")

		assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
		fx.orderRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("any status string is accepted", func(t *testing.T) {
		fx := createTestOrderService(t)
		ctx := context.Background()

		fx.orderRepo.EXPECT().FindByID(ctx, int64(1)).Return(&entity.Order{ID: 1, Status: "SHIPPED"}, nil)
		fx.orderRepo.EXPECT().UpdateStatus(ctx, int64(1), "whatever-comes-next").Return(nil)

		require.NoError(t, fx.service.UpdateStatus(ctx, 1, "whatever-comes-next"))
	})

	t.Run("empty status", func(t *testing.T) {
		fx := createTestOrderService(t)

		err := fx.service.UpdateStatus(context.Background(), 1, "")

		assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	})
}

func TestOrderService_GetOrder_NotFound(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	fx.orderRepo.EXPECT().FindByID(ctx, int64(9)).Return(nil, repository.ErrOrderNotFound)

	_, err := fx.service.GetOrder(ctx, 9)

	assert.ErrorIs(t, err, domainerrors.ErrOrderNotFound)
}

func TestOrderService_DeleteOrder_AbsentIsNoop(t *testing.T) {
	fx := createTestOrderService(t)
	ctx := context.Background()

	fx.orderRepo.EXPECT().Delete(ctx, int64(9)).Return(nil)

	assert.NoError(t, fx.service.DeleteOrder(ctx, 9))
}
