package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"cosmiccraft/internal/domain/entity"
	domainerrors "cosmiccraft/internal/domain/errors"
	mockUC "cosmiccraft/internal/mocks/usecase"
	"cosmiccraft/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOrderTestEcho(t *testing.T) (*mockUC.MockOrderUsecase, *echo.Echo) {
	orderUC := mockUC.NewMockOrderUsecase(t)

	return orderUC, newTestEcho(NewOrderHandler(OrderHandlerParams{OrderUC: orderUC, Logger: newDiscardLogger()}))
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	orderUC, e := newOrderTestEcho(t)

	orderUC.EXPECT().
		CreateOrder(mock.Anything, &usecase.CreateOrderInput{
			UserID:    3,
			UserEmail: "buyer@example.com",
			Total:     450,
			Items: []entity.OrderItem{
				{ProductID: 1, Quantity: 2, UnitPrice: 150},
				{ProductID: 2, Quantity: 1, UnitPrice: 150},
			},
		}).
		Return(&entity.Order{
			ID:     42,
			UserID: 3,
			Total:  450,
			Status: entity.OrderStatusNew,
			Items:  []entity.OrderItem{{ProductID: 1, Quantity: 2, UnitPrice: 150}, {ProductID: 2, Quantity: 1, UnitPrice: 150}},
		}, nil)

	rec := serve(e, http.MethodPost, "/api/orders/create?userId=3&userEmail=buyer@example.com&total=450",
		echo.MIMEApplicationJSON,
		`[{"productId":1,"quantity":2,"price":150},{"productId":2,"quantity":1,"price":150}]`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var order orderView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &order))
	assert.Equal(t, int64(42), order.ID)
	assert.Equal(t, "NEW", order.Status)
	assert.Len(t, order.Items, 2)
}

func TestOrderHandler_CreateOrder_RejectsMalformedItems(t *testing.T) {
	_, e := newOrderTestEcho(t)

	for name, body := range map[string]string{
		"missing body":       ``,
		"zero quantity":      `[{"productId":1,"quantity":0,"price":150}]`,
		"not an array":       `{"productId":1}`,
		"missing productId":  `[{"quantity":1,"price":150}]`,
		"quantity above i32": `[{"productId":1,"quantity":2147483648,"price":150}]`,
		"price above i32":    `[{"productId":1,"quantity":1,"price":3000000000}]`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := serve(e, http.MethodPost, "/api/orders/create?userId=3&total=150", echo.MIMEApplicationJSON, body)

			assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestOrderHandler_CreateOrder_TotalAboveColumnRange(t *testing.T) {
	_, e := newOrderTestEcho(t)

	rec := serve(e, http.MethodPost, "/api/orders/create?userId=3&total=3000000000",
		echo.MIMEApplicationJSON, `[{"productId":1,"quantity":1,"price":150}]`)

	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Equal(t, "VALIDATION_FAILED", decodeEnvelope(t, rec).Error.Code)
}

func TestOrderHandler_CreateOrder_EmptyItemList(t *testing.T) {
	orderUC, e := newOrderTestEcho(t)

	orderUC.EXPECT().
		CreateOrder(mock.Anything, &usecase.CreateOrderInput{UserID: 3, Total: 0, Items: []entity.OrderItem{}}).
		Return(&entity.Order{ID: 43, UserID: 3, Status: entity.OrderStatusNew, Items: []entity.OrderItem{}}, nil)

	rec := serve(e, http.MethodPost, "/api/orders/create?userId=3&total=0", echo.MIMEApplicationJSON, `[]`)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var order orderView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &order))
	assert.Equal(t, int64(43), order.ID)
}

func TestOrderHandler_UpdateStatus_NotFound(t *testing.T) {
	orderUC, e := newOrderTestEcho(t)

	orderUC.EXPECT().UpdateStatus(mock.Anything, int64(404), "SHIPPED").Return(domainerrors.ErrOrderNotFound)

	rec := serve(e, http.MethodPut, "/api/orders/404/status?status=SHIPPED", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "ORDER_NOT_FOUND", decodeEnvelope(t, rec).Error.Code)
}

func TestOrderHandler_Listings(t *testing.T) {
	orderUC, e := newOrderTestEcho(t)

	orderUC.EXPECT().GetAllOrders(mock.Anything).Return([]*entity.Order{{ID: 1}, {ID: 2}}, nil)
	orderUC.EXPECT().GetOrdersByUser(mock.Anything, int64(3)).Return([]*entity.Order{}, nil)
	orderUC.EXPECT().DeleteOrder(mock.Anything, int64(9)).Return(nil)

	rec := serve(e, http.MethodGet, "/api/orders/all", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all []orderView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &all))
	assert.Len(t, all, 2)

	rec = serve(e, http.MethodGet, "/api/orders/user/3", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, string(decodeEnvelope(t, rec).Data))

	assert.Equal(t, http.StatusNoContent, serve(e, http.MethodDelete, "/api/orders/9", "", "").Code)
}
