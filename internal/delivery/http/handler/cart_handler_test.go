package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"cosmiccraft/internal/domain/entity"
	domainerrors "cosmiccraft/internal/domain/errors"
	mockUC "cosmiccraft/internal/mocks/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCartHandler_GetCart(t *testing.T) {
	cartUC := mockUC.NewMockCartUsecase(t)
	e := newTestEcho(NewCartHandler(CartHandlerParams{CartUC: cartUC, Logger: newDiscardLogger()}))

	cartUC.EXPECT().GetCart(mock.Anything, int64(7)).Return(&entity.Cart{ID: 1, UserID: 7}, nil)

	rec := serve(e, http.MethodGet, "/api/cart/7", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var cart cartView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &cart))
	assert.Equal(t, int64(7), cart.UserID)
	assert.NotNil(t, cart.Items)
}

func TestCartHandler_AddItem_WithoutCart(t *testing.T) {
	cartUC := mockUC.NewMockCartUsecase(t)
	e := newTestEcho(NewCartHandler(CartHandlerParams{CartUC: cartUC, Logger: newDiscardLogger()}))

	cartUC.EXPECT().AddItem(mock.Anything, int64(7), int64(10), 3).
		Return(nil, errors.Wrap(domainerrors.ErrCartNotFound, "user 7"))

	rec := serve(e, http.MethodPost, "/api/cart/7/items?productId=10&quantity=3", "", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CART_NOT_FOUND", env.Error.Code)
	assert.NotEmpty(t, env.Meta.RequestID)
}

func TestCartHandler_AddItem_InvalidQuantity(t *testing.T) {
	cartUC := mockUC.NewMockCartUsecase(t)
	e := newTestEcho(NewCartHandler(CartHandlerParams{CartUC: cartUC, Logger: newDiscardLogger()}))

	for _, quantity := range []string{"0", "2147483648"} {
		rec := serve(e, http.MethodPost, "/api/cart/7/items?productId=10&quantity="+quantity, "", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code, quantity)
		assert.Equal(t, "VALIDATION_FAILED", decodeEnvelope(t, rec).Error.Code, quantity)
	}
}

func TestCartHandler_UpdateAndRemoveItem(t *testing.T) {
	cartUC := mockUC.NewMockCartUsecase(t)
	e := newTestEcho(NewCartHandler(CartHandlerParams{CartUC: cartUC, Logger: newDiscardLogger()}))

	cartUC.EXPECT().UpdateItem(mock.Anything, int64(7), int64(10), 5).
		Return(&entity.Cart{ID: 1, UserID: 7, Items: []entity.CartItem{{ProductID: 10, Quantity: 5}}}, nil)
	cartUC.EXPECT().RemoveItem(mock.Anything, int64(7), int64(99)).
		Return(&entity.Cart{ID: 1, UserID: 7, Items: []entity.CartItem{{ProductID: 10, Quantity: 5}}}, nil)
	cartUC.EXPECT().ClearCart(mock.Anything, int64(7)).Return(&entity.Cart{ID: 1, UserID: 7}, nil)

	assert.Equal(t, http.StatusOK, serve(e, http.MethodPut, "/api/cart/7/items/10?quantity=5", "", "").Code)
	assert.Equal(t, http.StatusOK, serve(e, http.MethodDelete, "/api/cart/7/items/99", "", "").Code)
	assert.Equal(t, http.StatusOK, serve(e, http.MethodDelete, "/api/cart/7/clear", "", "").Code)
}
