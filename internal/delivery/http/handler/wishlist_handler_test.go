package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"cosmiccraft/internal/domain/entity"
	domainerrors "cosmiccraft/internal/domain/errors"
	mockUC "cosmiccraft/internal/mocks/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWishlistHandler(t *testing.T) {
	wishlistUC := mockUC.NewMockWishlistUsecase(t)
	e := newTestEcho(NewWishlistHandler(wishlistUC))

	wishlistUC.EXPECT().AddProduct(mock.Anything, int64(2), int64(11)).
		Return(&entity.Wishlist{ID: 1, UserID: 2, ProductIDs: []int64{11}}, nil)
	wishlistUC.EXPECT().GetWishlist(mock.Anything, int64(2)).
		Return(&entity.Wishlist{ID: 1, UserID: 2}, nil)
	wishlistUC.EXPECT().RemoveProduct(mock.Anything, int64(3), int64(11)).
		Return(nil, domainerrors.ErrWishlistNotFound)

	rec := serve(e, http.MethodPost, "/api/wishlist/2/products?productId=11", "", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var added wishlistView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &added))
	assert.Equal(t, []int64{11}, added.ProductIDs)

	rec = serve(e, http.MethodGet, "/api/wishlist/2", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":1,"userId":2,"productIds":[]}`, string(decodeEnvelope(t, rec).Data))

	rec = serve(e, http.MethodDelete, "/api/wishlist/3/products/11", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(e, http.MethodPost, "/api/wishlist/2/products", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
