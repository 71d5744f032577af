package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
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

func newProductTestEcho(t *testing.T) (*mockUC.MockProductUsecase, *echo.Echo) {
	productUC := mockUC.NewMockProductUsecase(t)

	return productUC, newTestEcho(NewProductHandler(ProductHandlerParams{ProductUC: productUC, Logger: newDiscardLogger()}))
}

func TestParseProductFilter(t *testing.T) {
	categoryID, maxPrice := int64(4), 1500

	filter, err := parseProductFilter(map[string][]string{
		"title":      {"  lamp "},
		"categoryId": {"4"},
		"maxPrice":   {"1500"},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductFilter{Title: "lamp", CategoryID: &categoryID, MaxPrice: &maxPrice}, filter)

	filter, err = parseProductFilter(nil)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductFilter{}, filter)

	_, err = parseProductFilter(map[string][]string{"maxPrice": {"cheap"}})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestParseProductPatch(t *testing.T) {
	patch, err := parseProductPatch(map[string][]string{
		"title":    {"Desk"},
		"isOnSale": {"true"},
	})
	require.NoError(t, err)
	require.NotNil(t, patch.Title)
	assert.Equal(t, "Desk", *patch.Title)
	require.NotNil(t, patch.IsOnSale)
	assert.True(t, *patch.IsOnSale)
	assert.Nil(t, patch.Price)
	assert.Nil(t, patch.CategoryID)

	_, err = parseProductPatch(map[string][]string{"price": {"-1"}})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = parseProductPatch(map[string][]string{"price": {"3000000000"}})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	patch, err = parseProductPatch(map[string][]string{"price": {"2147483647"}})
	require.NoError(t, err)
	assert.Equal(t, 2147483647, *patch.Price)
}

func TestProductHandler_ListProducts(t *testing.T) {
	productUC, e := newProductTestEcho(t)
	maxPrice := 100

	productUC.EXPECT().ListProducts(mock.Anything, entity.ProductFilter{MaxPrice: &maxPrice}).
		Return([]*usecase.ProductDetails{{
			Product: &entity.Product{ID: 1, Title: "Mug", Price: 90},
			Images:  []usecase.ImageContent{{ContentType: "image/png", Data: []byte("png")}},
		}}, nil)

	rec := serve(e, http.MethodGet, "/api/products?maxPrice=100", "", "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var products []productView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &products))
	require.Len(t, products, 1)
	assert.Equal(t, "Mug", products[0].Title)
	assert.Nil(t, products[0].Category)
	assert.Equal(t, []string{"cG5n"}, products[0].ImagesBase64)
}

func TestProductHandler_UpdateProduct_Multipart(t *testing.T) {
	productUC, e := newProductTestEcho(t)

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("price", "250"))
	part, err := w.CreateFormFile("files", "photo.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("image-bytes"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	price := 250
	productUC.EXPECT().
		UpdateProduct(mock.Anything, int64(8), entity.ProductPatch{Price: &price}, mock.Anything).
		RunAndReturn(func(_ context.Context, id int64, _ entity.ProductPatch, uploads []usecase.ImageUpload) (*usecase.ProductDetails, error) {
			require.Len(t, uploads, 1)
			assert.Equal(t, "photo.png", uploads[0].FileName)
			assert.Equal(t, []byte("image-bytes"), uploads[0].Data)

			return &usecase.ProductDetails{Product: &entity.Product{ID: id, Price: price}}, nil
		})

	req := httptest.NewRequest(http.MethodPut, "/api/products/8", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := serveRequest(e, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var product productView
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &product))
	assert.Equal(t, 250, product.Price)
}

func TestProductHandler_GetProductQR(t *testing.T) {
	productUC, e := newProductTestEcho(t)

	productUC.EXPECT().ProductQRCode(mock.Anything, int64(3)).Return([]byte("\x89PNG"), nil)
	productUC.EXPECT().ProductQRCode(mock.Anything, int64(4)).Return(nil, domainerrors.ErrProductNotFound)

	rec := serve(e, http.MethodGet, "/api/products/3/qr", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "\x89PNG", rec.Body.String())

	rec = serve(e, http.MethodGet, "/api/products/4/qr", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandler_CreateProduct_Validation(t *testing.T) {
	_, e := newProductTestEcho(t)

	rec := serve(e, http.MethodPost, "/api/products", echo.MIMEApplicationJSON, `{"price":10}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Error.Details, "Title")
}
