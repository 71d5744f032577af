package handler

import (
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"cosmiccraft/internal/delivery/response"
	"cosmiccraft/internal/domain/entity"
	domainerrors "cosmiccraft/internal/domain/errors"
	"cosmiccraft/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const uploadFormField = "files"

// ProductHandlerParams holds dependencies for ProductHandler, injected by Fx.
type ProductHandlerParams struct {
	fx.In

	ProductUC usecase.ProductUsecase
	Logger    *slog.Logger
}

// ProductHandler serves the product catalog.
type ProductHandler struct {
	productUC usecase.ProductUsecase
	logger    *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler.
func NewProductHandler(params ProductHandlerParams) *ProductHandler {
	return &ProductHandler{
		productUC: params.ProductUC,
		logger:    params.Logger,
	}
}

func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	products := e.Group("/api/products")
	products.GET("", h.ListProducts)
	products.POST("", h.CreateProduct)
	products.GET("/:id", h.GetProduct)
	products.PUT("/:id", h.UpdateProduct)
	products.DELETE("/:id", h.DeleteProduct)
	products.GET("/:id/qr", h.GetProductQR)
}

// CreateProductRequest represents the request body for a new product
type CreateProductRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Description string `json:"description"`
	Price       int    `json:"price" validate:"gte=0,lte=2147483647"`
	CategoryID  *int64 `json:"categoryId" validate:"omitempty,gt=0"`
}

type productIDRequest struct {
	ID int64 `param:"id" validate:"required,gt=0"`
}

// ListProducts filters by the optional query parameters title, categoryId and maxPrice
func (h *ProductHandler) ListProducts(c echo.Context) error {
	filter, err := parseProductFilter(c.QueryParams())
	if err != nil {
		return err
	}

	details, err := h.productUC.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	views := make([]*productView, 0, len(details))
	for _, d := range details {
		views = append(views, toProductView(d))
	}

	return response.Success(c, http.StatusOK, views)
}

func (h *ProductHandler) GetProduct(c echo.Context) error {
	var req productIDRequest
	if err := bindParams(c, &req); err != nil {
		return err
	}

	details, err := h.productUC.GetProduct(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toProductView(details))
}

func (h *ProductHandler) CreateProduct(c echo.Context) error {
	var req CreateProductRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	details, err := h.productUC.CreateProduct(c.Request().Context(), &usecase.CreateProductInput{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, toProductView(details))
}

// UpdateProduct accepts form fields title, description, price, categoryId and isOnSale
// plus any number of image files under "files".
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	var req productIDRequest
	if err := bindParams(c, &req); err != nil {
		return err
	}

	form, err := c.FormParams()
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed form body")
	}

	patch, err := parseProductPatch(form)
	if err != nil {
		return err
	}

	uploads, err := readUploads(c)
	if err != nil {
		return err
	}

	details, err := h.productUC.UpdateProduct(c.Request().Context(), req.ID, patch, uploads)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toProductView(details))
}

func (h *ProductHandler) DeleteProduct(c echo.Context) error {
	var req productIDRequest
	if err := bindParams(c, &req); err != nil {
		return err
	}

	if err := h.productUC.DeleteProduct(c.Request().Context(), req.ID); err != nil {
		return err
	}

	return response.NoContent(c)
}

// GetProductQR renders a PNG QR code linking to the product page
func (h *ProductHandler) GetProductQR(c echo.Context) error {
	var req productIDRequest
	if err := bindParams(c, &req); err != nil {
		return err
	}

	png, err := h.productUC.ProductQRCode(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

func parseProductFilter(query url.Values) (entity.ProductFilter, error) {
	filter := entity.ProductFilter{Title: strings.TrimSpace(query.Get("title"))}

	if raw := query.Get("categoryId"); raw != "" {
		categoryID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, domainerrors.ErrValidationFailed.WithDetails("categoryId must be an integer")
		}
		filter.CategoryID = &categoryID
	}
	if raw := query.Get("maxPrice"); raw != "" {
		maxPrice, err := strconv.Atoi(raw)
		if err != nil {
			return filter, domainerrors.ErrValidationFailed.WithDetails("maxPrice must be an integer")
		}
		filter.MaxPrice = &maxPrice
	}

	return filter, nil
}

func parseProductPatch(form url.Values) (entity.ProductPatch, error) {
	var patch entity.ProductPatch

	if form.Has("title") {
		title := form.Get("title")
		patch.Title = &title
	}
	if form.Has("description") {
		description := form.Get("description")
		patch.Description = &description
	}
	if form.Has("price") {
		parsed, err := strconv.ParseInt(form.Get("price"), 10, 32)
		if err != nil || parsed < 0 {
			return patch, domainerrors.ErrValidationFailed.WithDetails("price must be a non-negative 32-bit integer")
		}
		price := int(parsed)
		patch.Price = &price
	}
	if form.Has("categoryId") {
		categoryID, err := strconv.ParseInt(form.Get("categoryId"), 10, 64)
		if err != nil {
			return patch, domainerrors.ErrValidationFailed.WithDetails("categoryId must be an integer")
		}
		patch.CategoryID = &categoryID
	}
	if form.Has("isOnSale") {
		isOnSale, err := strconv.ParseBool(form.Get("isOnSale"))
		if err != nil {
			return patch, domainerrors.ErrValidationFailed.WithDetails("isOnSale must be a boolean")
		}
		patch.IsOnSale = &isOnSale
	}

	return patch, nil
}

func readUploads(c echo.Context) ([]usecase.ImageUpload, error) {
	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm) {
		return nil, nil
	}

	form, err := c.MultipartForm()
	if err != nil {
		return nil, domainerrors.ErrValidationFailed.WithDetails("malformed multipart body")
	}

	files := form.File[uploadFormField]
	uploads := make([]usecase.ImageUpload, 0, len(files))
	for _, fh := range files {
		data, err := readFile(fh)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, usecase.ImageUpload{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get(echo.HeaderContentType),
			Data:        data,
		})
	}

	return uploads, nil
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open upload %q", fh.Filename)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read upload %q", fh.Filename)
	}

	return data, nil
}
