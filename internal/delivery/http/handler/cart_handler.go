package handler

import (
	"log/slog"
	"net/http"

	"cosmiccraft/internal/delivery/response"
	"cosmiccraft/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC usecase.CartUsecase
	Logger *slog.Logger
}

// CartHandler serves the per-user cart.
type CartHandler struct {
	cartUC usecase.CartUsecase
	logger *slog.Logger
}

// NewCartHandler is the constructor for CartHandler.
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cartUC: params.CartUC,
		logger: params.Logger,
	}
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo) {
	carts := e.Group("/api/cart/:userId")
	carts.GET("", h.GetCart)
	carts.POST("/items", h.AddItem)
	carts.PUT("/items/:productId", h.UpdateItem)
	carts.DELETE("/items/:productId", h.RemoveItem)
	carts.DELETE("/clear", h.ClearCart)
}

type cartOwnerRequest struct {
	UserID int64 `param:"userId" validate:"required,gt=0"`
}

// AddCartItemRequest carries productId and quantity as query parameters
type AddCartItemRequest struct {
	UserID    int64 `param:"userId" validate:"required,gt=0"`
	ProductID int64 `query:"productId" validate:"required,gt=0"`
	Quantity  int   `query:"quantity" validate:"required,gt=0,lte=2147483647"`
}

// UpdateCartItemRequest carries the new quantity as a query parameter
type UpdateCartItemRequest struct {
	UserID    int64 `param:"userId" validate:"required,gt=0"`
	ProductID int64 `param:"productId" validate:"required,gt=0"`
	Quantity  int   `query:"quantity" validate:"required,gt=0,lte=2147483647"`
}

type cartItemRequest struct {
	UserID    int64 `param:"userId" validate:"required,gt=0"`
	ProductID int64 `param:"productId" validate:"required,gt=0"`
}

// GetCart returns the cart of the user, creating an empty one on first access
func (h *CartHandler) GetCart(c echo.Context) error {
	var req cartOwnerRequest
	if err := bindParams(c, &req); err != nil {
		return err
	}

	cart, err := h.cartUC.GetCart(c.Request().Context(), req.UserID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toCartView(cart))
}

func (h *CartHandler) AddItem(c echo.Context) error {
	var req AddCartItemRequest
	if err := bindParams(c, &req); err != nil {
		return err
	}

	cart, err := h.cartUC.AddItem(c.Request().Context(), req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toCartView(cart))
}

func (h *CartHandler) UpdateItem(c echo.Context) error {
	var req UpdateCartItemRequest
	if err := bindParams(c, &req); err != nil {
		return err
	}

	cart, err := h.cartUC.UpdateItem(c.Request().Context(), req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toCartView(cart))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	var req cartItemRequest
	if err := bindParams(c, &req); err != nil {
		return err
	}

	cart, err := h.cartUC.RemoveItem(c.Request().Context(), req.UserID, req.ProductID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toCartView(cart))
}

func (h *CartHandler) ClearCart(c echo.Context) error {
	var req cartOwnerRequest
	if err := bindParams(c, &req); err != nil {
		return err
	}

	cart, err := h.cartUC.ClearCart(c.Request().Context(), req.UserID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toCartView(cart))
}
