package handler

import (
	"net/http"

	"cosmiccraft/internal/delivery/response"
	"cosmiccraft/internal/usecase"

	"github.com/labstack/echo/v4"
)

// WishlistHandler serves the per-user wishlist.
type WishlistHandler struct {
	wishlistUC usecase.WishlistUsecase
}

// NewWishlistHandler is the constructor for WishlistHandler.
func NewWishlistHandler(wishlistUC usecase.WishlistUsecase) *WishlistHandler {
	return &WishlistHandler{wishlistUC: wishlistUC}
}

func (h *WishlistHandler) RegisterRoutes(e *echo.Echo) {
	wishlists := e.Group("/api/wishlist/:userId")
	wishlists.GET("", h.GetWishlist)
	wishlists.POST("/products", h.AddProduct)
	wishlists.DELETE("/products/:productId", h.RemoveProduct)
}

type wishlistOwnerRequest struct {
	UserID int64 `param:"userId" validate:"required,gt=0"`
}

// AddWishlistProductRequest carries productId as a query parameter
type AddWishlistProductRequest struct {
	UserID    int64 `param:"userId" validate:"required,gt=0"`
	ProductID int64 `query:"productId" validate:"required,gt=0"`
}

type wishlistProductRequest struct {
	UserID    int64 `param:"userId" validate:"required,gt=0"`
	ProductID int64 `param:"productId" validate:"required,gt=0"`
}

func (h *WishlistHandler) GetWishlist(c echo.Context) error {
	var req wishlistOwnerRequest
	if err := bindParams(c, &req); err != nil {
		return err
	}

	wishlist, err := h.wishlistUC.GetWishlist(c.Request().Context(), req.UserID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toWishlistView(wishlist))
}

func (h *WishlistHandler) AddProduct(c echo.Context) error {
	var req AddWishlistProductRequest
	if err := bindParams(c, &req); err != nil {
		return err
	}

	wishlist, err := h.wishlistUC.AddProduct(c.Request().Context(), req.UserID, req.ProductID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toWishlistView(wishlist))
}

func (h *WishlistHandler) RemoveProduct(c echo.Context) error {
	var req wishlistProductRequest
	if err := bindParams(c, &req); err != nil {
		return err
	}

	wishlist, err := h.wishlistUC.RemoveProduct(c.Request().Context(), req.UserID, req.ProductID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toWishlistView(wishlist))
}
