package handler

import (
	"net/http"

	"cosmiccraft/internal/delivery/response"
	"cosmiccraft/internal/usecase"

	"github.com/labstack/echo/v4"
)

// CategoryHandler serves catalog categories.
type CategoryHandler struct {
	categoryUC usecase.CategoryUsecase
}

// NewCategoryHandler is the constructor for CategoryHandler.
func NewCategoryHandler(categoryUC usecase.CategoryUsecase) *CategoryHandler {
	return &CategoryHandler{categoryUC: categoryUC}
}

func (h *CategoryHandler) RegisterRoutes(e *echo.Echo) {
	categories := e.Group("/api/categories")
	categories.GET("", h.ListCategories)
	categories.POST("", h.CreateCategory)
	categories.DELETE("/:id", h.DeleteCategory)
}

// CreateCategoryRequest represents the request body for a new category
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Description string `json:"description"`
}

type categoryIDRequest struct {
	ID int64 `param:"id" validate:"required,gt=0"`
}

func (h *CategoryHandler) ListCategories(c echo.Context) error {
	categories, err := h.categoryUC.ListCategories(c.Request().Context())
	if err != nil {
		return err
	}

	views := make([]*categoryView, 0, len(categories))
	for _, category := range categories {
		views = append(views, toCategoryView(category))
	}

	return response.Success(c, http.StatusOK, views)
}

func (h *CategoryHandler) CreateCategory(c echo.Context) error {
	var req CreateCategoryRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	category, err := h.categoryUC.CreateCategory(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, toCategoryView(category))
}

func (h *CategoryHandler) DeleteCategory(c echo.Context) error {
	var req categoryIDRequest
	if err := bindParams(c, &req); err != nil {
		return err
	}

	if err := h.categoryUC.DeleteCategory(c.Request().Context(), req.ID); err != nil {
		return err
	}

	return response.NoContent(c)
}
