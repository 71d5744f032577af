package handler

import (
	"log/slog"
	"net/http"

	"cosmiccraft/internal/delivery/response"
	"cosmiccraft/internal/domain/entity"
	"cosmiccraft/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// OrderHandlerParams holds dependencies for OrderHandler, injected by Fx.
type OrderHandlerParams struct {
	fx.In

	OrderUC usecase.OrderUsecase
	Logger  *slog.Logger
}

// OrderHandler serves checkout and order administration.
type OrderHandler struct {
	orderUC usecase.OrderUsecase
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler.
func NewOrderHandler(params OrderHandlerParams) *OrderHandler {
	return &OrderHandler{
		orderUC: params.OrderUC,
		logger:  params.Logger,
	}
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	orders := e.Group("/api/orders")
	orders.POST("/create", h.CreateOrder)
	orders.GET("/all", h.GetAllOrders)
	orders.GET("/user/:userId", h.GetOrdersByUser)
	orders.GET("/:id", h.GetOrder)
	orders.PUT("/:id/status", h.UpdateStatus)
	orders.DELETE("/:id", h.DeleteOrder)
}

// CreateOrderRequest carries the purchaser in the query string and the items in the body
type CreateOrderRequest struct {
	UserID    int64  `query:"userId" validate:"required,gt=0"`
	UserEmail string `query:"userEmail" validate:"omitempty,email"`
	Total     int    `query:"total" validate:"gte=0,lte=2147483647"`
}

// OrderItemRequest is one line of the JSON array body
type OrderItemRequest struct {
	ProductID int64 `json:"productId" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0,lte=2147483647"`
	Price     int   `json:"price" validate:"gte=0,lte=2147483647"`
}

type orderItemsRequest struct {
	Items []OrderItemRequest `validate:"required,dive"`
}

type orderIDRequest struct {
	ID int64 `param:"id" validate:"required,gt=0"`
}

// UpdateOrderStatusRequest accepts any non-empty status
type UpdateOrderStatusRequest struct {
	ID     int64  `param:"id" validate:"required,gt=0"`
	Status string `query:"status" validate:"required,max=64"`
}

type ordersByUserRequest struct {
	UserID int64 `param:"userId" validate:"required,gt=0"`
}

// CreateOrder persists the order; the purchaser notification never affects the response
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := bindParams(c, &req); err != nil {
		return err
	}

	var body orderItemsRequest
	if err := (&echo.DefaultBinder{}).BindBody(c, &body.Items); err != nil {
		return bindingError(err)
	}
	if err := c.Validate(&body); err != nil {
		return err
	}

	items := make([]entity.OrderItem, 0, len(body.Items))
	for _, item := range body.Items {
		items = append(items, entity.OrderItem{ProductID: item.ProductID, Quantity: item.Quantity, UnitPrice: item.Price})
	}

	order, err := h.orderUC.CreateOrder(c.Request().Context(), &usecase.CreateOrderInput{
		UserID:    req.UserID,
		UserEmail: req.UserEmail,
		Total:     req.Total,
		Items:     items,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, toOrderView(order))
}

func (h *OrderHandler) GetOrder(c echo.Context) error {
	var req orderIDRequest
	if err := bindParams(c, &req); err != nil {
		return err
	}

	order, err := h.orderUC.GetOrder(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toOrderView(order))
}

func (h *OrderHandler) GetOrdersByUser(c echo.Context) error {
	var req ordersByUserRequest
	if err := bindParams(c, &req); err != nil {
		return err
	}

	orders, err := h.orderUC.GetOrdersByUser(c.Request().Context(), req.UserID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toOrderViews(orders))
}

func (h *OrderHandler) GetAllOrders(c echo.Context) error {
	orders, err := h.orderUC.GetAllOrders(c.Request().Context())
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toOrderViews(orders))
}

func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req UpdateOrderStatusRequest
	if err := bindParams(c, &req); err != nil {
		return err
	}

	if err := h.orderUC.UpdateStatus(c.Request().Context(), req.ID, req.Status); err != nil {
		return err
	}

	return response.NoContent(c)
}

func (h *OrderHandler) DeleteOrder(c echo.Context) error {
	var req orderIDRequest
	if err := bindParams(c, &req); err != nil {
		return err
	}

	if err := h.orderUC.DeleteOrder(c.Request().Context(), req.ID); err != nil {
		return err
	}

	return response.NoContent(c)
}
