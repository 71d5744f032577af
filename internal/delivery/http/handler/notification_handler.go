package handler

import (
	"net/http"

	"cosmiccraft/internal/delivery/response"
	"cosmiccraft/internal/domain/entity"
	"cosmiccraft/internal/usecase"

	"github.com/labstack/echo/v4"
)

// NotificationHandler is the inbound side of the notification backend.
type NotificationHandler struct {
	notificationUC usecase.NotificationUsecase
}

// NewNotificationHandler is the constructor for NotificationHandler.
func NewNotificationHandler(notificationUC usecase.NotificationUsecase) *NotificationHandler {
	return &NotificationHandler{notificationUC: notificationUC}
}

func (h *NotificationHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/notifications/order", h.SendOrderNotification)
}

// OrderNotificationRequest mirrors the query string the order service sends
type OrderNotificationRequest struct {
	Email   string `query:"email" validate:"required,email"`
	Subject string `query:"subject" validate:"required,max=255"`
	Text    string `query:"text" validate:"required"`
}

func (h *NotificationHandler) SendOrderNotification(c echo.Context) error {
	var req OrderNotificationRequest
	if err := bindParams(c, &req); err != nil {
		return err
	}

	err := h.notificationUC.SendOrderNotification(c.Request().Context(), entity.NotificationRequest{
		Recipient: req.Email,
		Subject:   req.Subject,
		Body:      req.Text,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, map[string]string{"status": "sent"})
}
