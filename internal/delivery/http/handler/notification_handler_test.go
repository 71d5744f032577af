package handler

import (
	"net/http"
	"testing"

	"cosmiccraft/internal/domain/entity"
	mockUC "cosmiccraft/internal/mocks/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestNotificationHandler_SendOrderNotification(t *testing.T) {
	t.Run("sends", func(t *testing.T) {
		notificationUC := mockUC.NewMockNotificationUsecase(t)
		e := newTestEcho(NewNotificationHandler(notificationUC))

		notificationUC.EXPECT().SendOrderNotification(mock.Anything, entity.NotificationRequest{
			Recipient: "buyer@example.com",
			Subject:   "Hello",
			Body:      "Order 1",
		}).Return(nil)

		rec := serve(e, http.MethodPost, "/api/notifications/order?email=buyer@example.com&subject=Hello&text=Order+1", "", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"sent"}`, string(decodeEnvelope(t, rec).Data))
	})

	t.Run("rejects bad address", func(t *testing.T) {
		notificationUC := mockUC.NewMockNotificationUsecase(t)
		e := newTestEcho(NewNotificationHandler(notificationUC))

		rec := serve(e, http.MethodPost, "/api/notifications/order?email=nobody&subject=Hello&text=x", "", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "VALIDATION_FAILED", decodeEnvelope(t, rec).Error.Code)
	})
}
