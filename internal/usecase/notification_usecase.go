package usecase

import (
	"context"

	"cosmiccraft/internal/domain/entity"
)

// NotificationUsecase delivers purchaser notifications.
type NotificationUsecase interface {
	// SendOrderNotification mails req to its recipient and fails with
	// ErrNotificationDeliveryFailed when the mail transport rejects it.
	SendOrderNotification(ctx context.Context, req entity.NotificationRequest) error
}
