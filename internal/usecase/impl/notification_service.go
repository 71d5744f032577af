package impl

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"

	deliverycontext "cosmiccraft/internal/delivery/context"
	"cosmiccraft/internal/domain/entity"
	domainerrors "cosmiccraft/internal/domain/errors"
	"cosmiccraft/internal/domain/service"
	"cosmiccraft/internal/usecase"

	"github.com/pkg/errors"
)

type notificationService struct {
	mailSender service.MailSender
	logger     *slog.Logger
}

// NewNotificationService creates the mail-backed notification service.
func NewNotificationService(mailSender service.MailSender, logger *slog.Logger) usecase.NotificationUsecase {
	return &notificationService{
		mailSender: mailSender,
		logger:     logger,
	}
}

func (srv *notificationService) SendOrderNotification(ctx context.Context, req entity.NotificationRequest) error {
	recipient := strings.TrimSpace(req.Recipient)
	addr, err := mail.ParseAddress(recipient)
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("invalid recipient address")
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
	if err := srv.mailSender.SendMail(ctx, addr.Address, req.Subject, req.Body); err != nil {
		logger.Error("Failed to deliver notification", slog.String("recipient", addr.Address), slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrNotificationDeliveryFailed, err.Error())
	}

	logger.Info("Notification delivered", slog.String("recipient", addr.Address))

	return nil
}
