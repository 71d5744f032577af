package service

import (
	"context"

	"cosmiccraft/internal/domain/entity"
)

// NotificationSender delivers a message to a recipient through a remote notification backend.
// Implementations must bound every call with a timeout and report non-2xx answers as errors.
type NotificationSender interface {
	Send(ctx context.Context, req entity.NotificationRequest) error
}

// MailSender delivers a plain-text e-mail.
type MailSender interface {
	SendMail(ctx context.Context, to, subject, body string) error
}
