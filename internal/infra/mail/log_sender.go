package mail

import (
	"context"
	"log/slog"

	"cosmiccraft/internal/domain/service"
)

// logSender only logs outgoing mail. It backs local development and the default config.
type logSender struct {
	from   string
	logger *slog.Logger
}

// NewLogSender creates a MailSender that never fails.
func NewLogSender(from string, logger *slog.Logger) service.MailSender {
	return &logSender{from: from, logger: logger}
}

func (s *logSender) SendMail(ctx context.Context, to, subject, body string) error {
	s.logger.InfoContext(ctx, "Mail sent",
		slog.String("from", s.from),
		slog.String("to", to),
		slog.String("subject", subject),
		slog.Int("body_length", len(body)),
	)

	return nil
}
