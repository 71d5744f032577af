package mail

import (
	"log/slog"
	"strings"

	"cosmiccraft/config"
	"cosmiccraft/internal/domain/service"

	"github.com/pkg/errors"
)

// New creates the MailSender selected by mail.provider.
func New(cfg *config.Config, logger *slog.Logger) (service.MailSender, error) {
	switch strings.ToLower(cfg.Mail.Provider) {
	case "", "log":
		return NewLogSender(cfg.Mail.From, logger), nil
	case "smtp":
		return NewSMTPSender(cfg.Mail)
	default:
		return nil, errors.Errorf("unknown mail provider: %s", cfg.Mail.Provider)
	}
}
