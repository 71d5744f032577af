// Package mail contains the outgoing e-mail transports of the notification service.
package mail

import (
	"context"
	"net"
	"slices"
	"strings"
	"time"

	"cosmiccraft/config"
	"cosmiccraft/internal/domain/service"

	"github.com/pkg/errors"
	gomail "github.com/wneessen/go-mail"
)

// smtpSender relays plain-text mail through an SMTP server, upgrading to TLS when offered.
type smtpSender struct {
	host    string
	from    string
	timeout time.Duration
	options []gomail.Option
	dialer  net.Dialer
}

// NewSMTPSender creates a MailSender for mail.host:mail.port.
func NewSMTPSender(cfg config.MailConfig) (service.MailSender, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, errors.New("mail.host and mail.port must be provided for the smtp provider")
	}

	options := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if cfg.Timeout > 0 {
		options = append(options, gomail.WithTimeout(cfg.Timeout))
	}
	if cfg.Username != "" {
		options = append(options,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(cfg.Username),
			gomail.WithPassword(cfg.Password),
		)
	}

	// Reject a bad port or timeout at startup rather than on the first order.
	if _, err := gomail.NewClient(cfg.Host, options...); err != nil {
		return nil, errors.Wrap(err, "invalid smtp configuration")
	}

	return &smtpSender{
		host:    cfg.Host,
		from:    cfg.From,
		timeout: cfg.Timeout,
		options: options,
	}, nil
}

// SendMail blocks until the relay accepts the message or ctx is done. The connection
// is closed as soon as ctx ends, so a relay that stops answering holds nothing open.
func (s *smtpSender) SendMail(ctx context.Context, to, subject, body string) error {
	msg, err := newMessage(s.from, to, subject, body)
	if err != nil {
		return err
	}

	var stop func() bool
	defer func() {
		if stop != nil {
			stop()
		}
	}()

	dial := func(dialCtx context.Context, network, address string) (net.Conn, error) {
		conn, err := s.dialer.DialContext(dialCtx, network, address)
		if err != nil {
			return nil, err
		}
		if s.timeout > 0 {
			_ = conn.SetDeadline(time.Now().Add(s.timeout))
		}
		stop = context.AfterFunc(ctx, func() { _ = conn.Close() })

		return conn, nil
	}

	client, err := gomail.NewClient(s.host, append(slices.Clip(s.options), gomail.WithDialContextFunc(dial))...)
	if err != nil {
		return errors.Wrap(err, "failed to create smtp client")
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		if ctx.Err() != nil {
			return errors.Wrap(ctx.Err(), "mail relay did not answer in time")
		}

		return errors.Wrapf(err, "failed to send mail via %s", s.host)
	}

	return nil
}

// newMessage builds a UTF-8 plain-text message. Header values are RFC 2047 encoded by go-mail.
func newMessage(from, to, subject, body string) (*gomail.Msg, error) {
	msg := gomail.NewMsg()
	if err := msg.From(from); err != nil {
		return nil, errors.Wrap(err, "invalid sender address")
	}
	if err := msg.To(to); err != nil {
		return nil, errors.Wrap(err, "invalid recipient address")
	}
	msg.Subject(sanitizeHeader(subject))
	msg.SetDate()
	msg.SetBodyString(gomail.TypeTextPlain, body)

	return msg, nil
}

// sanitizeHeader keeps a caller-supplied value on a single header line.
func sanitizeHeader(value string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(value)
}
