// Package notification contains the client of the notification backend.
package notification

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cosmiccraft/config"
	deliverycontext "cosmiccraft/internal/delivery/context"
	"cosmiccraft/internal/domain/entity"
	"cosmiccraft/internal/domain/service"

	"github.com/pkg/errors"
)

const orderNotificationPath = "/api/notifications/order"

// httpSender implements NotificationSender by calling the notification backend over HTTP.
type httpSender struct {
	endpoint   string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPSender creates a sender posting to notifier.baseUrl.
func NewHTTPSender(cfg *config.Config, logger *slog.Logger) (service.NotificationSender, error) {
	base := strings.TrimRight(cfg.Notifier.BaseURL, "/")
	if base == "" {
		return nil, errors.New("notifier.baseUrl must be provided")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, errors.Wrap(err, "invalid notifier.baseUrl")
	}

	return &httpSender{
		endpoint: base + orderNotificationPath,
		timeout:  cfg.Notifier.Timeout,
		httpClient: &http.Client{
			Timeout: cfg.Notifier.Timeout,
		},
		logger: logger,
	}, nil
}

// Send delivers req as query parameters, the wire shape the notification backend accepts.
func (s *httpSender) Send(ctx context.Context, req entity.NotificationRequest) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	query := url.Values{}
	query.Set("email", req.Recipient)
	query.Set("subject", req.Subject)
	query.Set("text", req.Body)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"?"+query.Encode(), http.NoBody)
	if err != nil {
		return errors.WithStack(err)
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		httpReq.Header.Set(deliverycontext.HeaderXRequestID, requestID)
	}

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return errors.Wrap(err, "notification backend unreachable")
	}
	defer resp.Body.Close()

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("notification backend returned non-success status: %d", resp.StatusCode)
	}

	s.logger.DebugContext(ctx, "Notification delivered",
		slog.String("endpoint", s.endpoint),
		slog.Int("status", resp.StatusCode),
	)

	return nil
}
