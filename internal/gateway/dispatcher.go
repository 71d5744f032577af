package gateway

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"net/http/httputil"
	"time"

	deliverycontext "cosmiccraft/internal/delivery/context"
	domainerrors "cosmiccraft/internal/domain/errors"
	"cosmiccraft/internal/errors"

	"github.com/labstack/echo/v4"
)

const (
	// HeaderGatewayError marks responses produced by the gateway instead of a backend.
	HeaderGatewayError = "X-Gateway-Error"

	fallbackTimeout = 10 * time.Second
)

// Dispatcher forwards requests to the backend of the first matching route.
// Every backend has its own transport and timeout, so a hung backend only
// delays the requests routed to it.
type Dispatcher struct {
	backends []*backend
	logger   *slog.Logger
}

type backend struct {
	route Route
	proxy *httputil.ReverseProxy
}

type failureKey struct{}

// NewDispatcher snapshots the table. Routes registered afterwards are not seen.
func NewDispatcher(table *Table, logger *slog.Logger) *Dispatcher {
	routes := table.Routes()
	backends := make([]*backend, 0, len(routes))
	for _, route := range routes {
		if route.Timeout <= 0 {
			route.Timeout = fallbackTimeout
		}
		backends = append(backends, newBackend(route, logger))
		logger.Info("Gateway route registered",
			slog.String("route", route.Name),
			slog.Any("prefixes", route.Prefixes),
			slog.String("target", route.Target.String()),
			slog.Duration("timeout", route.Timeout),
		)
	}

	return &Dispatcher{backends: backends, logger: logger}
}

func newBackend(route Route, logger *slog.Logger) *backend {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = (&net.Dialer{
		Timeout:   route.Timeout,
		KeepAlive: 30 * time.Second,
	}).DialContext
	transport.MaxIdleConnsPerHost = 32

	target := route.Target
	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(target)
		},
		// The backend sees the gateway's request id; echo it once instead of twice.
		ModifyResponse: func(res *http.Response) error {
			if res.Header.Get(deliverycontext.HeaderXRequestID) != "" || res.Request == nil {
				return nil
			}
			if id := res.Request.Header.Get(deliverycontext.HeaderXRequestID); id != "" {
				res.Header.Set(deliverycontext.HeaderXRequestID, id)
			}

			return nil
		},
		Transport: transport,
		ErrorLog:  slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
		ErrorHandler: func(_ http.ResponseWriter, r *http.Request, err error) {
			if slot, ok := r.Context().Value(failureKey{}).(*error); ok {
				*slot = err
			}
		},
	}

	return &backend{route: route, proxy: proxy}
}

// Handle is the echo handler for every path the gateway does not serve itself.
func (d *Dispatcher) Handle(c echo.Context) error {
	req := c.Request()
	for _, b := range d.backends {
		if b.route.Predicate(req) {
			return d.forward(c, b)
		}
	}

	return domainerrors.ErrRouteNotFound.WithDetails(req.Method + " " + req.URL.Path)
}

func (d *Dispatcher) forward(c echo.Context, b *backend) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), b.route.Timeout)
	defer cancel()

	var failure error
	ctx = context.WithValue(ctx, failureKey{}, &failure)

	requestID := c.Response().Header().Get(deliverycontext.HeaderXRequestID)
	c.Response().Header().Del(deliverycontext.HeaderXRequestID)

	b.proxy.ServeHTTP(c.Response(), c.Request().WithContext(ctx))
	if failure == nil {
		return nil
	}

	logger := deliverycontext.GetLoggerOrDefault(ctx, d.logger)
	timedOut := isTimeout(ctx, failure)
	logger.Warn("Backend call failed",
		slog.String("route", b.route.Name),
		slog.String("target", b.route.Target.String()),
		slog.Bool("timeout", timedOut),
		slog.Any("error", failure),
	)

	if c.Response().Committed {
		return nil
	}
	if requestID != "" {
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)
	}

	if timedOut {
		c.Response().Header().Set(HeaderGatewayError, "timeout")

		return domainerrors.ErrUpstreamTimeout.WithDetails(b.route.Name)
	}

	c.Response().Header().Set(HeaderGatewayError, "unavailable")

	return domainerrors.ErrUpstreamUnavailable.WithDetails(b.route.Name)
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}
