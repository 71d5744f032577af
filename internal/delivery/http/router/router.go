// Package router collects the route groups a backend exposes.
package router

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// Registrar is implemented by every handler that owns a group of routes.
type Registrar interface {
	RegisterRoutes(e *echo.Echo)
}

// AsRegistrar provides a handler constructor to the server's route group.
func AsRegistrar(constructor any) any {
	return fx.Annotate(
		constructor,
		fx.As(new(Registrar)),
		fx.ResultTags(`group:"routes"`),
	)
}

// HealthCheck answers liveness probes.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
