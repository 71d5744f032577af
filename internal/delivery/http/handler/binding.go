// Package handler contains the echo handlers of every backend service.
package handler

import (
	"fmt"

	domainerrors "cosmiccraft/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// bindParams fills req from path and query parameters, then validates it.
// Query parameters are bound for every method, unlike echo's default Bind.
func bindParams(c echo.Context, req any) error {
	binder := &echo.DefaultBinder{}
	if err := binder.BindPathParams(c, req); err != nil {
		return bindingError(err)
	}
	if err := binder.BindQueryParams(c, req); err != nil {
		return bindingError(err)
	}

	return c.Validate(req)
}

// bindBody fills req from path parameters and the request body, then validates it.
func bindBody(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return bindingError(err)
	}

	return c.Validate(req)
}

func bindingError(err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return domainerrors.ErrValidationFailed.WithDetails(fmt.Sprint(httpErr.Message))
	}

	return domainerrors.ErrValidationFailed.WithDetails(err.Error())
}
