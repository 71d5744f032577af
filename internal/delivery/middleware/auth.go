package middleware

import (
	"strings"

	domainerrors "cosmiccraft/internal/domain/errors"
	"cosmiccraft/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const keyUserID = "userID"

// AuthMiddleware validates bearer access tokens issued by the user service.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate rejects the request unless it carries a valid access token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if authHeader == "" {
			return domainerrors.ErrUnauthorized.WithDetails("authorization header is missing")
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || tokenString == "" {
			return domainerrors.ErrUnauthorized.WithDetails("must be a Bearer token")
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return domainerrors.ErrUnauthorized
		}

		c.Set(keyUserID, claims.UserID)

		return next(c)
	}
}

// GetUserID returns the authenticated user set by Authenticate.
func GetUserID(c echo.Context) (int64, bool) {
	id, ok := c.Get(keyUserID).(int64)

	return id, ok
}
