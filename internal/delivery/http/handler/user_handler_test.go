package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"cosmiccraft/internal/delivery/middleware"
	"cosmiccraft/internal/domain/entity"
	domainerrors "cosmiccraft/internal/domain/errors"
	"cosmiccraft/internal/domain/service"
	mockSvc "cosmiccraft/internal/mocks/service"
	mockUC "cosmiccraft/internal/mocks/usecase"
	"cosmiccraft/internal/usecase"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newUserTestEcho(t *testing.T) (*mockUC.MockUserUsecase, *mockSvc.MockTokenService, *echo.Echo) {
	userUC := mockUC.NewMockUserUsecase(t)
	tokenSvc := mockSvc.NewMockTokenService(t)
	h := NewUserHandler(UserHandlerParams{
		UserUC:         userUC,
		AuthMiddleware: middleware.NewAuthMiddleware(tokenSvc),
		Logger:         newDiscardLogger(),
	})

	return userUC, tokenSvc, newTestEcho(h)
}

func TestUserHandler_Register(t *testing.T) {
	for _, path := range []string{"/api/users/register", "/api/auth/register"} {
		t.Run(path, func(t *testing.T) {
			userUC, _, e := newUserTestEcho(t)
			name, email := gofakeit.Name(), gofakeit.Email()

			userUC.EXPECT().
				Register(mock.Anything, &usecase.RegisterInput{Name: name, Email: email, Password: "secret123"}).
				Return(&usecase.AuthOutput{
					AccessToken:  "access",
					RefreshToken: "refresh",
					User:         &entity.User{ID: 5, Name: name, Email: email, Role: entity.RoleUser, Active: true},
				}, nil)

			body, err := json.Marshal(map[string]string{"name": name, "email": email, "password": "secret123"})
			require.NoError(t, err)

			rec := serve(e, http.MethodPost, path, echo.MIMEApplicationJSON, string(body))

			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
			var auth authView
			require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &auth))
			assert.Equal(t, "access", auth.Token)
			assert.Equal(t, "refresh", auth.RefreshToken)
			assert.Equal(t, "ROLE_USER", auth.User.Role)
		})
	}
}

func TestUserHandler_Register_Duplicate(t *testing.T) {
	userUC, _, e := newUserTestEcho(t)

	userUC.EXPECT().Register(mock.Anything, mock.Anything).
		Return(nil, errors.Wrap(domainerrors.ErrUserAlreadyExists, "email already registered"))

	rec := serve(e, http.MethodPost, "/api/users/register", echo.MIMEApplicationJSON,
		`{"name":"Ada","email":"ada@example.com","password":"secret123"}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "USER_ALREADY_EXISTS", decodeEnvelope(t, rec).Error.Code)
}

func TestUserHandler_Register_Validation(t *testing.T) {
	_, _, e := newUserTestEcho(t)

	rec := serve(e, http.MethodPost, "/api/users/register", echo.MIMEApplicationJSON,
		`{"name":"Ada","email":"not-an-email","password":"123"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	assert.Contains(t, env.Error.Details, "Email")
	assert.Contains(t, env.Error.Details, "Password")
}

func TestUserHandler_Login_InvalidCredentials(t *testing.T) {
	userUC, _, e := newUserTestEcho(t)

	userUC.EXPECT().Login(mock.Anything, &usecase.LoginInput{Email: "ada@example.com", Password: "wrong"}).
		Return(nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed"))

	rec := serve(e, http.MethodPost, "/api/auth/login", echo.MIMEApplicationJSON,
		`{"email":"ada@example.com","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", decodeEnvelope(t, rec).Error.Code)
}

func TestUserHandler_GetMe(t *testing.T) {
	t.Run("without token", func(t *testing.T) {
		_, _, e := newUserTestEcho(t)

		rec := serve(e, http.MethodGet, "/api/users/me", "", "")

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("with token", func(t *testing.T) {
		userUC, tokenSvc, e := newUserTestEcho(t)

		tokenSvc.EXPECT().ValidateAccessToken("good").Return(&service.Claims{UserID: 5, Type: service.TokenTypeAccess}, nil)
		userUC.EXPECT().GetUser(mock.Anything, int64(5)).Return(&entity.User{ID: 5, Name: "Ada"}, nil)

		req := newRequest(http.MethodGet, "/api/users/me")
		req.Header.Set(echo.HeaderAuthorization, "Bearer good")
		rec := serveRequest(e, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var user userView
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &user))
		assert.Equal(t, int64(5), user.ID)
	})
}

func TestUserHandler_GetUser(t *testing.T) {
	userUC, _, e := newUserTestEcho(t)

	userUC.EXPECT().GetUser(mock.Anything, int64(404)).Return(nil, domainerrors.ErrUserNotFound)

	assert.Equal(t, http.StatusNotFound, serve(e, http.MethodGet, "/api/users/404", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, serve(e, http.MethodGet, "/api/users/abc", "", "").Code)
}
