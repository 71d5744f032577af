package handler

import (
	"log/slog"
	"net/http"

	"cosmiccraft/internal/delivery/middleware"
	"cosmiccraft/internal/delivery/response"
	domainerrors "cosmiccraft/internal/domain/errors"
	"cosmiccraft/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC         usecase.UserUsecase
	AuthMiddleware *middleware.AuthMiddleware
	Logger         *slog.Logger
}

// UserHandler serves account registration, login and lookup.
type UserHandler struct {
	userUC         usecase.UserUsecase
	authMiddleware *middleware.AuthMiddleware
	logger         *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC:         params.UserUC,
		authMiddleware: params.AuthMiddleware,
		logger:         params.Logger,
	}
}

// RegisterRoutes exposes the user API. Registration and login are reachable under both prefixes.
func (h *UserHandler) RegisterRoutes(e *echo.Echo) {
	for _, prefix := range []string{"/api/users", "/api/auth"} {
		group := e.Group(prefix)
		group.POST("/register", h.Register)
		group.POST("/login", h.Login)
	}

	users := e.Group("/api/users")
	users.GET("/all", h.GetAllUsers)
	users.GET("/me", h.GetMe, h.authMiddleware.Authenticate)
	users.GET("/:id", h.GetUser)
}

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Name        string `json:"name" validate:"required,max=255"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=32"`
	Password    string `json:"password" validate:"required,min=6,max=72"`
}

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userIDRequest struct {
	ID int64 `param:"id" validate:"required,gt=0"`
}

// Register handles account creation
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	out, err := h.userUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Name:        req.Name,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusCreated, toAuthView(out))
}

// Login handles credential checks
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	out, err := h.userUC.Login(c.Request().Context(), &usecase.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toAuthView(out))
}

func (h *UserHandler) GetUser(c echo.Context) error {
	var req userIDRequest
	if err := bindParams(c, &req); err != nil {
		return err
	}

	user, err := h.userUC.GetUser(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toUserView(user))
}

func (h *UserHandler) GetAllUsers(c echo.Context) error {
	users, err := h.userUC.GetAllUsers(c.Request().Context())
	if err != nil {
		return err
	}

	views := make([]*userView, 0, len(users))
	for _, u := range users {
		views = append(views, toUserView(u))
	}

	return response.Success(c, http.StatusOK, views)
}

// GetMe returns the account of the bearer token
func (h *UserHandler) GetMe(c echo.Context) error {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return domainerrors.ErrUnauthorized
	}

	user, err := h.userUC.GetUser(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toUserView(user))
}

func toAuthView(out *usecase.AuthOutput) *authView {
	return &authView{
		Token:        out.AccessToken,
		RefreshToken: out.RefreshToken,
		User:         toUserView(out.User),
	}
}
