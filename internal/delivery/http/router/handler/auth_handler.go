package handler

import (
	"log/slog"
	"net/http"

	"crm/internal/delivery/http/middleware"
	"crm/internal/delivery/http/response"
	"crm/internal/domain/entity"
	"crm/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for authentication handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, logger: logger}
}

// Register handles the staff registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	result, err := h.uc.Register(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	// Never echo the password hash back.
	result.User.PasswordHash = ""

	return response.Success(c, http.StatusCreated, result, "User registered successfully")
}

// Login handles the login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	result, err := h.uc.Login(c.Request().Context(), &input)
	if err != nil {
		return errors.WithStack(err)
	}

	result.User.PasswordHash = ""

	return response.Success(c, http.StatusOK, result, "Login successful")
}

// ChangePassword handles the password change request for the acting user.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID, err := actingUserID(c)
	if err != nil {
		return err
	}

	var input usecase.ChangePasswordInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password change input")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	if err := h.uc.ChangePassword(c.Request().Context(), userID, &input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed successfully")
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := c.Get(middleware.ContextKeyUser).(*entity.User)
	if !ok {
		return response.Unauthorized(c, "INVALID_TOKEN", "User missing from context")
	}

	profile := *user
	profile.PasswordHash = ""

	return response.Success(c, http.StatusOK, &profile, "Profile retrieved successfully")
}
