// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"notevault/internal/delivery/http/middleware"
	"notevault/internal/delivery/http/response"
	"notevault/internal/domain/entity"
	domainerrors "notevault/internal/domain/errors"
	"notevault/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		uc:     uc,
		logger: logger,
	}
}

type registerRequest struct {
	Name            string `json:"name" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name            *string `json:"name"`
	Email           *string `json:"email" validate:"omitempty,email"`
	Password        *string `json:"password" validate:"omitempty,min=6"`
	ConfirmPassword *string `json:"confirmPassword"`
}

// authResponse is returned by register and login: the account's public
// fields plus a fresh bearer token.
type authResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	Token     string    `json:"token"`
}

// profileResponse is the account without credentials or token.
type profileResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func toAuthResponse(out *usecase.AuthOutput) authResponse {
	return authResponse{
		ID:        out.User.ID,
		Name:      out.User.Name,
		Email:     out.User.Email,
		CreatedAt: out.User.CreatedAt,
		Token:     out.Token,
	}
}

func toProfileResponse(user *entity.User) profileResponse {
	return profileResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}

// Register handles the user registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusCreated, toAuthResponse(output))
}

// Login handles the user login request.
func (h *UserHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toAuthResponse(output))
}

// Logout acknowledges a logout. Tokens are stateless, so the server has
// nothing to revoke; the client discards its copy.
func (h *UserHandler) Logout(c echo.Context) error {
	return response.Message(c, http.StatusOK, "Logged out successfully")
}

// GetProfile handles the request to get the current user's profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return errors.Wrap(domainerrors.ErrUnauthenticated, "no authenticated user on request")
	}

	profile, err := h.uc.GetProfile(c.Request().Context(), user.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toProfileResponse(profile))
}

// UpdateProfile handles the request to change the current user's own account.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return errors.Wrap(domainerrors.ErrUnauthenticated, "no authenticated user on request")
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidationFailed.WrapMessage("invalid profile input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	updated, err := h.uc.UpdateProfile(c.Request().Context(), user.ID, &usecase.UpdateProfileInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return c.JSON(http.StatusOK, toProfileResponse(updated))
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
