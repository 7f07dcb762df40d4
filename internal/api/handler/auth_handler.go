package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/devboard/devboard-api/internal/api/middleware"
	"github.com/devboard/devboard-api/internal/core/domain"
	"github.com/devboard/devboard-api/internal/core/ports"
)

// AuthHandler handles HTTP requests for account operations.
type AuthHandler struct {
	service ports.AuthService
}

func NewAuthHandler(service ports.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name" validate:"required,min=2"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type updateProfileRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=2"`
	Bio    *string `json:"bio"`
	Avatar *string `json:"avatar"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

type authResponse struct {
	Token string       `json:"token,omitempty"`
	User  *domain.User `json:"user"`
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Name:     req.Name,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusCreated, authResponse{User: user})
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, user, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, authResponse{Token: token, User: user})
}

// Me returns the authenticated user's profile.
//
// @Summary      Current user profile
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	user, err := h.service.Me(c.Request().Context(), identity.UserID)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, user)
}

// UpdateProfile applies a partial profile update.
//
// @Summary      Update profile
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateProfileRequest  true  "Profile fields"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), identity.UserID, ports.UpdateProfileInput{
		Name:   req.Name,
		Bio:    req.Bio,
		Avatar: req.Avatar,
	})
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, user)
}

// ChangePassword rotates the caller's password.
//
// @Summary      Change password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.service.ChangePassword(c.Request().Context(), identity.UserID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}

	return respond(c, http.StatusOK, map[string]string{"message": "password updated"})
}

// Deactivate soft-deletes the caller's account.
//
// @Summary      Deactivate account
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /auth/account [delete]
func (h *AuthHandler) Deactivate(c echo.Context) error {
	identity, ok := middleware.CurrentIdentity(c)
	if !ok {
		return domain.ErrUnauthenticated
	}

	if err := h.service.Deactivate(c.Request().Context(), identity.UserID); err != nil {
		return err
	}

	return respond(c, http.StatusOK, map[string]string{"message": "account deactivated"})
}
