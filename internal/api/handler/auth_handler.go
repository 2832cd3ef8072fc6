package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/keyline/property-api/internal/api/metrics"
	"github.com/keyline/property-api/internal/core/domain"
	"github.com/keyline/property-api/internal/core/ports"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Authenticate signs a user in, creating the account on first use.
//
// @Summary      Sign in or provision an account
// @Description  Unknown emails are provisioned with the configured role. Known emails must present the stored password.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authenticateRequest  true  "Credentials"
// @Success      200   {object}  authResponse
// @Failure      401   {object}  errorResponse  "Wrong password"
// @Failure      404   {object}  errorResponse  "Provisioning disabled and user unknown"
// @Failure      422   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /api/auth [post]
func (h *AuthHandler) Authenticate(c echo.Context) error {
	var req authenticateRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	start := time.Now()
	result, err := h.authService.Authenticate(c.Request().Context(), req.Email, req.Password)
	metrics.AuthDuration.Observe(time.Since(start).Seconds())
	metrics.AuthAttemptsTotal.WithLabelValues(authOutcome(result, err)).Inc()
	if err != nil {
		return err
	}
	if result.Created {
		metrics.UsersCreatedTotal.WithLabelValues("provisioned").Inc()
	}

	return c.JSON(http.StatusOK, toAuthResponse(result))
}

// Register creates an account with an explicit role.
//
// @Summary      Register a user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  userResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Plan:     req.Plan,
	})
	if err != nil {
		return err
	}
	metrics.UsersCreatedTotal.WithLabelValues("registered").Inc()

	return c.JSON(http.StatusCreated, toUserResponse(user))
}

// Refresh issues a new token for the caller.
//
// @Summary      Refresh the session token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  authResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	result, err := h.authService.Refresh(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		return err
	}
	return c.JSON(http.StatusOK, toAuthResponse(result))
}

// Me returns the caller's account.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	userID, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	user, err := h.authService.Me(c.Request().Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
		}
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

func toAuthResponse(r *ports.AuthResult) authResponse {
	return authResponse{Token: r.Token, ExpiresAt: r.ExpiresAt, User: toUserResponse(r.User)}
}

func authOutcome(r *ports.AuthResult, err error) string {
	switch {
	case err == nil && r.Created:
		return string(domain.OutcomeProvisioned)
	case err == nil:
		return string(domain.OutcomeLogin)
	case errors.Is(err, domain.ErrInvalidCredentials):
		return string(domain.OutcomeWrongPass)
	case errors.Is(err, domain.ErrTooManyAttempts):
		return string(domain.OutcomeLockedOut)
	case errors.Is(err, domain.ErrUserNotFound):
		return string(domain.OutcomeUnknownUser)
	default:
		return "error"
	}
}
