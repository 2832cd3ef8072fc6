package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/keyline/property-api/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// wrongPassword is the message clients rely on to tell a bad password apart
// from other failures.
const wrongPassword = "Wrong password"

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, wrongPassword
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, err.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "access forbidden"

	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrPropertyNotFound),
		errors.Is(err, domain.ErrContractorNotFound),
		errors.Is(err, domain.ErrTimeEntryNotFound):
		return http.StatusNotFound, err.Error()

	case errors.Is(err, domain.ErrUserExists),
		errors.Is(err, domain.ErrAlreadyClockedIn),
		errors.Is(err, domain.ErrEntryClosed):
		return http.StatusConflict, err.Error()

	case errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidPlan),
		errors.Is(err, domain.ErrInvalidGeofence),
		errors.Is(err, domain.ErrInvalidRentAmount),
		errors.Is(err, domain.ErrInvalidRates),
		errors.Is(err, domain.ErrClockOutBeforeIn),
		errors.Is(err, domain.ErrInvalidAmounts):
		return http.StatusUnprocessableEntity, err.Error()
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
