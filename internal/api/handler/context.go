package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/keyline/property-api/internal/api/middleware"
)

// ctxIdentity extracts the caller identity injected by the Auth middleware.
// A missing identity means the route was registered without Auth.
func ctxIdentity(c echo.Context) (userID uint, role string, err error) {
	userID, _ = c.Get(middleware.ContextUserID).(uint)
	role, _ = c.Get(middleware.ContextRole).(string)
	if userID == 0 || role == "" {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return userID, role, nil
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (uint, error) {
	return parseID(c.Param(name), name)
}

func parseID(raw, name string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}

// bindAndValidate decodes the request body into req and runs the registered
// validator. Decoding failures are 400, rule violations 422.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
