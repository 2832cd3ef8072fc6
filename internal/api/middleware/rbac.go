package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/keyline/property-api/internal/core/domain"
)

// RBAC admits callers whose role, as set by Auth, is one of allowedRoles.
// Anyone else gets domain.ErrForbidden, which the central error handler
// renders as 403. Unknown role names are a wiring bug and panic.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		if !domain.ValidRole(r) {
			panic(fmt.Sprintf("rbac: unknown role %q", r))
		}
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get(ContextRole).(string)
			if _, ok := allowed[role]; !ok {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}
