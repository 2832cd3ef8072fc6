package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/keyline/property-api/internal/core/domain"
)

func TestRBAC_RoleTable(t *testing.T) {
	cases := []struct {
		role    any
		allowed bool
	}{
		{domain.RoleAdmin, true},
		{domain.RoleContractor, true},
		{domain.RoleTenant, false},
		{"", false},
		{nil, false},
		{42, false},
	}
	mw := RBAC(domain.RoleAdmin, domain.RoleContractor)

	for _, tc := range cases {
		e := echo.New()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		if tc.role != nil {
			c.Set(ContextRole, tc.role)
		}

		called := false
		err := mw(func(c echo.Context) error {
			called = true
			return nil
		})(c)

		if called != tc.allowed {
			t.Fatalf("role %v: expected allowed=%v", tc.role, tc.allowed)
		}
		if !tc.allowed && !errors.Is(err, domain.ErrForbidden) {
			t.Fatalf("role %v: expected ErrForbidden, got %v", tc.role, err)
		}
	}
}

func TestRBAC_UnknownRolePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown role")
		}
	}()
	RBAC("superuser")
}

// The role RBAC checks is the one Auth read from the token.
func TestAuthThenRBAC(t *testing.T) {
	signer := newSigner(t, "secret", time.Hour)
	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		var he *echo.HTTPError
		switch {
		case errors.Is(err, domain.ErrForbidden):
			_ = c.NoContent(http.StatusForbidden)
		case errors.As(err, &he):
			_ = c.NoContent(he.Code)
		default:
			_ = c.NoContent(http.StatusInternalServerError)
		}
	}
	e.GET("/admin", func(c echo.Context) error {
		return c.String(http.StatusOK, c.Get(ContextRole).(string))
	}, Auth(signer), RBAC(domain.RoleAdmin))

	issue := func(role string) string {
		tok, _, err := signer.Issue(3, role)
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		return "Bearer " + tok
	}
	cases := []struct {
		name   string
		header string
		code   int
	}{
		{"admin token", issue(domain.RoleAdmin), http.StatusOK},
		{"tenant token", issue(domain.RoleTenant), http.StatusForbidden},
		{"contractor token", issue(domain.RoleContractor), http.StatusForbidden},
		{"no token", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tc.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tc.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if tc.code == http.StatusOK && rec.Body.String() != domain.RoleAdmin {
				t.Fatalf("expected role from token, got %q", rec.Body.String())
			}
		})
	}
}
