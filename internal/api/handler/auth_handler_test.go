package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/keyline/property-api/internal/core/domain"
	"github.com/keyline/property-api/internal/core/ports"
)

func TestAuthHandler_Authenticate_Success(t *testing.T) {
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			if email != "a@x.com" || password != "pw1" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.AuthResult{
				Token:     "tok",
				ExpiresAt: time.Now().Add(time.Hour),
				User:      &domain.User{ID: 1, Email: email, PasswordHash: "$2a$10$secret", Role: domain.RoleAdmin, Plan: domain.PlanFree},
				Created:   true,
			}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/auth", `{"email":"a@x.com","password":"pw1"}`, 0, "")

	if err := NewAuthHandler(stub).Authenticate(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tok" {
		t.Fatalf("missing token: %v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["id"] != float64(1) || user["email"] != "a@x.com" || user["role"] != "admin" || user["plan"] != "free" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if len(user) != 4 {
		t.Fatalf("user projection must carry exactly id, email, role, plan: %+v", user)
	}
}

func TestAuthHandler_Authenticate_WrongPasswordPropagates(t *testing.T) {
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	c, _ := newContext(http.MethodPost, "/api/auth", `{"email":"a@x.com","password":"nope"}`, 0, "")

	err := NewAuthHandler(stub).Authenticate(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Authenticate_Validation(t *testing.T) {
	stub := &stubAuthService{
		authenticateFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			t.Fatal("service must not be called")
			return nil, nil
		},
	}
	cases := map[string]struct {
		body string
		code int
	}{
		"missing password": {`{"email":"a@x.com"}`, http.StatusUnprocessableEntity},
		"missing email":    {`{"password":"x"}`, http.StatusUnprocessableEntity},
		"malformed json":   {`{"email":`, http.StatusBadRequest},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/api/auth", tc.body, 0, "")
			err := NewAuthHandler(stub).Authenticate(c)
			if httpCode(err) != tc.code {
				t.Fatalf("expected %d, got %v", tc.code, err)
			}
		})
	}
}

func TestAuthHandler_Register(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			if in.Role != domain.RoleTenant || in.Plan != domain.PlanPro {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.User{ID: 2, Email: in.Email, Role: in.Role, Plan: in.Plan}, nil
		},
	}
	body := `{"email":"t@x.com","password":"longenough","role":"tenant","plan":"pro"}`
	c, rec := newContext(http.MethodPost, "/api/auth/register", body, 1, domain.RoleAdmin)

	if err := NewAuthHandler(stub).Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_InvalidRole(t *testing.T) {
	c, _ := newContext(http.MethodPost, "/api/auth/register", `{"email":"t@x.com","password":"longenough","role":"root"}`, 1, domain.RoleAdmin)
	err := NewAuthHandler(&stubAuthService{}).Register(c)
	if httpCode(err) != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
			return nil, domain.ErrUserExists
		},
	}
	c, _ := newContext(http.MethodPost, "/api/auth/register", `{"email":"t@x.com","password":"longenough","role":"tenant"}`, 1, domain.RoleAdmin)
	if err := NewAuthHandler(stub).Register(c); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthHandler_Refresh(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(ctx context.Context, userID uint) (*ports.AuthResult, error) {
			if userID != 9 {
				t.Fatalf("expected caller id 9, got %d", userID)
			}
			return &ports.AuthResult{Token: "fresh", User: &domain.User{ID: 9, Role: domain.RoleTenant}}, nil
		},
	}
	c, rec := newContext(http.MethodPost, "/api/auth/refresh", "", 9, domain.RoleTenant)
	if err := NewAuthHandler(stub).Refresh(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Me_DeletedUserIsUnauthorized(t *testing.T) {
	stub := &stubAuthService{
		meFn: func(ctx context.Context, userID uint) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		},
	}
	c, _ := newContext(http.MethodGet, "/api/auth/me", "", 9, domain.RoleTenant)
	if err := NewAuthHandler(stub).Me(c); httpCode(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthHandler_Me_RequiresIdentity(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/api/auth/me", "", 0, "")
	if err := NewAuthHandler(&stubAuthService{}).Me(c); httpCode(err) != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", err)
	}
}

func TestAuthOutcome(t *testing.T) {
	cases := []struct {
		result *ports.AuthResult
		err    error
		want   string
	}{
		{&ports.AuthResult{Created: true}, nil, "provisioned"},
		{&ports.AuthResult{}, nil, "login"},
		{nil, domain.ErrInvalidCredentials, "wrong_password"},
		{nil, domain.ErrTooManyAttempts, "locked_out"},
		{nil, domain.ErrUserNotFound, "unknown_user"},
		{nil, errors.New("db down"), "error"},
	}
	for _, tc := range cases {
		if got := authOutcome(tc.result, tc.err); got != tc.want {
			t.Fatalf("authOutcome(%v) = %s, want %s", tc.err, got, tc.want)
		}
	}
}
