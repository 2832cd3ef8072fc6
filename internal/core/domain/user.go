package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin      = "admin"
	RoleTenant     = "tenant"
	RoleContractor = "contractor"
)

const (
	PlanFree = "free"
	PlanPro  = "pro"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidPlan        = errors.New("invalid plan")
	ErrTooManyAttempts    = errors.New("too many failed attempts")
	ErrForbidden          = errors.New("access forbidden")
)

// User models an account that can authenticate against the API.
type User struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Plan         string    `json:"plan"`
	CreatedAt    time.Time `json:"created_at"`
}

// ValidRole reports whether role is one of the known account roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTenant, RoleContractor:
		return true
	}
	return false
}

// ValidPlan reports whether plan is one of the known plan tiers.
func ValidPlan(plan string) bool {
	return plan == PlanFree || plan == PlanPro
}
