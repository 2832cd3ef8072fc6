package ports

import (
	"context"
	"time"

	"github.com/keyline/property-api/internal/core/domain"
)

// AuthResult is returned by every operation that issues a session token.
type AuthResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
	// Created is true when the call provisioned a new account.
	Created bool
}

// RegisterInput carries an explicit account creation request.
type RegisterInput struct {
	Email    string
	Password string
	Role     string
	Plan     string
}

type AuthService interface {
	// Authenticate signs in an existing account or provisions a new one
	// for an unseen email.
	Authenticate(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	Refresh(ctx context.Context, userID uint) (*AuthResult, error)
	Me(ctx context.Context, userID uint) (*domain.User, error)
}

// TokenIssuer signs session tokens for a user.
type TokenIssuer interface {
	Issue(userID uint, role string) (token string, expiresAt time.Time, err error)
}

// LoginLimiter tracks failed password attempts per email.
type LoginLimiter interface {
	Locked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// AuditRecorder accepts authentication events for asynchronous persistence.
type AuditRecorder interface {
	Record(event domain.AuthEvent)
}

// AuditRepository persists authentication events.
type AuditRepository interface {
	InsertAuthEvent(ctx context.Context, event *domain.AuthEvent) error
}
