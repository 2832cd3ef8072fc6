package ports

import (
	"context"

	"github.com/keyline/property-api/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
type AuthRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	// Create inserts a user and returns domain.ErrUserExists on a duplicate email.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// CreateIfAbsent inserts user unless the email is already taken, as a
	// single statement. created is false when another row already owns the
	// email; the returned user is nil in that case.
	CreateIfAbsent(ctx context.Context, user *domain.User) (created *domain.User, ok bool, err error)
}
