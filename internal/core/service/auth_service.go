package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/keyline/property-api/internal/core/domain"
	"github.com/keyline/property-api/internal/core/ports"
)

// DefaultBCryptCost is the work factor used when none is configured.
const DefaultBCryptCost = 10

// AuthOptions tunes account provisioning and the optional collaborators of
// AuthService. Nil collaborators are replaced with no-ops.
type AuthOptions struct {
	// AutoProvision creates an account on the first Authenticate call for an
	// unseen email.
	AutoProvision bool
	// ProvisionRole is the role given to auto-provisioned accounts.
	ProvisionRole string
	BCryptCost    int
	Limiter       ports.LoginLimiter
	Audit         ports.AuditRecorder
}

// AuthService implements sign-in, explicit registration and token refresh.
type AuthService struct {
	repo   ports.AuthRepository
	tokens ports.TokenIssuer
	opts   AuthOptions
	log    zerolog.Logger
	now    func() time.Time
}

func NewAuthService(repo ports.AuthRepository, tokens ports.TokenIssuer, opts AuthOptions, log zerolog.Logger) *AuthService {
	if opts.ProvisionRole == "" {
		opts.ProvisionRole = domain.RoleAdmin
	}
	if opts.BCryptCost == 0 {
		opts.BCryptCost = DefaultBCryptCost
	}
	if opts.Limiter == nil {
		opts.Limiter = nopLimiter{}
	}
	if opts.Audit == nil {
		opts.Audit = nopAudit{}
	}
	return &AuthService{repo: repo, tokens: tokens, opts: opts, log: log, now: time.Now}
}

// Authenticate resolves an email/password pair to a session. An unseen email
// is provisioned with a single insert-if-absent; when a concurrent caller
// wins that insert, this call verifies the password against the winner's row.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	locked, err := s.opts.Limiter.Locked(ctx, email)
	if err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("login limiter check failed, continuing")
	} else if locked {
		s.audit(email, 0, domain.OutcomeLockedOut)
		return nil, domain.ErrTooManyAttempts
	}

	user, err := s.repo.FindByEmail(ctx, email)
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		if !s.opts.AutoProvision {
			s.audit(email, 0, domain.OutcomeUnknownUser)
			return nil, domain.ErrUserNotFound
		}
		created, ok, err := s.provision(ctx, email, password)
		if err != nil {
			return nil, err
		}
		if ok {
			s.log.Info().Uint("user_id", created.ID).Str("role", created.Role).Msg("account provisioned")
			s.audit(email, created.ID, domain.OutcomeProvisioned)
			return s.issue(created, true)
		}
		// Lost the insert race: the account exists now.
		user, err = s.repo.FindByEmail(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("authenticate: reload user: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("authenticate: find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		if err := s.opts.Limiter.RecordFailure(ctx, email); err != nil {
			s.log.Warn().Err(err).Str("email", email).Msg("failed to record login failure")
		}
		s.audit(email, user.ID, domain.OutcomeWrongPass)
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.opts.Limiter.Reset(ctx, email); err != nil {
		s.log.Warn().Err(err).Str("email", email).Msg("failed to reset login failures")
	}
	s.audit(email, user.ID, domain.OutcomeLogin)
	return s.issue(user, false)
}

// Register creates an account with an explicitly chosen role.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}
	if !domain.ValidRole(in.Role) {
		return nil, domain.ErrInvalidRole
	}
	if in.Plan == "" {
		in.Plan = domain.PlanFree
	}
	if !domain.ValidPlan(in.Plan) {
		return nil, domain.ErrInvalidPlan
	}

	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		Role:         in.Role,
		Plan:         in.Plan,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.audit(in.Email, created.ID, domain.OutcomeRegistered)
	return created, nil
}

// Refresh issues a new token for an already authenticated user. The user is
// reloaded so the new token carries the current role.
func (s *AuthService) Refresh(ctx context.Context, userID uint) (*ports.AuthResult, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	s.audit(user.Email, user.ID, domain.OutcomeRefreshed)
	return s.issue(user, false)
}

func (s *AuthService) Me(ctx context.Context, userID uint) (*domain.User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *AuthService) provision(ctx context.Context, email, password string) (*domain.User, bool, error) {
	hash, err := s.hash(password)
	if err != nil {
		return nil, false, err
	}

	created, ok, err := s.repo.CreateIfAbsent(ctx, &domain.User{
		Email:        email,
		PasswordHash: hash,
		Role:         s.opts.ProvisionRole,
		Plan:         domain.PlanFree,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return nil, false, fmt.Errorf("authenticate: provision user: %w", err)
	}
	return created, ok, nil
}

func (s *AuthService) hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), s.opts.BCryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

func (s *AuthService) issue(user *domain.User, created bool) (*ports.AuthResult, error) {
	token, exp, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &ports.AuthResult{Token: token, ExpiresAt: exp, User: user, Created: created}, nil
}

func (s *AuthService) audit(email string, userID uint, outcome domain.AuthOutcome) {
	s.opts.Audit.Record(domain.AuthEvent{
		Email:     email,
		UserID:    userID,
		Outcome:   outcome,
		Timestamp: s.now().UTC(),
	})
}

type nopLimiter struct{}

func (nopLimiter) Locked(context.Context, string) (bool, error) { return false, nil }
func (nopLimiter) RecordFailure(context.Context, string) error  { return nil }
func (nopLimiter) Reset(context.Context, string) error          { return nil }

type nopAudit struct{}

func (nopAudit) Record(domain.AuthEvent) {}
