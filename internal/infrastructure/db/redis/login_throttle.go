package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultMaxFailures = 5
	defaultLockout     = 15 * time.Minute
)

// LoginThrottle counts failed password attempts per email and locks the
// email out once the count reaches the limit. The counter expires after the
// lockout window, measured from the first failure in the window.
// Key format: login:fail:<email>, with the email matched exactly as the
// user store matches it.
type LoginThrottle struct {
	client      *redis.Client
	maxFailures int64
	lockout     time.Duration
}

// NewLoginThrottle creates a LoginThrottle wrapping the given Redis client.
// Non-positive limits fall back to 5 failures per 15 minutes.
func NewLoginThrottle(client *redis.Client, maxFailures int, lockout time.Duration) *LoginThrottle {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	if lockout <= 0 {
		lockout = defaultLockout
	}
	return &LoginThrottle{client: client, maxFailures: int64(maxFailures), lockout: lockout}
}

// Locked reports whether the email has exhausted its failure budget.
func (l *LoginThrottle) Locked(ctx context.Context, email string) (bool, error) {
	n, err := l.client.Get(ctx, l.key(email)).Int64()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("login throttle check: %w", err)
	}
	return n >= l.maxFailures, nil
}

// RecordFailure increments the failure counter, starting the lockout window
// on the first failure.
func (l *LoginThrottle) RecordFailure(ctx context.Context, email string) error {
	key := l.key(email)
	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.ExpireNX(ctx, key, l.lockout)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("login throttle record: %w", err)
	}
	if incr.Val() < 1 {
		return fmt.Errorf("login throttle record: unexpected counter %d", incr.Val())
	}
	return nil
}

// Reset clears the failure counter after a successful sign-in.
func (l *LoginThrottle) Reset(ctx context.Context, email string) error {
	if err := l.client.Del(ctx, l.key(email)).Err(); err != nil {
		return fmt.Errorf("login throttle reset: %w", err)
	}
	return nil
}

func (l *LoginThrottle) key(email string) string {
	return "login:fail:" + email
}
