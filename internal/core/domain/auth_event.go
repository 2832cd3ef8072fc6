package domain

import "time"

// AuthOutcome labels the result of an authentication attempt.
type AuthOutcome string

const (
	OutcomeLogin       AuthOutcome = "login"
	OutcomeProvisioned AuthOutcome = "provisioned"
	OutcomeRegistered  AuthOutcome = "registered"
	OutcomeRefreshed   AuthOutcome = "refreshed"
	OutcomeWrongPass   AuthOutcome = "wrong_password"
	OutcomeLockedOut   AuthOutcome = "locked_out"
	OutcomeUnknownUser AuthOutcome = "unknown_user"
)

// AuthEvent is an audit record of a single authentication attempt.
type AuthEvent struct {
	Email     string
	UserID    uint // zero when no account was resolved
	Outcome   AuthOutcome
	Timestamp time.Time
}
