package domain

import (
	"errors"
	"time"
)

var (
	ErrContractorNotFound = errors.New("contractor not found")
	// ErrInvalidRates is returned when the pay rate exceeds the billing rate.
	ErrInvalidRates = errors.New("pay rate must not exceed billing rate")
)

// Contractor is a worker billed against properties. Contractors are not users.
type Contractor struct {
	ID               uint
	Name             string
	Email            string
	PayRateCents     int64
	BillingRateCents int64
	Plan             string
	CreatedAt        time.Time
}
