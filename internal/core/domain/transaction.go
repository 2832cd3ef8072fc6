package domain

import (
	"errors"
	"time"
)

// ErrInvalidAmounts is returned unless exactly one of debit/credit is positive.
var ErrInvalidAmounts = errors.New("exactly one of debit or credit must be positive")

// Transaction is a ledger line. Debit and credit are kept separately rather
// than as a signed amount.
type Transaction struct {
	ID          uint
	UserID      uint
	Description string
	DebitCents  int64
	CreditCents int64
	Category    string
	PropertyID  *uint
	CreatedAt   time.Time
}

// ValidateAmounts enforces debit/credit exclusivity for a new ledger line.
func (t *Transaction) ValidateAmounts() error {
	if t.DebitCents < 0 || t.CreditCents < 0 {
		return ErrInvalidAmounts
	}
	if (t.DebitCents == 0) == (t.CreditCents == 0) {
		return ErrInvalidAmounts
	}
	return nil
}

// Balance aggregates a user's ledger.
type Balance struct {
	DebitCents  int64
	CreditCents int64
}

// NetCents is credits minus debits.
func (b Balance) NetCents() int64 {
	return b.CreditCents - b.DebitCents
}
