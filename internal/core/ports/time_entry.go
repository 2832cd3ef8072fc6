package ports

import (
	"context"
	"time"

	"github.com/keyline/property-api/internal/core/domain"
)

// TimeEntryRepository handles clock sessions.
type TimeEntryRepository interface {
	// Create returns domain.ErrAlreadyClockedIn when the contractor already
	// has an open entry.
	Create(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error)
	FindByID(ctx context.Context, id uint) (*domain.TimeEntry, error)
	FindOpenByContractor(ctx context.Context, contractorID uint) (*domain.TimeEntry, error)
	// Close sets clock_out on an open entry. It returns domain.ErrEntryClosed
	// when the entry was already closed.
	Close(ctx context.Context, id uint, clockOut time.Time) error
	ListByContractor(ctx context.Context, contractorID uint) ([]*domain.TimeEntry, error)
}

// ClockInInput is the DTO passed from the transport layer to TimeClockService.
type ClockInInput struct {
	ContractorID uint
	PropertyID   uint
	Location     domain.Coordinates
	At           time.Time // zero means now
}

type TimeClockService interface {
	ClockIn(ctx context.Context, input ClockInInput) (*domain.TimeEntry, error)
	ClockOut(ctx context.Context, entryID uint, at time.Time) (*domain.TimeEntry, error)
	ListTimeEntries(ctx context.Context, contractorID uint) ([]*domain.TimeEntry, error)
}
