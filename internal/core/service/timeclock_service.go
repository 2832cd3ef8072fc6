package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/keyline/property-api/internal/core/domain"
	"github.com/keyline/property-api/internal/core/ports"
)

type TimeClockService struct {
	entries     ports.TimeEntryRepository
	contractors ports.ContractorRepository
	properties  ports.PropertyRepository
	log         zerolog.Logger
	now         func() time.Time
}

func NewTimeClockService(
	entries ports.TimeEntryRepository,
	contractors ports.ContractorRepository,
	properties ports.PropertyRepository,
	log zerolog.Logger,
) *TimeClockService {
	return &TimeClockService{
		entries:     entries,
		contractors: contractors,
		properties:  properties,
		log:         log,
		now:         time.Now,
	}
}

// ClockIn opens a session for a contractor at a property and flags it
// offsite when the reported position is outside the property's geofence.
// Accounts are not linked to contractor records, so the caller may clock
// in any contractor.
func (s *TimeClockService) ClockIn(ctx context.Context, in ports.ClockInInput) (*domain.TimeEntry, error) {
	if _, err := s.contractors.FindByID(ctx, in.ContractorID); err != nil {
		return nil, err
	}
	property, err := s.properties.FindByID(ctx, in.PropertyID)
	if err != nil {
		return nil, err
	}

	// Fast path; the partial unique index still guards concurrent clock-ins.
	open, err := s.entries.FindOpenByContractor(ctx, in.ContractorID)
	if err != nil && !errors.Is(err, domain.ErrTimeEntryNotFound) {
		return nil, fmt.Errorf("clock in: find open entry: %w", err)
	}
	if open != nil {
		return nil, domain.ErrAlreadyClockedIn
	}

	at := in.At
	if at.IsZero() {
		at = s.now()
	}
	entry := &domain.TimeEntry{
		ContractorID: in.ContractorID,
		PropertyID:   in.PropertyID,
		ClockIn:      at.UTC(),
		ClockInAt:    in.Location,
		Offsite:      property.IsOffsite(in.Location),
		CreatedAt:    s.now().UTC(),
	}

	created, err := s.entries.Create(ctx, entry)
	if err != nil {
		return nil, err
	}

	evt := s.log.Info()
	if created.Offsite {
		evt = s.log.Warn()
	}
	evt.Uint("contractor_id", in.ContractorID).
		Uint("property_id", in.PropertyID).
		Bool("offsite", created.Offsite).
		Msg("clocked in")

	return created, nil
}

func (s *TimeClockService) ClockOut(ctx context.Context, entryID uint, at time.Time) (*domain.TimeEntry, error) {
	entry, err := s.entries.FindByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if !entry.Open() {
		return nil, domain.ErrEntryClosed
	}

	if at.IsZero() {
		at = s.now()
	}
	at = at.UTC()
	if at.Before(entry.ClockIn) {
		return nil, domain.ErrClockOutBeforeIn
	}

	if err := s.entries.Close(ctx, entryID, at); err != nil {
		return nil, err
	}
	entry.ClockOut = &at

	s.log.Info().
		Uint("contractor_id", entry.ContractorID).
		Uint("time_entry_id", entryID).
		Dur("duration", at.Sub(entry.ClockIn)).
		Msg("clocked out")

	return entry, nil
}

func (s *TimeClockService) ListTimeEntries(ctx context.Context, contractorID uint) ([]*domain.TimeEntry, error) {
	return s.entries.ListByContractor(ctx, contractorID)
}
