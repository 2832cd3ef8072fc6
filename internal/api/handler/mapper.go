package handler

import (
	"github.com/keyline/property-api/internal/core/domain"
)

// --- Domain → Response ---

func toUserResponse(u *domain.User) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Role: u.Role, Plan: u.Plan}
}

func toCoordinates(c *domain.Coordinates) *coordinates {
	if c == nil {
		return nil
	}
	return &coordinates{Lat: c.Lat, Lng: c.Lng}
}

func fromCoordinates(c *coordinates) *domain.Coordinates {
	if c == nil {
		return nil
	}
	return &domain.Coordinates{Lat: c.Lat, Lng: c.Lng}
}

func toPropertyResponse(p *domain.Property) propertyResponse {
	return propertyResponse{
		ID:             p.ID,
		OwnerID:        p.OwnerID,
		Address:        p.Address,
		RentCents:      p.RentCents,
		GeofenceRadius: p.GeofenceRadius,
		Location:       toCoordinates(p.Location),
		CreatedAt:      p.CreatedAt,
	}
}

func toContractorResponse(c *domain.Contractor) contractorResponse {
	return contractorResponse{
		ID:               c.ID,
		Name:             c.Name,
		Email:            c.Email,
		PayRateCents:     c.PayRateCents,
		BillingRateCents: c.BillingRateCents,
		Plan:             c.Plan,
		CreatedAt:        c.CreatedAt,
	}
}

func toTimeEntryResponse(e *domain.TimeEntry) timeEntryResponse {
	return timeEntryResponse{
		ID:           e.ID,
		ContractorID: e.ContractorID,
		PropertyID:   e.PropertyID,
		ClockIn:      e.ClockIn,
		ClockOut:     e.ClockOut,
		Location:     coordinates{Lat: e.ClockInAt.Lat, Lng: e.ClockInAt.Lng},
		Offsite:      e.Offsite,
	}
}

func toTransactionResponse(t *domain.Transaction) transactionResponse {
	return transactionResponse{
		ID:          t.ID,
		Description: t.Description,
		Category:    t.Category,
		DebitCents:  t.DebitCents,
		CreditCents: t.CreditCents,
		PropertyID:  t.PropertyID,
		CreatedAt:   t.CreatedAt,
	}
}

// mapSlice converts a slice of domain values with fn. It never returns nil so
// empty lists render as [].
func mapSlice[T any, R any](in []*T, fn func(*T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
