package ports

import (
	"context"

	"github.com/keyline/property-api/internal/core/domain"
)

// PropertyRepository defines persistence operations for properties.
type PropertyRepository interface {
	Create(ctx context.Context, p *domain.Property) (*domain.Property, error)
	FindByID(ctx context.Context, id uint) (*domain.Property, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]*domain.Property, error)
}

// CreatePropertyInput carries the data needed to register a property.
type CreatePropertyInput struct {
	OwnerID        uint
	OwnerRole      string
	Address        string
	RentCents      int64
	GeofenceRadius int // zero selects domain.DefaultGeofenceRadius
	Location       *domain.Coordinates
}

type PropertyService interface {
	CreateProperty(ctx context.Context, input CreatePropertyInput) (*domain.Property, error)
	// GetProperty returns the property only when ownerID owns it.
	GetProperty(ctx context.Context, id, ownerID uint) (*domain.Property, error)
	ListProperties(ctx context.Context, ownerID uint) ([]*domain.Property, error)
}
