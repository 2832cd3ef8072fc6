package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/keyline/property-api/internal/core/domain"
	"github.com/keyline/property-api/internal/core/ports"
)

type PropertyService struct {
	repo   ports.PropertyRepository
	logger zerolog.Logger
}

func NewPropertyService(repo ports.PropertyRepository, logger zerolog.Logger) *PropertyService {
	return &PropertyService{repo: repo, logger: logger}
}

// CreateProperty registers a property owned by the caller, who must be an admin.
func (s *PropertyService) CreateProperty(ctx context.Context, in ports.CreatePropertyInput) (*domain.Property, error) {
	if in.OwnerRole != domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	if in.RentCents < 0 {
		return nil, domain.ErrInvalidRentAmount
	}

	radius := in.GeofenceRadius
	if radius == 0 {
		radius = domain.DefaultGeofenceRadius
	}
	if radius < 0 {
		return nil, domain.ErrInvalidGeofence
	}

	created, err := s.repo.Create(ctx, &domain.Property{
		OwnerID:        in.OwnerID,
		Address:        strings.TrimSpace(in.Address),
		RentCents:      in.RentCents,
		GeofenceRadius: radius,
		Location:       in.Location,
		CreatedAt:      time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Uint("owner_id", in.OwnerID).Msg("failed to create property")
		return nil, err
	}

	s.logger.Info().Uint("property_id", created.ID).Uint("owner_id", in.OwnerID).Msg("property created")
	return created, nil
}

func (s *PropertyService) GetProperty(ctx context.Context, id, ownerID uint) (*domain.Property, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Not-owned reads are indistinguishable from missing ones.
	if p.OwnerID != ownerID {
		return nil, domain.ErrPropertyNotFound
	}
	return p, nil
}

func (s *PropertyService) ListProperties(ctx context.Context, ownerID uint) ([]*domain.Property, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}
