package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/keyline/property-api/internal/core/domain"
	"github.com/keyline/property-api/internal/core/ports"
)

type stubPropertyRepo struct {
	byID      map[uint]*domain.Property
	nextID    uint
	createErr error
}

func newStubPropertyRepo() *stubPropertyRepo {
	return &stubPropertyRepo{byID: make(map[uint]*domain.Property)}
}

func (r *stubPropertyRepo) Create(_ context.Context, p *domain.Property) (*domain.Property, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	clone := *p
	clone.ID = r.nextID
	r.byID[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *stubPropertyRepo) FindByID(_ context.Context, id uint) (*domain.Property, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPropertyRepo) ListByOwner(_ context.Context, ownerID uint) ([]*domain.Property, error) {
	var out []*domain.Property
	for id := uint(1); id <= r.nextID; id++ {
		if p, ok := r.byID[id]; ok && p.OwnerID == ownerID {
			clone := *p
			out = append(out, &clone)
		}
	}
	return out, nil
}

func TestPropertyService_Create_DefaultsRadius(t *testing.T) {
	svc := NewPropertyService(newStubPropertyRepo(), zerolog.Nop())

	p, err := svc.CreateProperty(context.Background(), ports.CreatePropertyInput{
		OwnerID:   1,
		OwnerRole: domain.RoleAdmin,
		Address:   "  12 Elm St  ",
		RentCents: 120050,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.GeofenceRadius != domain.DefaultGeofenceRadius {
		t.Fatalf("expected default radius, got %d", p.GeofenceRadius)
	}
	if p.Address != "12 Elm St" || p.RentCents != 120050 {
		t.Fatalf("unexpected property: %+v", p)
	}
}

func TestPropertyService_Create_Validation(t *testing.T) {
	svc := NewPropertyService(newStubPropertyRepo(), zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.CreateProperty(ctx, ports.CreatePropertyInput{OwnerID: 2, OwnerRole: domain.RoleTenant}); err != domain.ErrForbidden {
		t.Fatalf("expected ErrForbidden for tenant owner, got %v", err)
	}
	if _, err := svc.CreateProperty(ctx, ports.CreatePropertyInput{OwnerID: 1, OwnerRole: domain.RoleAdmin, GeofenceRadius: -1}); err != domain.ErrInvalidGeofence {
		t.Fatalf("expected ErrInvalidGeofence, got %v", err)
	}
	if _, err := svc.CreateProperty(ctx, ports.CreatePropertyInput{OwnerID: 1, OwnerRole: domain.RoleAdmin, RentCents: -10}); err != domain.ErrInvalidRentAmount {
		t.Fatalf("expected ErrInvalidRentAmount, got %v", err)
	}
}

func TestPropertyService_Create_RepoError(t *testing.T) {
	repo := newStubPropertyRepo()
	repo.createErr = errors.New("db down")
	svc := NewPropertyService(repo, zerolog.Nop())

	if _, err := svc.CreateProperty(context.Background(), ports.CreatePropertyInput{OwnerID: 1, OwnerRole: domain.RoleAdmin}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestPropertyService_Get_ScopedToOwner(t *testing.T) {
	svc := NewPropertyService(newStubPropertyRepo(), zerolog.Nop())
	ctx := context.Background()

	p, _ := svc.CreateProperty(ctx, ports.CreatePropertyInput{OwnerID: 1, OwnerRole: domain.RoleAdmin, Address: "a"})

	if _, err := svc.GetProperty(ctx, p.ID, 1); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if _, err := svc.GetProperty(ctx, p.ID, 2); err != domain.ErrPropertyNotFound {
		t.Fatalf("expected ErrPropertyNotFound for other owner, got %v", err)
	}

	list, err := svc.ListProperties(ctx, 1)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one property, got %d (%v)", len(list), err)
	}
}
