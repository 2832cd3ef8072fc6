package ports

import (
	"context"

	"github.com/keyline/property-api/internal/core/domain"
)

type ContractorRepository interface {
	Create(ctx context.Context, c *domain.Contractor) (*domain.Contractor, error)
	FindByID(ctx context.Context, id uint) (*domain.Contractor, error)
	List(ctx context.Context) ([]*domain.Contractor, error)
}

type CreateContractorInput struct {
	Name             string
	Email            string
	PayRateCents     int64
	BillingRateCents int64
	Plan             string
}

type ContractorService interface {
	CreateContractor(ctx context.Context, input CreateContractorInput) (*domain.Contractor, error)
	GetContractor(ctx context.Context, id uint) (*domain.Contractor, error)
	ListContractors(ctx context.Context) ([]*domain.Contractor, error)
}
