package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/keyline/property-api/internal/core/domain"
	"github.com/keyline/property-api/internal/core/ports"
)

type ContractorService struct {
	repo   ports.ContractorRepository
	logger zerolog.Logger
}

func NewContractorService(repo ports.ContractorRepository, logger zerolog.Logger) *ContractorService {
	return &ContractorService{repo: repo, logger: logger}
}

// CreateContractor stores a contractor. A pay rate above the billing rate
// would bill the owner less than the contractor is paid, so it is rejected.
func (s *ContractorService) CreateContractor(ctx context.Context, in ports.CreateContractorInput) (*domain.Contractor, error) {
	if in.PayRateCents < 0 || in.BillingRateCents < 0 || in.PayRateCents > in.BillingRateCents {
		return nil, domain.ErrInvalidRates
	}
	if in.Plan == "" {
		in.Plan = domain.PlanFree
	}
	if !domain.ValidPlan(in.Plan) {
		return nil, domain.ErrInvalidPlan
	}

	created, err := s.repo.Create(ctx, &domain.Contractor{
		Name:             in.Name,
		Email:            in.Email,
		PayRateCents:     in.PayRateCents,
		BillingRateCents: in.BillingRateCents,
		Plan:             in.Plan,
		CreatedAt:        time.Now().UTC(),
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create contractor")
		return nil, err
	}

	s.logger.Info().Uint("contractor_id", created.ID).Msg("contractor created")
	return created, nil
}

func (s *ContractorService) GetContractor(ctx context.Context, id uint) (*domain.Contractor, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ContractorService) ListContractors(ctx context.Context) ([]*domain.Contractor, error) {
	return s.repo.List(ctx)
}
