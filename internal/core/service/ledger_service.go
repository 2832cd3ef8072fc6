package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/keyline/property-api/internal/core/domain"
	"github.com/keyline/property-api/internal/core/ports"
)

type LedgerService struct {
	repo   ports.TransactionRepository
	logger zerolog.Logger
}

func NewLedgerService(repo ports.TransactionRepository, logger zerolog.Logger) *LedgerService {
	return &LedgerService{repo: repo, logger: logger}
}

// RecordTransaction appends a ledger line for the user. Exactly one of debit
// or credit must be set.
func (s *LedgerService) RecordTransaction(ctx context.Context, in ports.RecordTransactionInput) (*domain.Transaction, error) {
	tx := &domain.Transaction{
		UserID:      in.UserID,
		Description: in.Description,
		Category:    in.Category,
		DebitCents:  in.DebitCents,
		CreditCents: in.CreditCents,
		PropertyID:  in.PropertyID,
		CreatedAt:   time.Now().UTC(),
	}
	if err := tx.ValidateAmounts(); err != nil {
		return nil, err
	}

	created, err := s.repo.Create(ctx, tx)
	if err != nil {
		s.logger.Error().Err(err).Uint("user_id", in.UserID).Msg("failed to record transaction")
		return nil, err
	}

	s.logger.Info().
		Uint("transaction_id", created.ID).
		Uint("user_id", in.UserID).
		Str("category", in.Category).
		Msg("transaction recorded")
	return created, nil
}

func (s *LedgerService) ListTransactions(ctx context.Context, userID uint) ([]*domain.Transaction, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *LedgerService) Balance(ctx context.Context, userID uint) (domain.Balance, error) {
	return s.repo.SumByUser(ctx, userID)
}
