package ports

import (
	"context"

	"github.com/keyline/property-api/internal/core/domain"
)

type TransactionRepository interface {
	Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error)
	ListByUser(ctx context.Context, userID uint) ([]*domain.Transaction, error)
	SumByUser(ctx context.Context, userID uint) (domain.Balance, error)
}

type RecordTransactionInput struct {
	UserID      uint
	Description string
	Category    string
	DebitCents  int64
	CreditCents int64
	PropertyID  *uint
}

type LedgerService interface {
	RecordTransaction(ctx context.Context, input RecordTransactionInput) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, userID uint) ([]*domain.Transaction, error)
	Balance(ctx context.Context, userID uint) (domain.Balance, error)
}
