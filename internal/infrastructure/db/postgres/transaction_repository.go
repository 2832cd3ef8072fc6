package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/keyline/property-api/internal/core/domain"
)

type TransactionRepository struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

func (r *TransactionRepository) Create(ctx context.Context, t *domain.Transaction) (*domain.Transaction, error) {
	row := toTransactionRow(t)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) && t.PropertyID != nil {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("insert transaction: %w", err)
	}
	return row.toDomain(), nil
}

func (r *TransactionRepository) ListByUser(ctx context.Context, userID uint) ([]*domain.Transaction, error) {
	var rows []transactionRow
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	out := make([]*domain.Transaction, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}

type ledgerSums struct {
	Debit  int64
	Credit int64
}

func (r *TransactionRepository) SumByUser(ctx context.Context, userID uint) (domain.Balance, error) {
	var sums ledgerSums
	err := r.db.WithContext(ctx).
		Model(&transactionRow{}).
		Select("COALESCE(SUM(debit_cents), 0) AS debit, COALESCE(SUM(credit_cents), 0) AS credit").
		Where("user_id = ?", userID).
		Scan(&sums).Error
	if err != nil {
		return domain.Balance{}, fmt.Errorf("sum transactions: %w", err)
	}
	return domain.Balance{DebitCents: sums.Debit, CreditCents: sums.Credit}, nil
}
