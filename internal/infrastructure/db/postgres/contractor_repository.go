package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/keyline/property-api/internal/core/domain"
)

type ContractorRepository struct {
	db *gorm.DB
}

func NewContractorRepository(db *gorm.DB) *ContractorRepository {
	return &ContractorRepository{db: db}
}

func (r *ContractorRepository) Create(ctx context.Context, c *domain.Contractor) (*domain.Contractor, error) {
	row := toContractorRow(c)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("insert contractor: %w", err)
	}
	return row.toDomain(), nil
}

func (r *ContractorRepository) FindByID(ctx context.Context, id uint) (*domain.Contractor, error) {
	var row contractorRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrContractorNotFound
		}
		return nil, fmt.Errorf("find contractor: %w", err)
	}
	return row.toDomain(), nil
}

func (r *ContractorRepository) List(ctx context.Context) ([]*domain.Contractor, error) {
	var rows []contractorRow
	if err := r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list contractors: %w", err)
	}
	out := make([]*domain.Contractor, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}
