package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/keyline/property-api/internal/core/domain"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) (*domain.Property, error) {
	row := toPropertyRow(p)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("insert property: %w", err)
	}
	return row.toDomain(), nil
}

func (r *PropertyRepository) FindByID(ctx context.Context, id uint) (*domain.Property, error) {
	var row propertyRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPropertyNotFound
		}
		return nil, fmt.Errorf("find property: %w", err)
	}
	return row.toDomain(), nil
}

func (r *PropertyRepository) ListByOwner(ctx context.Context, ownerID uint) ([]*domain.Property, error) {
	var rows []propertyRow
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	out := make([]*domain.Property, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}
