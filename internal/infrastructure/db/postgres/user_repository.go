package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/keyline/property-api/internal/core/domain"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	row := toUserRow(user)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return row.toDomain(), nil
}

// CreateIfAbsent issues INSERT ... ON CONFLICT (email) DO NOTHING, so two
// concurrent callers can never both create the same account.
func (r *UserRepository) CreateIfAbsent(ctx context.Context, user *domain.User) (*domain.User, bool, error) {
	row := toUserRow(user)
	res := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "email"}}, DoNothing: true}).
		Create(&row)
	if res.Error != nil {
		return nil, false, fmt.Errorf("insert user: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, false, nil
	}
	return row.toDomain(), true, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return row.toDomain(), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return row.toDomain(), nil
}
