package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/keyline/property-api/internal/core/domain"
)

type TimeEntryRepository struct {
	db *gorm.DB
}

func NewTimeEntryRepository(db *gorm.DB) *TimeEntryRepository {
	return &TimeEntryRepository{db: db}
}

func (r *TimeEntryRepository) Create(ctx context.Context, e *domain.TimeEntry) (*domain.TimeEntry, error) {
	row := toTimeEntryRow(e)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrAlreadyClockedIn
		}
		return nil, fmt.Errorf("insert time entry: %w", err)
	}
	return row.toDomain(), nil
}

func (r *TimeEntryRepository) FindByID(ctx context.Context, id uint) (*domain.TimeEntry, error) {
	var row timeEntryRow
	if err := r.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTimeEntryNotFound
		}
		return nil, fmt.Errorf("find time entry: %w", err)
	}
	return row.toDomain(), nil
}

func (r *TimeEntryRepository) FindOpenByContractor(ctx context.Context, contractorID uint) (*domain.TimeEntry, error) {
	var row timeEntryRow
	err := r.db.WithContext(ctx).
		Where("contractor_id = ? AND clock_out IS NULL", contractorID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrTimeEntryNotFound
		}
		return nil, fmt.Errorf("find open time entry: %w", err)
	}
	return row.toDomain(), nil
}

// Close sets clock_out only while it is still NULL, so an entry is mutated
// at most once.
func (r *TimeEntryRepository) Close(ctx context.Context, id uint, clockOut time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&timeEntryRow{}).
		Where("id = ? AND clock_out IS NULL", id).
		Update("clock_out", clockOut)
	if res.Error != nil {
		return fmt.Errorf("close time entry: %w", res.Error)
	}
	if res.RowsAffected == 1 {
		return nil
	}

	if _, err := r.FindByID(ctx, id); err != nil {
		return err
	}
	return domain.ErrEntryClosed
}

func (r *TimeEntryRepository) ListByContractor(ctx context.Context, contractorID uint) ([]*domain.TimeEntry, error) {
	var rows []timeEntryRow
	if err := r.db.WithContext(ctx).Where("contractor_id = ?", contractorID).Order("clock_in").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list time entries: %w", err)
	}
	out := make([]*domain.TimeEntry, len(rows))
	for i := range rows {
		out[i] = rows[i].toDomain()
	}
	return out, nil
}
