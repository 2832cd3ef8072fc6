package postgres

import (
	"time"

	"github.com/keyline/property-api/internal/core/domain"
)

// Table rows. Money columns hold integer cents; coordinates keep the
// decimal precision of the original schema.

type userRow struct {
	ID        uint      `gorm:"primaryKey"`
	Email     string    `gorm:"size:255;uniqueIndex;not null"`
	Password  string    `gorm:"size:255;not null"`
	Role      string    `gorm:"size:50;not null;default:tenant"`
	Plan      string    `gorm:"size:20;not null;default:free"`
	CreatedAt time.Time `gorm:"not null"`
}

func (userRow) TableName() string { return "users" }

type propertyRow struct {
	ID              uint      `gorm:"primaryKey"`
	OwnerID         uint      `gorm:"not null;index"`
	Owner           *userRow  `gorm:"foreignKey:OwnerID"`
	Address         string    `gorm:"type:text"`
	RentAmountCents int64     `gorm:"not null;default:0"`
	GeofenceRadius  int       `gorm:"not null;default:200;check:geofence_radius > 0"`
	Latitude        *float64  `gorm:"type:decimal(10,8)"`
	Longitude       *float64  `gorm:"type:decimal(11,8)"`
	CreatedAt       time.Time `gorm:"not null"`
}

func (propertyRow) TableName() string { return "properties" }

type contractorRow struct {
	ID               uint      `gorm:"primaryKey"`
	Name             string    `gorm:"size:255"`
	Email            string    `gorm:"size:255"`
	PayRateCents     int64     `gorm:"not null;default:0"`
	BillingRateCents int64     `gorm:"not null;default:0"`
	Plan             string    `gorm:"size:20;not null;default:free"`
	CreatedAt        time.Time `gorm:"not null"`
}

func (contractorRow) TableName() string { return "contractors" }

type timeEntryRow struct {
	ID           uint           `gorm:"primaryKey"`
	ContractorID uint           `gorm:"not null;index"`
	Contractor   *contractorRow `gorm:"foreignKey:ContractorID"`
	PropertyID   uint           `gorm:"not null;index"`
	Property     *propertyRow   `gorm:"foreignKey:PropertyID"`
	ClockIn      time.Time      `gorm:"not null"`
	ClockOut     *time.Time
	ClockInLat   float64   `gorm:"type:decimal(10,8)"`
	ClockInLng   float64   `gorm:"type:decimal(11,8)"`
	OffsiteFlag  bool      `gorm:"not null;default:false"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (timeEntryRow) TableName() string { return "time_entries" }

type transactionRow struct {
	ID          uint         `gorm:"primaryKey"`
	UserID      uint         `gorm:"not null;index"`
	User        *userRow     `gorm:"foreignKey:UserID"`
	Description string       `gorm:"type:text"`
	DebitCents  int64        `gorm:"not null;default:0"`
	CreditCents int64        `gorm:"not null;default:0"`
	Category    string       `gorm:"size:100"`
	PropertyID  *uint        `gorm:"index"`
	Property    *propertyRow `gorm:"foreignKey:PropertyID"`
	CreatedAt   time.Time    `gorm:"not null"`
}

func (transactionRow) TableName() string { return "transactions" }

// --- row <-> domain ---

func toUserRow(u *domain.User) userRow {
	return userRow{
		Email:     u.Email,
		Password:  u.PasswordHash,
		Role:      u.Role,
		Plan:      u.Plan,
		CreatedAt: u.CreatedAt,
	}
}

func (r *userRow) toDomain() *domain.User {
	return &domain.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.Password,
		Role:         r.Role,
		Plan:         r.Plan,
		CreatedAt:    r.CreatedAt.UTC(),
	}
}

func toPropertyRow(p *domain.Property) propertyRow {
	row := propertyRow{
		OwnerID:         p.OwnerID,
		Address:         p.Address,
		RentAmountCents: p.RentCents,
		GeofenceRadius:  p.GeofenceRadius,
		CreatedAt:       p.CreatedAt,
	}
	if p.Location != nil {
		lat, lng := p.Location.Lat, p.Location.Lng
		row.Latitude, row.Longitude = &lat, &lng
	}
	return row
}

func (r *propertyRow) toDomain() *domain.Property {
	p := &domain.Property{
		ID:             r.ID,
		OwnerID:        r.OwnerID,
		Address:        r.Address,
		RentCents:      r.RentAmountCents,
		GeofenceRadius: r.GeofenceRadius,
		CreatedAt:      r.CreatedAt.UTC(),
	}
	if r.Latitude != nil && r.Longitude != nil {
		p.Location = &domain.Coordinates{Lat: *r.Latitude, Lng: *r.Longitude}
	}
	return p
}

func toContractorRow(c *domain.Contractor) contractorRow {
	return contractorRow{
		Name:             c.Name,
		Email:            c.Email,
		PayRateCents:     c.PayRateCents,
		BillingRateCents: c.BillingRateCents,
		Plan:             c.Plan,
		CreatedAt:        c.CreatedAt,
	}
}

func (r *contractorRow) toDomain() *domain.Contractor {
	return &domain.Contractor{
		ID:               r.ID,
		Name:             r.Name,
		Email:            r.Email,
		PayRateCents:     r.PayRateCents,
		BillingRateCents: r.BillingRateCents,
		Plan:             r.Plan,
		CreatedAt:        r.CreatedAt.UTC(),
	}
}

func toTimeEntryRow(e *domain.TimeEntry) timeEntryRow {
	return timeEntryRow{
		ContractorID: e.ContractorID,
		PropertyID:   e.PropertyID,
		ClockIn:      e.ClockIn,
		ClockOut:     e.ClockOut,
		ClockInLat:   e.ClockInAt.Lat,
		ClockInLng:   e.ClockInAt.Lng,
		OffsiteFlag:  e.Offsite,
		CreatedAt:    e.CreatedAt,
	}
}

func (r *timeEntryRow) toDomain() *domain.TimeEntry {
	e := &domain.TimeEntry{
		ID:           r.ID,
		ContractorID: r.ContractorID,
		PropertyID:   r.PropertyID,
		ClockIn:      r.ClockIn.UTC(),
		ClockInAt:    domain.Coordinates{Lat: r.ClockInLat, Lng: r.ClockInLng},
		Offsite:      r.OffsiteFlag,
		CreatedAt:    r.CreatedAt.UTC(),
	}
	if r.ClockOut != nil {
		out := r.ClockOut.UTC()
		e.ClockOut = &out
	}
	return e
}

func toTransactionRow(t *domain.Transaction) transactionRow {
	return transactionRow{
		UserID:      t.UserID,
		Description: t.Description,
		DebitCents:  t.DebitCents,
		CreditCents: t.CreditCents,
		Category:    t.Category,
		PropertyID:  t.PropertyID,
		CreatedAt:   t.CreatedAt,
	}
}

func (r *transactionRow) toDomain() *domain.Transaction {
	return &domain.Transaction{
		ID:          r.ID,
		UserID:      r.UserID,
		Description: r.Description,
		DebitCents:  r.DebitCents,
		CreditCents: r.CreditCents,
		Category:    r.Category,
		PropertyID:  r.PropertyID,
		CreatedAt:   r.CreatedAt.UTC(),
	}
}
