package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// tables lists the schema in foreign-key dependency order.
var tables = []interface{}{
	&userRow{},
	&propertyRow{},
	&contractorRow{},
	&timeEntryRow{},
	&transactionRow{},
}

// openEntryIndex allows at most one open time entry per contractor.
// Both PostgreSQL and SQLite accept partial indexes in this form.
const openEntryIndex = `CREATE UNIQUE INDEX IF NOT EXISTS idx_time_entries_open_contractor
	ON time_entries (contractor_id) WHERE clock_out IS NULL`

// EnsureSchema creates any missing table and index. Existing tables are left
// untouched, so running it on every boot is safe. Any error must stop startup:
// the service does not serve requests against a schema it could not confirm.
func EnsureSchema(ctx context.Context, db *gorm.DB) error {
	tx := db.WithContext(ctx)
	m := tx.Migrator()

	for _, t := range tables {
		if m.HasTable(t) {
			continue
		}
		if err := m.CreateTable(t); err != nil {
			return fmt.Errorf("create table %T: %w", t, err)
		}
	}

	if err := tx.Exec(openEntryIndex).Error; err != nil {
		return fmt.Errorf("create open entry index: %w", err)
	}
	return nil
}
