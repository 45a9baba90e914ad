package db

import (
	"fmt"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/contabilisync/backend/models"
)

// Connect opens the Postgres connection from DATABASE_URL and returns the
// handle. Callers own the handle and pass it to the services that need it;
// there is no package-level connection.
func Connect() (*gorm.DB, error) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	gdb, err := gorm.Open(postgres.Open(dbURL), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return gdb, nil
}

// Migrate runs schema migrations: the entity tables plus the partial unique
// index that backs the one-slot-per-accountant invariant. The index only
// covers non-cancelled rows, so cancelling an appointment frees its slot.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&models.User{},
		&models.Appointment{},
		&models.Document{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Partial index syntax is shared by Postgres and SQLite, which keeps the
	// invariant enforced under the test driver as well.
	if err := gdb.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_slot
		 ON appointments (accountant_id, date, time)
		 WHERE status <> 'cancelled'`,
	).Error; err != nil {
		return fmt.Errorf("failed to create slot index: %w", err)
	}
	return nil
}
