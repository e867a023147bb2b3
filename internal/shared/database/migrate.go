package database

import (
	"fmt"

	"courtly/internal/bookings"
	"courtly/internal/intents"
	"courtly/internal/rates"
	"courtly/internal/stations"

	"gorm.io/gorm"
)

// AutoMigrate runs the schema migrations for all domain models
func AutoMigrate(db *gorm.DB) error {
	// uuid_generate_v4() needs the extension before any table uses it as a default
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid-ossp extension: %w", err)
	}

	err := db.AutoMigrate(
		&stations.Station{},
		&rates.Rate{},
		&intents.BookingIntent{},
		&intents.IntentStation{},
		&bookings.Booking{},
		&bookings.BookingStation{},
	)
	if err != nil {
		return fmt.Errorf("failed to run auto migrations: %w", err)
	}

	if err := applyConstraints(db); err != nil {
		return fmt.Errorf("failed to apply constraints: %w", err)
	}

	return nil
}
