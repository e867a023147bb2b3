package database

import (
	"gorm.io/gorm"
)

// applyConstraints adds the indexes AutoMigrate cannot express. The overlap
// queries join through the station link tables and filter on the time range,
// so both sides of that access path get covering indexes.
func applyConstraints(db *gorm.DB) error {
	statements := []string{
		// Conflict scans: station link first, then the time window on the parent row.
		`CREATE INDEX IF NOT EXISTS idx_intent_stations_station_intent
			ON intent_stations (station_id, intent_id)`,
		`CREATE INDEX IF NOT EXISTS idx_booking_stations_station_booking
			ON booking_stations (station_id, booking_id)`,
		`CREATE INDEX IF NOT EXISTS idx_booking_intents_status_window
			ON booking_intents (status, start_time, end_time)`,
		`CREATE INDEX IF NOT EXISTS idx_bookings_status_window
			ON bookings (status, start_time, end_time)`,

		// Expiry sweep scans PENDING intents by deadline.
		`CREATE INDEX IF NOT EXISTS idx_booking_intents_pending_expiry
			ON booking_intents (expires_at) WHERE status = 'PENDING'`,

		// Player history listing.
		`CREATE INDEX IF NOT EXISTS idx_bookings_player_start
			ON bookings (player_id, start_time DESC)`,

		// Rate lookup by club and kind.
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_rates_club_station_booking
			ON rates (club_id, station_type, booking_type)`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}

	return nil
}
