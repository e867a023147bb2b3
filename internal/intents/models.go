package intents

import (
	"time"

	"github.com/google/uuid"
)

// BookingIntent is a tentative reservation. While PENDING and unexpired it
// occupies its stations for its window exclusively.
type BookingIntent struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PlayerID    uuid.UUID `gorm:"type:uuid;index;not null" json:"player_id"`
	ClubID      uuid.UUID `gorm:"type:uuid;index;not null" json:"club_id"`
	BookingType string    `gorm:"type:varchar(30);not null" json:"booking_type"`
	StartTime   time.Time `gorm:"index;not null" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`
	Status      Status    `gorm:"type:varchar(20);check:status IN ('PENDING', 'CONFIRMED', 'EXPIRED', 'CANCELLED');default:'PENDING'" json:"status"`
	ExpiresAt   time.Time `gorm:"index;not null" json:"expires_at"`

	// Optimistic concurrency: checked and bumped on every status write.
	Version int `gorm:"not null;default:1" json:"version"`

	// Priced subtotals, attached by the lifecycle manager after pricing.
	// Line items are recomputable from the same inputs and not persisted.
	ChargeAmount   float64 `gorm:"not null;default:0" json:"charge_amount"`
	DiscountAmount float64 `gorm:"not null;default:0" json:"discount_amount"`
	FeeAmount      float64 `gorm:"not null;default:0" json:"fee_amount"`
	TaxAmount      float64 `gorm:"not null;default:0" json:"tax_amount"`
	TotalAmount    float64 `gorm:"not null;default:0" json:"total_amount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Stations []IntentStation `json:"stations,omitempty" gorm:"foreignKey:IntentID;constraint:OnDelete:CASCADE;"`
}

// IntentStation links an intent to one of the stations it holds.
type IntentStation struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	IntentID  uuid.UUID `gorm:"type:uuid;index;not null" json:"intent_id"`
	StationID uuid.UUID `gorm:"type:uuid;index;not null" json:"station_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for BookingIntent
func (BookingIntent) TableName() string {
	return "booking_intents"
}

// TableName sets the table name for IntentStation
func (IntentStation) TableName() string {
	return "intent_stations"
}

// IsExpired reports whether the hold has lapsed at the given instant.
// Expiry is a wall-clock comparison, independent of whether the sweep
// has already flipped the stored status.
func (i *BookingIntent) IsExpired(now time.Time) bool {
	return !i.ExpiresAt.After(now)
}

// IsLive reports whether the intent still blocks its stations: PENDING
// and not yet expired.
func (i *BookingIntent) IsLive(now time.Time) bool {
	return i.Status == StatusPending && !i.IsExpired(now)
}

// StationIDs returns the ids of the stations this intent holds.
func (i *BookingIntent) StationIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(i.Stations))
	for _, s := range i.Stations {
		ids = append(ids, s.StationID)
	}
	return ids
}

// Overlaps reports half-open window overlap with [start, end).
func (i *BookingIntent) Overlaps(start, end time.Time) bool {
	return i.StartTime.Before(end) && start.Before(i.EndTime)
}
