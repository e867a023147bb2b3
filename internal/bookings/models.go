package bookings

import (
	"time"

	"github.com/google/uuid"
)

// Booking is a confirmed reservation. It is created only by confirming an
// intent; the originating intent id is kept as an audit link.
type Booking struct {
	ID          uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	IntentID    uuid.UUID   `gorm:"type:uuid;uniqueIndex;not null" json:"intent_id"`
	PlayerID    uuid.UUID   `gorm:"type:uuid;index;not null" json:"player_id"`
	ClubID      uuid.UUID   `gorm:"type:uuid;index;not null" json:"club_id"`
	BookingType BookingType `gorm:"type:varchar(30);not null" json:"booking_type"`
	StartTime   time.Time   `gorm:"index;not null" json:"start_time"`
	EndTime     time.Time   `gorm:"not null" json:"end_time"`
	Status      Status      `gorm:"type:varchar(20);check:status IN ('CONFIRMED', 'CANCELLED', 'COMPLETED');default:'CONFIRMED'" json:"status"`

	// Payment reference reported by the payment collaborator.
	PaymentRef string `gorm:"type:varchar(100)" json:"payment_ref"`

	// Priced subtotals copied from the intent at confirmation.
	ChargeAmount   float64 `gorm:"not null;default:0" json:"charge_amount"`
	DiscountAmount float64 `gorm:"not null;default:0" json:"discount_amount"`
	FeeAmount      float64 `gorm:"not null;default:0" json:"fee_amount"`
	TaxAmount      float64 `gorm:"not null;default:0" json:"tax_amount"`
	TotalAmount    float64 `gorm:"not null;default:0" json:"total_amount"`

	// Optimistic concurrency: checked and bumped on every status write.
	Version int `gorm:"not null;default:1" json:"version"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`

	// Relationships
	Stations []BookingStation `json:"stations,omitempty" gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;"`
}

// BookingStation links a booking to one of the stations it occupies.
type BookingStation struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null" json:"booking_id"`
	StationID uuid.UUID `gorm:"type:uuid;index;not null" json:"station_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName sets the table name for Booking
func (Booking) TableName() string {
	return "bookings"
}

// TableName sets the table name for BookingStation
func (BookingStation) TableName() string {
	return "booking_stations"
}

// Helper methods for booking management
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// StationIDs returns the ids of the stations this booking occupies.
func (b *Booking) StationIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(b.Stations))
	for _, s := range b.Stations {
		ids = append(ids, s.StationID)
	}
	return ids
}

// Overlaps reports half-open window overlap with [start, end).
func (b *Booking) Overlaps(start, end time.Time) bool {
	return b.StartTime.Before(end) && start.Before(b.EndTime)
}
