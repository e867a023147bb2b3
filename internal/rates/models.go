package rates

import (
	"time"

	"github.com/google/uuid"
)

// Rate prices one station type for one booking type.
type Rate struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClubID      uuid.UUID `gorm:"type:uuid;index;not null" json:"club_id"`
	StationType string    `gorm:"type:varchar(20);not null;index:idx_rates_lookup" json:"station_type"`
	BookingType string    `gorm:"type:varchar(30);not null;index:idx_rates_lookup" json:"booking_type"`
	HourlyRate  float64   `gorm:"not null" json:"hourly_rate"`
	Currency    string    `gorm:"type:varchar(3);default:'USD'" json:"currency"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName sets the table name for Rate
func (Rate) TableName() string {
	return "rates"
}
