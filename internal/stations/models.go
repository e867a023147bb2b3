package stations

import (
	"time"

	"github.com/google/uuid"
)

// Type classifies the physical unit a station represents.
type Type string

const (
	TypeCourt   Type = "COURT"
	TypeTable   Type = "TABLE"
	TypeConsole Type = "CONSOLE"
	TypeLane    Type = "LANE"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeCourt, TypeTable, TypeConsole, TypeLane:
		return true
	}
	return false
}

func (t Type) String() string {
	return string(t)
}

// Station is a physical bookable unit belonging to one club. Write paths
// (club administration) live outside this service; this is the read-only
// directory the booking core consults.
type Station struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ClubID    uuid.UUID `gorm:"type:uuid;index;not null" json:"club_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Type      Type      `gorm:"type:varchar(20);not null" json:"type"`
	Status    string    `gorm:"type:varchar(20);check:status IN ('ACTIVE', 'INACTIVE');default:'ACTIVE'" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName sets the table name for Station
func (Station) TableName() string {
	return "stations"
}

// IsActive reports whether the station can currently be booked.
func (s *Station) IsActive() bool {
	return s.Status == "ACTIVE"
}
