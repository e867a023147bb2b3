package bookings

// BookingType distinguishes how a station window is being used; rates are
// resolved per (station type, booking type) pair.
type BookingType string

const (
	TypeStandard   BookingType = "STANDARD"
	TypeCoaching   BookingType = "COACHING"
	TypeTournament BookingType = "TOURNAMENT"
)

func (t BookingType) IsValid() bool {
	switch t {
	case TypeStandard, TypeCoaching, TypeTournament:
		return true
	}
	return false
}

func (t BookingType) String() string {
	return string(t)
}
