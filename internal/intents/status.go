package intents

// Status is the lifecycle state of a booking intent.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusExpired   Status = "EXPIRED"
	StatusCancelled Status = "CANCELLED"
)

// IsValid checks if the intent status is a known one
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusExpired, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the status admits no further transitions.
// CONFIRMED, EXPIRED and CANCELLED are all terminal.
func (s Status) IsTerminal() bool {
	return s == StatusConfirmed || s == StatusExpired || s == StatusCancelled
}

// CanTransitionTo reports whether a transition from s to target is legal.
// Only PENDING has outgoing transitions.
func (s Status) CanTransitionTo(target Status) bool {
	if s != StatusPending {
		return false
	}
	switch target {
	case StatusConfirmed, StatusExpired, StatusCancelled:
		return true
	}
	return false
}
