package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType identifies a booking lifecycle event on the wire.
type EventType string

const (
	EventBookingConfirmed EventType = "booking.confirmed"
	EventHoldExpired      EventType = "hold.expired"
)

// BookingEvent is the message published for downstream consumers
// (receipts, schedule refreshes, player messaging).
type BookingEvent struct {
	ID          uuid.UUID   `json:"id"`
	Type        EventType   `json:"type"`
	PlayerID    uuid.UUID   `json:"player_id"`
	ClubID      uuid.UUID   `json:"club_id"`
	IntentID    uuid.UUID   `json:"intent_id"`
	BookingID   *uuid.UUID  `json:"booking_id,omitempty"`
	StationIDs  []uuid.UUID `json:"station_ids"`
	StartTime   time.Time   `json:"start_time"`
	EndTime     time.Time   `json:"end_time"`
	TotalAmount float64     `json:"total_amount,omitempty"`
	OccurredAt  time.Time   `json:"occurred_at"`
}

// ToJSON serializes the event for the wire
func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey routes all events of one player to the same partition so
// consumers see them in order.
func (e *BookingEvent) PartitionKey() string {
	return e.PlayerID.String()
}
