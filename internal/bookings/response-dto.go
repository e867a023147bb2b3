package bookings

import (
	"time"

	"courtly/internal/pricing"

	"github.com/google/uuid"
)

// HoldResponse represents an accepted hold
type HoldResponse struct {
	IntentID   string                `json:"intent_id"`
	Status     string                `json:"status"`
	StationIDs []uuid.UUID           `json:"station_ids"`
	StartTime  time.Time             `json:"start_time"`
	EndTime    time.Time             `json:"end_time"`
	ExpiresAt  time.Time             `json:"expires_at"`
	Amount     pricing.BookingAmount `json:"amount"`
}

// BookingResponse represents a confirmed booking
type BookingResponse struct {
	BookingID   string      `json:"booking_id"`
	IntentID    string      `json:"intent_id"`
	Status      string      `json:"status"`
	StationIDs  []uuid.UUID `json:"station_ids"`
	StartTime   time.Time   `json:"start_time"`
	EndTime     time.Time   `json:"end_time"`
	BookingType string      `json:"booking_type"`
	TotalAmount float64     `json:"total_amount"`
	PaymentRef  string      `json:"payment_ref"`
	CreatedAt   time.Time   `json:"created_at"`
}

// NewHoldResponse builds the response for an accepted hold
func NewHoldResponse(result *HoldResult) HoldResponse {
	return HoldResponse{
		IntentID:   result.Intent.ID.String(),
		Status:     result.Intent.Status.String(),
		StationIDs: result.Intent.StationIDs(),
		StartTime:  result.Intent.StartTime,
		EndTime:    result.Intent.EndTime,
		ExpiresAt:  result.Intent.ExpiresAt,
		Amount:     *result.Amount,
	}
}

// NewBookingResponse builds the response for a booking
func NewBookingResponse(b *Booking) BookingResponse {
	return BookingResponse{
		BookingID:   b.ID.String(),
		IntentID:    b.IntentID.String(),
		Status:      b.Status.String(),
		StationIDs:  b.StationIDs(),
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		BookingType: b.BookingType.String(),
		TotalAmount: b.TotalAmount,
		PaymentRef:  b.PaymentRef,
		CreatedAt:   b.CreatedAt,
	}
}

// NewBookingListResponse maps a booking slice to responses
func NewBookingListResponse(list []Booking) []BookingResponse {
	out := make([]BookingResponse, 0, len(list))
	for i := range list {
		out = append(out, NewBookingResponse(&list[i]))
	}
	return out
}
