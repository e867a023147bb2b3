package bookings

import "time"

// CreateHoldRequest represents a hold request body
type CreateHoldRequest struct {
	StationIDs  []string  `json:"station_ids" validate:"required,min=1,dive,uuid4"`
	StartTime   time.Time `json:"start_time" validate:"required"`
	EndTime     time.Time `json:"end_time" validate:"required,gtfield=StartTime"`
	BookingType string    `json:"booking_type" validate:"required,oneof=STANDARD COACHING TOURNAMENT"`
}

// ConfirmHoldRequest carries the payment outcome for an intent
type ConfirmHoldRequest struct {
	PaymentReference string `json:"payment_reference" validate:"required"`
	PaymentStatus    string `json:"payment_status" validate:"required,oneof=SUCCEEDED FAILED"`
	FailureReason    string `json:"failure_reason"`
}

// AvailabilityQuery represents the availability window query parameters
type AvailabilityQuery struct {
	StationIDs []string  `form:"station_ids" validate:"required,min=1,dive,uuid4"`
	StartTime  time.Time `form:"start_time" time_format:"2006-01-02T15:04:05Z07:00" validate:"required"`
	EndTime    time.Time `form:"end_time" time_format:"2006-01-02T15:04:05Z07:00" validate:"required,gtfield=StartTime"`
}
