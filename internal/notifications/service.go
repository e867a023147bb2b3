package notifications

import (
	"context"
	"time"

	"courtly/internal/bookings"
	"courtly/internal/intents"

	"github.com/google/uuid"
)

// Service adapts the event producer to the booking core's publisher
// contract.
type Service struct {
	producer EventProducer
}

var _ bookings.ConfirmationPublisher = (*Service)(nil)

func NewService(producer EventProducer) *Service {
	return &Service{producer: producer}
}

// PublishBookingConfirmed emits a booking.confirmed event
func (s *Service) PublishBookingConfirmed(ctx context.Context, booking *bookings.Booking) error {
	bookingID := booking.ID
	event := &BookingEvent{
		ID:          uuid.New(),
		Type:        EventBookingConfirmed,
		PlayerID:    booking.PlayerID,
		ClubID:      booking.ClubID,
		IntentID:    booking.IntentID,
		BookingID:   &bookingID,
		StationIDs:  booking.StationIDs(),
		StartTime:   booking.StartTime,
		EndTime:     booking.EndTime,
		TotalAmount: booking.TotalAmount,
		OccurredAt:  time.Now().UTC(),
	}
	return s.producer.Publish(ctx, event)
}

// PublishHoldExpired emits a hold.expired event
func (s *Service) PublishHoldExpired(ctx context.Context, intent *intents.BookingIntent) error {
	event := &BookingEvent{
		ID:         uuid.New(),
		Type:       EventHoldExpired,
		PlayerID:   intent.PlayerID,
		ClubID:     intent.ClubID,
		IntentID:   intent.ID,
		StationIDs: intent.StationIDs(),
		StartTime:  intent.StartTime,
		EndTime:    intent.EndTime,
		OccurredAt: time.Now().UTC(),
	}
	return s.producer.Publish(ctx, event)
}

// Close releases the producer
func (s *Service) Close() error {
	if s.producer == nil {
		return nil
	}
	return s.producer.Close()
}
