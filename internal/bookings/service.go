package bookings

import (
	"context"
	"errors"
	"time"

	"courtly/internal/intents"
	"courtly/internal/pricing"
	"courtly/internal/rates"
	"courtly/internal/stations"
	"courtly/pkg/logger"

	"github.com/google/uuid"
)

// ConfirmationPublisher publishes lifecycle events downstream (defined
// here to avoid a dependency on the notifications package).
type ConfirmationPublisher interface {
	PublishBookingConfirmed(ctx context.Context, booking *Booking) error
	PublishHoldExpired(ctx context.Context, intent *intents.BookingIntent) error
}

// HoldRequest asks for a tentative reservation of stations over a window.
type HoldRequest struct {
	PlayerID    uuid.UUID
	StationIDs  []uuid.UUID
	StartTime   time.Time
	EndTime     time.Time
	BookingType BookingType
}

// HoldResult is an accepted hold: the persisted intent plus its price.
type HoldResult struct {
	Intent *intents.BookingIntent
	Amount *pricing.BookingAmount
}

// PaymentOutcome is the terminal payment result reported by the payment
// collaborator for an intent.
type PaymentOutcome struct {
	Reference     string
	Succeeded     bool
	FailureReason string
}

// Config carries the booking policy knobs.
type Config struct {
	HoldTTL   time.Duration
	Promotion *pricing.Promotion
}

// Service is the booking lifecycle manager: the only writer of intent and
// booking status transitions.
type Service interface {
	RequestHold(ctx context.Context, req HoldRequest) (*HoldResult, error)
	Confirm(ctx context.Context, intentID uuid.UUID, outcome PaymentOutcome) (*Booking, error)
	Cancel(ctx context.Context, intentID uuid.UUID) error

	// ExpireSweep reclaims PENDING intents whose hold lapsed before now,
	// returning how many it transitioned. Per-intent failures are logged
	// and skipped; the batch never aborts.
	ExpireSweep(ctx context.Context, now time.Time) (int, error)

	GetOverlappingBookings(ctx context.Context, stationIDs []uuid.UUID, start, end time.Time) ([]Booking, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error)
	GetPlayerBookings(ctx context.Context, playerID uuid.UUID, limit, offset int) ([]Booking, error)
}

type service struct {
	intents   intents.Repository
	bookings  Repository
	detector  *ConflictDetector
	stations  stations.Service
	rates     rates.Service
	engine    *pricing.Engine
	publisher ConfirmationPublisher
	cfg       Config
	log       *logger.Logger
	now       func() time.Time
}

// NewService creates the lifecycle manager. The publisher may be nil;
// event publication is best-effort.
func NewService(
	intentRepo intents.Repository,
	bookingRepo Repository,
	detector *ConflictDetector,
	stationService stations.Service,
	rateService rates.Service,
	engine *pricing.Engine,
	publisher ConfirmationPublisher,
	cfg Config,
	log *logger.Logger,
) Service {
	if cfg.HoldTTL <= 0 {
		cfg.HoldTTL = 10 * time.Minute
	}
	return &service{
		intents:   intentRepo,
		bookings:  bookingRepo,
		detector:  detector,
		stations:  stationService,
		rates:     rateService,
		engine:    engine,
		publisher: publisher,
		cfg:       cfg,
		log:       log,
		now:       time.Now,
	}
}

func (s *service) RequestHold(ctx context.Context, req HoldRequest) (*HoldResult, error) {
	if len(req.StationIDs) == 0 {
		return nil, NewError(KindInvalidRequest, "at least one station is required")
	}
	if !req.EndTime.After(req.StartTime) {
		return nil, NewError(KindInvalidRequest, "end time must be after start time")
	}
	if !req.BookingType.IsValid() {
		return nil, NewError(KindInvalidRequest, "unknown booking type")
	}

	stationList, err := s.stations.ResolveBookable(ctx, req.StationIDs)
	if err != nil {
		if errors.Is(err, stations.ErrStationNotFound) ||
			errors.Is(err, stations.ErrStationInactive) ||
			errors.Is(err, stations.ErrMixedClubs) {
			return nil, WrapError(KindInvalidRequest, "stations cannot be booked", err)
		}
		return nil, WrapError(KindStoreUnavailable, "station lookup failed", err)
	}

	// Fast pre-check without station locks. The authoritative re-check
	// happens inside the insert transaction.
	conflict, err := s.detector.HasConflict(ctx, req.StationIDs, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if conflict {
		return nil, NewError(KindSlotUnavailable, "requested window overlaps an existing booking or hold")
	}

	now := s.now().UTC()
	intent := &intents.BookingIntent{
		ID:          uuid.New(),
		PlayerID:    req.PlayerID,
		ClubID:      stationList[0].ClubID,
		BookingType: req.BookingType.String(),
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      intents.StatusPending,
		ExpiresAt:   now.Add(s.cfg.HoldTTL),
		Version:     1,
	}
	for _, st := range stationList {
		intent.Stations = append(intent.Stations, intents.IntentStation{
			ID:        uuid.New(),
			IntentID:  intent.ID,
			StationID: st.ID,
		})
	}

	amount, err := s.price(ctx, intent, stationList)
	if err != nil {
		return nil, err
	}
	intent.ChargeAmount = amount.ChargeAmount
	intent.DiscountAmount = amount.DiscountAmount
	intent.FeeAmount = amount.FeeAmount
	intent.TaxAmount = amount.TaxAmount
	intent.TotalAmount = amount.TotalAmount

	if err := s.intents.CreateWithConflictCheck(ctx, intent, now); err != nil {
		switch {
		case errors.Is(err, intents.ErrOverlapConflict):
			return nil, WrapError(KindSlotUnavailable, "requested window was taken concurrently", err)
		case errors.Is(err, intents.ErrStationsNotFound):
			return nil, WrapError(KindInvalidRequest, "stations cannot be booked", err)
		default:
			return nil, WrapError(KindStoreUnavailable, "failed to persist hold", err)
		}
	}

	s.log.LogHoldCreated(ctx, intent.ID.String(), intent.PlayerID.String(), intent.ExpiresAt)
	return &HoldResult{Intent: intent, Amount: amount}, nil
}

func (s *service) Confirm(ctx context.Context, intentID uuid.UUID, outcome PaymentOutcome) (*Booking, error) {
	if !outcome.Succeeded {
		return nil, NewError(KindInvalidRequest, "payment outcome is not successful")
	}

	intent, err := s.intents.GetByID(ctx, intentID)
	if err != nil {
		if errors.Is(err, intents.ErrIntentNotFound) {
			return nil, WrapError(KindIntentNotFound, "intent does not exist", err)
		}
		return nil, WrapError(KindStoreUnavailable, "intent lookup failed", err)
	}

	if intent.Status != intents.StatusPending {
		return nil, NewError(KindIntentAlreadyFinalized, "intent is already "+intent.Status.String())
	}
	if intent.IsExpired(s.now().UTC()) {
		return nil, NewError(KindIntentExpired, "hold expired before confirmation")
	}

	booking := &Booking{
		ID:             uuid.New(),
		IntentID:       intent.ID,
		PlayerID:       intent.PlayerID,
		ClubID:         intent.ClubID,
		BookingType:    BookingType(intent.BookingType),
		StartTime:      intent.StartTime,
		EndTime:        intent.EndTime,
		Status:         StatusConfirmed,
		PaymentRef:     outcome.Reference,
		ChargeAmount:   intent.ChargeAmount,
		DiscountAmount: intent.DiscountAmount,
		FeeAmount:      intent.FeeAmount,
		TaxAmount:      intent.TaxAmount,
		TotalAmount:    intent.TotalAmount,
		Version:        1,
	}
	for _, st := range intent.Stations {
		booking.Stations = append(booking.Stations, BookingStation{
			ID:        uuid.New(),
			BookingID: booking.ID,
			StationID: st.StationID,
		})
	}

	if err := s.bookings.ConfirmFromIntent(ctx, intent, booking); err != nil {
		if errors.Is(err, ErrConfirmLost) {
			return nil, WrapError(KindIntentAlreadyFinalized, "intent was finalized concurrently", err)
		}
		return nil, WrapError(KindStoreUnavailable, "failed to confirm booking", err)
	}

	s.log.LogBookingConfirmed(ctx, booking.ID.String(), intent.ID.String(), booking.PlayerID.String())

	if s.publisher != nil {
		if err := s.publisher.PublishBookingConfirmed(ctx, booking); err != nil {
			// Event delivery is best-effort; the booking is already durable.
			s.log.ErrorWithContext(ctx, "failed to publish booking confirmation", err, map[string]interface{}{
				"booking_id": booking.ID.String(),
			})
		}
	}

	return booking, nil
}

func (s *service) Cancel(ctx context.Context, intentID uuid.UUID) error {
	intent, err := s.intents.GetByID(ctx, intentID)
	if err != nil {
		if errors.Is(err, intents.ErrIntentNotFound) {
			return WrapError(KindIntentNotFound, "intent does not exist", err)
		}
		return WrapError(KindStoreUnavailable, "intent lookup failed", err)
	}

	if intent.Status != intents.StatusPending {
		return NewError(KindInvalidStateTransition, "intent is already "+intent.Status.String())
	}

	ok, err := s.intents.UpdateStatusCAS(ctx, intent.ID, intents.StatusPending, intents.StatusCancelled, intent.Version)
	if err != nil {
		return WrapError(KindStoreUnavailable, "failed to cancel hold", err)
	}
	if !ok {
		return NewError(KindInvalidStateTransition, "intent was finalized concurrently")
	}

	s.log.LogHoldCancelled(ctx, intent.ID.String(), intent.PlayerID.String())
	return nil
}

func (s *service) ExpireSweep(ctx context.Context, now time.Time) (int, error) {
	started := s.now()

	expired, err := s.intents.FindExpiredUnconfirmed(ctx, now)
	if err != nil {
		return 0, WrapError(KindStoreUnavailable, "expired intent lookup failed", err)
	}

	processed := 0
	for i := range expired {
		intent := &expired[i]

		ok, err := s.intents.UpdateStatusCAS(ctx, intent.ID, intents.StatusPending, intents.StatusExpired, intent.Version)
		if err != nil {
			// Non-fatal: the next scheduled run picks this intent up again.
			s.log.ErrorWithContext(ctx, "failed to expire intent", err, map[string]interface{}{
				"intent_id": intent.ID.String(),
			})
			continue
		}
		if !ok {
			// Lost the race against a concurrent confirm. Confirm wins.
			continue
		}

		processed++

		if s.publisher != nil {
			if err := s.publisher.PublishHoldExpired(ctx, intent); err != nil {
				s.log.ErrorWithContext(ctx, "failed to publish hold expiry", err, map[string]interface{}{
					"intent_id": intent.ID.String(),
				})
			}
		}
	}

	s.log.LogSweepRun(ctx, processed, s.now().Sub(started))
	return processed, nil
}

func (s *service) GetOverlappingBookings(ctx context.Context, stationIDs []uuid.UUID, start, end time.Time) ([]Booking, error) {
	result, err := s.bookings.FindOverlapping(ctx, stationIDs, start, end)
	if err != nil {
		return nil, WrapError(KindStoreUnavailable, "booking overlap lookup failed", err)
	}
	return result, nil
}

func (s *service) GetBooking(ctx context.Context, bookingID uuid.UUID) (*Booking, error) {
	booking, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, ErrBookingNotFound) {
			return nil, WrapError(KindBookingNotFound, "booking does not exist", err)
		}
		return nil, WrapError(KindStoreUnavailable, "booking lookup failed", err)
	}
	return booking, nil
}

func (s *service) GetPlayerBookings(ctx context.Context, playerID uuid.UUID, limit, offset int) ([]Booking, error) {
	result, err := s.bookings.GetByPlayerID(ctx, playerID, limit, offset)
	if err != nil {
		return nil, WrapError(KindStoreUnavailable, "booking lookup failed", err)
	}
	return result, nil
}

// price builds the pricing context and runs the amount engine.
func (s *service) price(ctx context.Context, intent *intents.BookingIntent, stationList []stations.Station) (*pricing.BookingAmount, error) {
	rateMap, err := s.rates.ResolveForStations(ctx, stationList, intent.BookingType)
	if err != nil {
		if errors.Is(err, rates.ErrRateNotFound) {
			return nil, WrapError(KindPricingFailure, "rates are not configured for the requested stations", err)
		}
		return nil, WrapError(KindStoreUnavailable, "rate lookup failed", err)
	}

	bc := &pricing.BookingContext{
		IntentID:    intent.ID,
		PlayerID:    intent.PlayerID,
		ClubID:      intent.ClubID,
		BookingType: intent.BookingType,
		StartTime:   intent.StartTime,
		EndTime:     intent.EndTime,
		Rates:       rateMap,
		Promotion:   s.cfg.Promotion,
	}

	amount, err := s.engine.CalculateAmount(ctx, bc)
	if err != nil {
		return nil, WrapError(KindPricingFailure, "pricing pipeline failed", err)
	}
	return amount, nil
}
