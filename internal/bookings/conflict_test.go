package bookings

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"courtly/internal/intents"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedBooking(repo *fakeBookingRepo, stationID uuid.UUID, start, end time.Time) {
	id := uuid.New()
	repo.bookings[id] = &Booking{
		ID:        id,
		PlayerID:  uuid.New(),
		StartTime: start,
		EndTime:   end,
		Status:    StatusConfirmed,
		Version:   1,
		Stations:  []BookingStation{{ID: uuid.New(), BookingID: id, StationID: stationID}},
	}
}

func seedIntent(repo *fakeIntentRepo, stationID uuid.UUID, start, end, expiresAt time.Time) {
	id := uuid.New()
	repo.intents[id] = &intents.BookingIntent{
		ID:        id,
		PlayerID:  uuid.New(),
		StartTime: start,
		EndTime:   end,
		Status:    intents.StatusPending,
		ExpiresAt: expiresAt,
		Version:   1,
		Stations:  []intents.IntentStation{{ID: uuid.New(), IntentID: id, StationID: stationID}},
	}
}

func TestHasConflict_ConfirmedBookingBlocks(t *testing.T) {
	intentRepo := newFakeIntentRepo()
	bookingRepo := newFakeBookingRepo(intentRepo)
	detector := NewConflictDetector(bookingRepo, intentRepo)

	station := uuid.New()
	start := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	seedBooking(bookingRepo, station, start, start.Add(time.Hour))

	conflict, err := detector.HasConflict(context.Background(), []uuid.UUID{station}, start.Add(30*time.Minute), start.Add(90*time.Minute))
	require.NoError(t, err)
	assert.True(t, conflict)

	// Different station, same window.
	conflict, err = detector.HasConflict(context.Background(), []uuid.UUID{uuid.New()}, start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestHasConflict_BoundaryAdjacency(t *testing.T) {
	intentRepo := newFakeIntentRepo()
	bookingRepo := newFakeBookingRepo(intentRepo)
	detector := NewConflictDetector(bookingRepo, intentRepo)

	station := uuid.New()
	ten := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	eleven := ten.Add(time.Hour)
	seedBooking(bookingRepo, station, ten, eleven)

	// [11:00, 12:00) right after [10:00, 11:00): the shared instant belongs
	// only to the later window.
	conflict, err := detector.HasConflict(context.Background(), []uuid.UUID{station}, eleven, eleven.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, conflict)

	// [09:00, 10:00) right before.
	conflict, err = detector.HasConflict(context.Background(), []uuid.UUID{station}, ten.Add(-time.Hour), ten)
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestHasConflict_LiveIntentBlocks(t *testing.T) {
	intentRepo := newFakeIntentRepo()
	bookingRepo := newFakeBookingRepo(intentRepo)
	detector := NewConflictDetector(bookingRepo, intentRepo)

	station := uuid.New()
	start := time.Now().UTC().Add(24 * time.Hour)
	seedIntent(intentRepo, station, start, start.Add(time.Hour), time.Now().UTC().Add(10*time.Minute))

	conflict, err := detector.HasConflict(context.Background(), []uuid.UUID{station}, start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.True(t, conflict)
}

func TestHasConflict_ExpiredIntentDoesNotBlock(t *testing.T) {
	intentRepo := newFakeIntentRepo()
	bookingRepo := newFakeBookingRepo(intentRepo)
	detector := NewConflictDetector(bookingRepo, intentRepo)

	station := uuid.New()
	start := time.Now().UTC().Add(24 * time.Hour)

	// Still PENDING in the store, but its hold lapsed a second ago.
	seedIntent(intentRepo, station, start, start.Add(time.Hour), time.Now().UTC().Add(-time.Second))

	conflict, err := detector.HasConflict(context.Background(), []uuid.UUID{station}, start, start.Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestHasConflict_HalfOpenOverlapProperty(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 200; i++ {
		intentRepo := newFakeIntentRepo()
		bookingRepo := newFakeBookingRepo(intentRepo)
		detector := NewConflictDetector(bookingRepo, intentRepo)

		station := uuid.New()

		s1 := base.Add(time.Duration(rng.Intn(48)) * 30 * time.Minute)
		e1 := s1.Add(time.Duration(1+rng.Intn(8)) * 30 * time.Minute)
		seedBooking(bookingRepo, station, s1, e1)

		s2 := base.Add(time.Duration(rng.Intn(48)) * 30 * time.Minute)
		e2 := s2.Add(time.Duration(1+rng.Intn(8)) * 30 * time.Minute)

		want := s1.Before(e2) && s2.Before(e1)

		got, err := detector.HasConflict(context.Background(), []uuid.UUID{station}, s2, e2)
		require.NoError(t, err)
		assert.Equalf(t, want, got, "[%v,%v) vs [%v,%v)", s1, e1, s2, e2)
	}
}
