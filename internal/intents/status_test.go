package intents

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusPending.CanTransitionTo(StatusExpired))
	assert.True(t, StatusPending.CanTransitionTo(StatusCancelled))
	assert.False(t, StatusPending.CanTransitionTo(StatusPending))

	// Terminal states admit nothing, including transitions back to PENDING.
	for _, terminal := range []Status{StatusConfirmed, StatusExpired, StatusCancelled} {
		assert.True(t, terminal.IsTerminal())
		for _, target := range []Status{StatusPending, StatusConfirmed, StatusExpired, StatusCancelled} {
			assert.Falsef(t, terminal.CanTransitionTo(target), "%s -> %s", terminal, target)
		}
	}
}

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.False(t, Status("HELD").IsValid())
}

func TestBookingIntent_IsExpired(t *testing.T) {
	now := time.Now().UTC()
	intent := &BookingIntent{Status: StatusPending, ExpiresAt: now}

	// Expiry boundary is inclusive: at the deadline the hold is gone.
	assert.True(t, intent.IsExpired(now))
	assert.True(t, intent.IsExpired(now.Add(time.Second)))
	assert.False(t, intent.IsExpired(now.Add(-time.Second)))
}

func TestBookingIntent_IsLive(t *testing.T) {
	now := time.Now().UTC()

	live := &BookingIntent{Status: StatusPending, ExpiresAt: now.Add(time.Minute)}
	assert.True(t, live.IsLive(now))

	lapsed := &BookingIntent{Status: StatusPending, ExpiresAt: now.Add(-time.Minute)}
	assert.False(t, lapsed.IsLive(now))

	cancelled := &BookingIntent{Status: StatusCancelled, ExpiresAt: now.Add(time.Minute)}
	assert.False(t, cancelled.IsLive(now))
}

func TestBookingIntent_Overlaps(t *testing.T) {
	start := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	intent := &BookingIntent{StartTime: start, EndTime: start.Add(time.Hour)}

	assert.True(t, intent.Overlaps(start.Add(30*time.Minute), start.Add(90*time.Minute)))
	assert.True(t, intent.Overlaps(start.Add(-30*time.Minute), start.Add(30*time.Minute)))

	// Adjacent windows share only the boundary instant.
	assert.False(t, intent.Overlaps(start.Add(time.Hour), start.Add(2*time.Hour)))
	assert.False(t, intent.Overlaps(start.Add(-time.Hour), start))
}
