package bookings

import (
	"context"
	"time"

	"courtly/internal/intents"

	"github.com/google/uuid"
)

// ConflictDetector decides booking admission: a requested window conflicts
// when any confirmed booking or any live (unexpired PENDING) intent
// overlaps it on any of the requested stations. Overlap is half-open:
// [s1,e1) and [s2,e2) overlap iff s1 < e2 && s2 < e1.
type ConflictDetector struct {
	bookings Repository
	intents  intents.Repository
	now      func() time.Time
}

func NewConflictDetector(bookingRepo Repository, intentRepo intents.Repository) *ConflictDetector {
	return &ConflictDetector{
		bookings: bookingRepo,
		intents:  intentRepo,
		now:      time.Now,
	}
}

// HasConflict reports whether [start, end) on the given stations collides
// with existing state. Intent expiry is re-evaluated against the clock at
// query time; a lapsed hold never blocks, even before the sweep has run.
func (d *ConflictDetector) HasConflict(ctx context.Context, stationIDs []uuid.UUID, start, end time.Time) (bool, error) {
	overlapping, err := d.bookings.FindOverlapping(ctx, stationIDs, start, end)
	if err != nil {
		return false, WrapError(KindStoreUnavailable, "booking overlap lookup failed", err)
	}
	if len(overlapping) > 0 {
		return true, nil
	}

	live, err := d.intents.FindLiveForStations(ctx, stationIDs, start, end, d.now().UTC())
	if err != nil {
		return false, WrapError(KindStoreUnavailable, "intent overlap lookup failed", err)
	}
	return len(live) > 0, nil
}
