package intents

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store-level sentinel errors; the lifecycle layer maps these onto its
// client-facing error kinds.
var (
	ErrIntentNotFound    = errors.New("intent not found")
	ErrOverlapConflict   = errors.New("station window overlaps an existing booking or live hold")
	ErrStationsNotFound  = errors.New("one or more stations do not exist")
	ErrInvalidTransition = errors.New("intent status transition is not allowed")
)

type Repository interface {
	// CreateWithConflictCheck inserts a PENDING intent after re-validating,
	// under row locks on the requested stations, that no confirmed booking
	// and no intent live at the given instant overlaps the window. The
	// losing side of a concurrent admission race gets ErrOverlapConflict.
	CreateWithConflictCheck(ctx context.Context, intent *BookingIntent, now time.Time) error

	GetByID(ctx context.Context, id uuid.UUID) (*BookingIntent, error)

	// UpdateStatusCAS performs a compare-and-swap status transition guarded
	// by the version column. It reports false (no error) when the row no
	// longer matches, i.e. the transition lost a race.
	UpdateStatusCAS(ctx context.Context, id uuid.UUID, from, to Status, version int) (bool, error)

	Delete(ctx context.Context, id uuid.UUID) error

	// FindLiveForStations returns PENDING intents on any of the stations
	// whose window overlaps [start, end) and whose expiry has not passed
	// at query time.
	FindLiveForStations(ctx context.Context, stationIDs []uuid.UUID, start, end, now time.Time) ([]BookingIntent, error)

	// FindExpiredUnconfirmed returns PENDING intents with expiry <= before,
	// regardless of window. Feeds the sweep.
	FindExpiredUnconfirmed(ctx context.Context, before time.Time) ([]BookingIntent, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// stationLockQuery builds the SELECT ... FOR UPDATE over the requested
// station rows. Factored out so tests can assert the rendered SQL really
// carries the locking clause.
func stationLockQuery(tx *gorm.DB, stationIDs []uuid.UUID) *gorm.DB {
	return tx.Table("stations").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", stationIDs)
}

func (r *repository) CreateWithConflictCheck(ctx context.Context, intent *BookingIntent, now time.Time) error {
	stationIDs := intent.StationIDs()
	if len(stationIDs) == 0 {
		return fmt.Errorf("intent holds no stations")
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Lock the station rows to serialize admission per station.
		// Two concurrent holds on a shared station queue up here; the
		// second one re-checks after the first has committed its insert.
		var lockedIDs []uuid.UUID
		err := stationLockQuery(tx, stationIDs).
			Pluck("id", &lockedIDs).Error
		if err != nil {
			return fmt.Errorf("failed to lock stations: %w", err)
		}
		if len(lockedIDs) != len(stationIDs) {
			return ErrStationsNotFound
		}

		// 2. Re-check confirmed bookings under the lock.
		var bookingCount int64
		err = tx.Table("bookings").
			Joins("JOIN booking_stations ON booking_stations.booking_id = bookings.id").
			Where("booking_stations.station_id IN ?", stationIDs).
			Where("bookings.status = ?", "CONFIRMED").
			Where("bookings.start_time < ? AND bookings.end_time > ?", intent.EndTime, intent.StartTime).
			Count(&bookingCount).Error
		if err != nil {
			return fmt.Errorf("failed to check booking overlap: %w", err)
		}
		if bookingCount > 0 {
			return ErrOverlapConflict
		}

		// 3. Re-check live intents under the lock. Expiry is evaluated
		// here, not read from stored status, so a lapsed hold never blocks.
		var intentCount int64
		err = tx.Table("booking_intents").
			Joins("JOIN intent_stations ON intent_stations.intent_id = booking_intents.id").
			Where("intent_stations.station_id IN ?", stationIDs).
			Where("booking_intents.status = ?", StatusPending).
			Where("booking_intents.expires_at > ?", now).
			Where("booking_intents.start_time < ? AND booking_intents.end_time > ?", intent.EndTime, intent.StartTime).
			Count(&intentCount).Error
		if err != nil {
			return fmt.Errorf("failed to check intent overlap: %w", err)
		}
		if intentCount > 0 {
			return ErrOverlapConflict
		}

		// 4. Insert the intent together with its station rows.
		if err := tx.Create(intent).Error; err != nil {
			return fmt.Errorf("failed to create intent: %w", err)
		}

		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*BookingIntent, error) {
	var intent BookingIntent
	err := r.db.WithContext(ctx).
		Preload("Stations").
		Where("id = ?", id).
		First(&intent).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIntentNotFound
		}
		return nil, err
	}
	return &intent, nil
}

func (r *repository) UpdateStatusCAS(ctx context.Context, id uuid.UUID, from, to Status, version int) (bool, error) {
	if !from.CanTransitionTo(to) {
		return false, ErrInvalidTransition
	}

	res := r.db.WithContext(ctx).
		Model(&BookingIntent{}).
		Where("id = ? AND status = ? AND version = ?", id, from, version).
		Updates(map[string]interface{}{
			"status":     to,
			"version":    version + 1,
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected == 1, nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&BookingIntent{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrIntentNotFound
	}
	return nil
}

func (r *repository) FindLiveForStations(ctx context.Context, stationIDs []uuid.UUID, start, end, now time.Time) ([]BookingIntent, error) {
	var results []BookingIntent
	err := r.db.WithContext(ctx).
		Model(&BookingIntent{}).
		Distinct("booking_intents.*").
		Joins("JOIN intent_stations ON intent_stations.intent_id = booking_intents.id").
		Where("intent_stations.station_id IN ?", stationIDs).
		Where("booking_intents.status = ?", StatusPending).
		Where("booking_intents.expires_at > ?", now).
		Where("booking_intents.start_time < ? AND booking_intents.end_time > ?", end, start).
		Preload("Stations").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *repository) FindExpiredUnconfirmed(ctx context.Context, before time.Time) ([]BookingIntent, error) {
	var results []BookingIntent
	err := r.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Where("expires_at <= ?", before).
		Order("expires_at ASC").
		Preload("Stations").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}
