package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courtly/internal/intents"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrBookingNotFound = errors.New("booking not found")

	// ErrConfirmLost signals that the intent row was finalized by a
	// concurrent writer between read and write.
	ErrConfirmLost = errors.New("intent finalized concurrently")
)

type Repository interface {
	// ConfirmFromIntent atomically flips the intent to CONFIRMED (guarded
	// by its version) and inserts the booking in the same transaction.
	// The losing side of a concurrent confirm/expire gets ErrConfirmLost
	// and no booking row is written.
	ConfirmFromIntent(ctx context.Context, intent *intents.BookingIntent, booking *Booking) error

	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByPlayerID(ctx context.Context, playerID uuid.UUID, limit, offset int) ([]Booking, error)

	// FindOverlapping returns CONFIRMED bookings on any of the stations
	// whose [start,end) window overlaps the given one.
	FindOverlapping(ctx context.Context, stationIDs []uuid.UUID, start, end time.Time) ([]Booking, error)

	// UpdateStatusCAS is the version-guarded status write used for
	// cancellation and completion. Reports false when the row no longer
	// matches.
	UpdateStatusCAS(ctx context.Context, id uuid.UUID, from, to Status, version int, cancelledAt *time.Time) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ConfirmFromIntent(ctx context.Context, intent *intents.BookingIntent, booking *Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1. Compare-and-swap the intent out of PENDING. Zero rows means a
		// concurrent confirm or sweep got there first.
		res := tx.Model(&intents.BookingIntent{}).
			Where("id = ? AND status = ? AND version = ?", intent.ID, intents.StatusPending, intent.Version).
			Updates(map[string]interface{}{
				"status":     intents.StatusConfirmed,
				"version":    intent.Version + 1,
				"updated_at": time.Now().UTC(),
			})
		if res.Error != nil {
			return fmt.Errorf("failed to confirm intent: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrConfirmLost
		}

		// 2. Materialize the booking with its station rows.
		if err := tx.Create(booking).Error; err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}

		return nil
	})
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Stations").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByPlayerID(ctx context.Context, playerID uuid.UUID, limit, offset int) ([]Booking, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	var result []Booking
	err := r.db.WithContext(ctx).
		Where("player_id = ?", playerID).
		Preload("Stations").
		Order("start_time DESC").
		Limit(limit).
		Offset(offset).
		Find(&result).Error
	return result, err
}

func (r *repository) FindOverlapping(ctx context.Context, stationIDs []uuid.UUID, start, end time.Time) ([]Booking, error) {
	var result []Booking
	err := r.db.WithContext(ctx).
		Model(&Booking{}).
		Distinct("bookings.*").
		Joins("JOIN booking_stations ON booking_stations.booking_id = bookings.id").
		Where("booking_stations.station_id IN ?", stationIDs).
		Where("bookings.status = ?", StatusConfirmed).
		Where("bookings.start_time < ? AND bookings.end_time > ?", end, start).
		Preload("Stations").
		Order("bookings.start_time ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *repository) UpdateStatusCAS(ctx context.Context, id uuid.UUID, from, to Status, version int, cancelledAt *time.Time) (bool, error) {
	updates := map[string]interface{}{
		"status":     to,
		"version":    version + 1,
		"updated_at": time.Now().UTC(),
	}
	if cancelledAt != nil {
		updates["cancelled_at"] = *cancelledAt
	}

	res := r.db.WithContext(ctx).
		Model(&Booking{}).
		Where("id = ? AND status = ? AND version = ?", id, from, version).
		Updates(updates)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
