package rates

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByClubID(ctx context.Context, clubID uuid.UUID) ([]Rate, error)
	GetForTypes(ctx context.Context, clubID uuid.UUID, stationTypes []string, bookingType string) ([]Rate, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByClubID(ctx context.Context, clubID uuid.UUID) ([]Rate, error) {
	var result []Rate
	err := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Find(&result).Error
	return result, err
}

func (r *repository) GetForTypes(ctx context.Context, clubID uuid.UUID, stationTypes []string, bookingType string) ([]Rate, error) {
	var result []Rate
	query := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Where("booking_type = ?", bookingType)
	if len(stationTypes) > 0 {
		query = query.Where("station_type IN ?", stationTypes)
	}
	err := query.Find(&result).Error
	return result, err
}
