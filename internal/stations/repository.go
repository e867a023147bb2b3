package stations

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Station, error)
	GetByClubID(ctx context.Context, clubID uuid.UUID) ([]Station, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]Station, error) {
	var result []Station
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&result).Error
	return result, err
}

func (r *repository) GetByClubID(ctx context.Context, clubID uuid.UUID) ([]Station, error) {
	var result []Station
	err := r.db.WithContext(ctx).
		Where("club_id = ?", clubID).
		Order("name ASC").
		Find(&result).Error
	return result, err
}
