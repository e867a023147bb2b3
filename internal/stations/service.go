package stations

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courtly/pkg/cache"

	"github.com/google/uuid"
)

var (
	ErrStationNotFound = errors.New("station not found")
	ErrStationInactive = errors.New("station is not active")
	ErrMixedClubs      = errors.New("stations belong to different clubs")
)

// Service is the read-only station directory consumed by the booking core.
type Service interface {
	GetStationsByIDs(ctx context.Context, ids []uuid.UUID) ([]Station, error)
	GetStationsByClubID(ctx context.Context, clubID uuid.UUID) ([]Station, error)

	// ResolveBookable fetches the requested stations and validates that all
	// exist, are active and belong to a single club.
	ResolveBookable(ctx context.Context, ids []uuid.UUID) ([]Station, error)
}

type service struct {
	repo     Repository
	cache    cache.Service
	cacheTTL time.Duration
}

func NewService(repo Repository, cacheService cache.Service, cacheTTL time.Duration) Service {
	return &service{
		repo:     repo,
		cache:    cacheService,
		cacheTTL: cacheTTL,
	}
}

func (s *service) GetStationsByIDs(ctx context.Context, ids []uuid.UUID) ([]Station, error) {
	return s.repo.GetByIDs(ctx, ids)
}

func (s *service) GetStationsByClubID(ctx context.Context, clubID uuid.UUID) ([]Station, error) {
	if s.cache == nil {
		return s.repo.GetByClubID(ctx, clubID)
	}

	var result []Station
	key := fmt.Sprintf("stations:club:%s", clubID)
	err := s.cache.GetOrSet(ctx, key, s.cacheTTL, func() (interface{}, error) {
		return s.repo.GetByClubID(ctx, clubID)
	}, &result)
	if err != nil {
		// Cache trouble must not take down the directory; fall through to
		// the store.
		return s.repo.GetByClubID(ctx, clubID)
	}
	return result, nil
}

func (s *service) ResolveBookable(ctx context.Context, ids []uuid.UUID) ([]Station, error) {
	if len(ids) == 0 {
		return nil, ErrStationNotFound
	}

	found, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(found) != len(ids) {
		return nil, ErrStationNotFound
	}

	clubID := found[0].ClubID
	for i := range found {
		if !found[i].IsActive() {
			return nil, fmt.Errorf("%w: %s", ErrStationInactive, found[i].Name)
		}
		if found[i].ClubID != clubID {
			return nil, ErrMixedClubs
		}
	}
	return found, nil
}
