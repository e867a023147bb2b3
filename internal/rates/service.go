package rates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"courtly/internal/pricing"
	"courtly/internal/stations"
	"courtly/pkg/cache"

	"github.com/google/uuid"
)

var ErrRateNotFound = errors.New("no rate configured for station/booking type")

// Service resolves the per-station rates fed into the pricing context.
type Service interface {
	ResolveForStations(ctx context.Context, stationList []stations.Station, bookingType string) (map[uuid.UUID]pricing.StationRate, error)
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

func (s *service) ResolveForStations(ctx context.Context, stationList []stations.Station, bookingType string) (map[uuid.UUID]pricing.StationRate, error) {
	if len(stationList) == 0 {
		return map[uuid.UUID]pricing.StationRate{}, nil
	}

	clubID := stationList[0].ClubID
	typeSet := make(map[string]struct{}, len(stationList))
	stationTypes := make([]string, 0, len(stationList))
	for _, st := range stationList {
		if _, ok := typeSet[st.Type.String()]; !ok {
			typeSet[st.Type.String()] = struct{}{}
			stationTypes = append(stationTypes, st.Type.String())
		}
	}

	clubRates, err := s.fetchRates(ctx, clubID, stationTypes, bookingType)
	if err != nil {
		return nil, err
	}

	byStationType := make(map[string]Rate, len(clubRates))
	for _, rate := range clubRates {
		byStationType[rate.StationType] = rate
	}

	resolved := make(map[uuid.UUID]pricing.StationRate, len(stationList))
	for _, st := range stationList {
		rate, ok := byStationType[st.Type.String()]
		if !ok {
			return nil, fmt.Errorf("%w: station %s (%s, %s)", ErrRateNotFound, st.Name, st.Type, bookingType)
		}
		resolved[st.ID] = pricing.StationRate{
			StationID:  st.ID,
			HourlyRate: rate.HourlyRate,
			Currency:   rate.Currency,
		}
	}
	return resolved, nil
}

func (s *service) fetchRates(ctx context.Context, clubID uuid.UUID, stationTypes []string, bookingType string) ([]Rate, error) {
	if s.cache == nil {
		return s.repo.GetForTypes(ctx, clubID, stationTypes, bookingType)
	}

	var result []Rate
	key := fmt.Sprintf("rates:club:%s:%s", clubID, bookingType)
	err := s.cache.GetOrSet(ctx, key, s.cacheTTL, func() (interface{}, error) {
		// Cache the club's full rate card for this booking type; the
		// station-type filter is applied by the caller's lookup map.
		return s.repo.GetForTypes(ctx, clubID, nil, bookingType)
	}, &result)
	if err != nil {
		return s.repo.GetForTypes(ctx, clubID, stationTypes, bookingType)
	}
	return result, nil
}
