package stations

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	stations []Station
	err      error
}

func (s *stubRepo) GetByIDs(context.Context, []uuid.UUID) ([]Station, error) {
	return s.stations, s.err
}

func (s *stubRepo) GetByClubID(context.Context, uuid.UUID) ([]Station, error) {
	return s.stations, s.err
}

func activeStation(clubID uuid.UUID) Station {
	return Station{
		ID:     uuid.New(),
		ClubID: clubID,
		Name:   "Court 1",
		Type:   TypeCourt,
		Status: "ACTIVE",
	}
}

func TestResolveBookable_AllActiveSameClub(t *testing.T) {
	clubID := uuid.New()
	a := activeStation(clubID)
	b := activeStation(clubID)
	svc := NewService(&stubRepo{stations: []Station{a, b}}, nil, 0)

	found, err := svc.ResolveBookable(context.Background(), []uuid.UUID{a.ID, b.ID})
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestResolveBookable_MissingStation(t *testing.T) {
	clubID := uuid.New()
	a := activeStation(clubID)
	svc := NewService(&stubRepo{stations: []Station{a}}, nil, 0)

	_, err := svc.ResolveBookable(context.Background(), []uuid.UUID{a.ID, uuid.New()})
	assert.ErrorIs(t, err, ErrStationNotFound)
}

func TestResolveBookable_InactiveStation(t *testing.T) {
	clubID := uuid.New()
	a := activeStation(clubID)
	b := activeStation(clubID)
	b.Status = "INACTIVE"
	svc := NewService(&stubRepo{stations: []Station{a, b}}, nil, 0)

	_, err := svc.ResolveBookable(context.Background(), []uuid.UUID{a.ID, b.ID})
	assert.ErrorIs(t, err, ErrStationInactive)
}

func TestResolveBookable_MixedClubs(t *testing.T) {
	a := activeStation(uuid.New())
	b := activeStation(uuid.New())
	svc := NewService(&stubRepo{stations: []Station{a, b}}, nil, 0)

	_, err := svc.ResolveBookable(context.Background(), []uuid.UUID{a.ID, b.ID})
	assert.ErrorIs(t, err, ErrMixedClubs)
}

func TestResolveBookable_EmptyInput(t *testing.T) {
	svc := NewService(&stubRepo{}, nil, 0)

	_, err := svc.ResolveBookable(context.Background(), nil)
	assert.ErrorIs(t, err, ErrStationNotFound)
}
