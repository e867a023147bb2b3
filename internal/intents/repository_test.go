package intents

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("An error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("An error '%s' was not expected when opening gorm database", err)
	}

	return gormDB, mock
}

func TestUpdateStatusCAS_IllegalTransitionRejectedWithoutQuery(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewRepository(gormDB)

	_, err := repo.UpdateStatusCAS(context.Background(), uuid.New(), StatusConfirmed, StatusCancelled, 2)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusCAS_Applied(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewRepository(gormDB)

	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "booking_intents"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ok, err := repo.UpdateStatusCAS(context.Background(), id, StatusPending, StatusExpired, 1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusCAS_LostRace(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "booking_intents"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	ok, err := repo.UpdateStatusCAS(context.Background(), uuid.New(), StatusPending, StatusCancelled, 3)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindExpiredUnconfirmed(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewRepository(gormDB)

	intentID := uuid.New()
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT .* FROM "booking_intents"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status", "expires_at", "version"}).
			AddRow(intentID, string(StatusPending), now.Add(-time.Minute), 1))
	mock.ExpectQuery(`SELECT .* FROM "intent_stations"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "intent_id", "station_id"}).
			AddRow(uuid.New(), intentID, uuid.New()))

	results, err := repo.FindExpiredUnconfirmed(context.Background(), now)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, intentID, results[0].ID)
	assert.Equal(t, StatusPending, results[0].Status)
	require.Len(t, results[0].Stations, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStationLockQuery_RendersForUpdate(t *testing.T) {
	gormDB, _ := newMockDB(t)

	session := gormDB.Session(&gorm.Session{DryRun: true})
	ids := []uuid.UUID{uuid.New(), uuid.New()}

	var locked []uuid.UUID
	stmt := stationLockQuery(session, ids).Pluck("id", &locked).Statement

	sql := stmt.SQL.String()
	assert.Contains(t, sql, `FROM "stations"`)
	assert.Contains(t, sql, "FOR UPDATE")
}

func TestCreateWithConflictCheck_ConfirmedOverlapRollsBack(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewRepository(gormDB)

	stationA := uuid.New()
	stationB := uuid.New()
	now := time.Now().UTC()
	intent := &BookingIntent{
		ID:        uuid.New(),
		PlayerID:  uuid.New(),
		ClubID:    uuid.New(),
		StartTime: now.Add(time.Hour),
		EndTime:   now.Add(2 * time.Hour),
		Status:    StatusPending,
		ExpiresAt: now.Add(10 * time.Minute),
		Stations: []IntentStation{
			{StationID: stationA},
			{StationID: stationB},
		},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT "id" FROM "stations".+FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).
			AddRow(stationA).
			AddRow(stationB))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := repo.CreateWithConflictCheck(context.Background(), intent, now)
	assert.ErrorIs(t, err, ErrOverlapConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	gormDB, mock := newMockDB(t)
	repo := NewRepository(gormDB)

	mock.ExpectQuery(`SELECT .* FROM "booking_intents"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrIntentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
