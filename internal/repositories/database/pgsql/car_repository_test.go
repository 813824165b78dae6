package pgsql

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/SscSPs/car_parking_app/internal/apperrors"
	"github.com/SscSPs/car_parking_app/internal/core/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCarID = "0b6f6b8e-3c1d-4f0e-8a7b-2f4d9c1e5a33"

var joinedCarColumns = []string{
	"car_id", "plate_number", "parking_code", "entry_time", "exit_time", "total_fee",
	"created_by", "created_at", "last_updated_at", "parking_id",
	"p_parking_id", "name", "location", "fee_per_hour",
}

func TestCarRepository_SaveCarInTx_OpenSessionConflict(t *testing.T) {
	ctx := context.Background()
	mock := newMockPool(t)
	repo := newPgxCarRepository(mock)
	entry := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO cars")).
		WithArgs(testCarID, "RAB123A", "P001", pgxmock.AnyArg(), entry, pgxmock.AnyArg(), entry, entry).
		WillReturnError(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "cars_one_open_session_idx"})

	tx, err := mock.Begin(ctx)
	require.NoError(t, err)

	err = repo.SaveCarInTx(ctx, tx, domain.Car{
		CarID:       testCarID,
		PlateNumber: "RAB123A",
		ParkingCode: "P001",
		ParkingID:   testParkingID,
		EntryTime:   entry,
		CreatedAt:   entry,
		UpdatedAt:   entry,
	})
	assert.ErrorIs(t, err, apperrors.ErrSessionAlreadyOpen)
}

func TestCarRepository_FindCarByIDForUpdate(t *testing.T) {
	ctx := context.Background()
	mock := newMockPool(t)
	repo := newPgxCarRepository(mock)
	entry := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM cars c WHERE c.car_id = $1 FOR UPDATE")).
		WithArgs(testCarID).
		WillReturnRows(pgxmock.NewRows(joinedCarColumns[:10]).
			AddRow(testCarID, "RAB123A", "P001", entry, nil, nil, nil, entry, entry, testParkingID))

	tx, err := mock.Begin(ctx)
	require.NoError(t, err)

	car, err := repo.FindCarByIDForUpdate(ctx, tx, testCarID)
	require.NoError(t, err)
	assert.True(t, car.IsOpen())
	assert.Nil(t, car.TotalFee)
	assert.Equal(t, entry, car.EntryTime)
	assert.Equal(t, testParkingID, car.ParkingID)
}

func TestCarRepository_FindCarByIDForUpdate_Unknown(t *testing.T) {
	ctx := context.Background()
	mock := newMockPool(t)
	repo := newPgxCarRepository(mock)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FOR UPDATE")).
		WithArgs(testCarID).
		WillReturnRows(pgxmock.NewRows(joinedCarColumns[:10]))

	tx, err := mock.Begin(ctx)
	require.NoError(t, err)

	_, err = repo.FindCarByIDForUpdate(ctx, tx, testCarID)
	assert.ErrorIs(t, err, apperrors.ErrCarNotFound)

	_, err = repo.FindCarByIDForUpdate(ctx, tx, "42")
	assert.ErrorIs(t, err, apperrors.ErrCarNotFound)
}

func TestCarRepository_CloseCarInTx(t *testing.T) {
	ctx := context.Background()
	mock := newMockPool(t)
	repo := newPgxCarRepository(mock)
	exit := time.Date(2024, 6, 1, 11, 5, 0, 0, time.UTC)
	fee := decimal.RequireFromString("7.50")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("WHERE car_id = $3 AND exit_time IS NULL")).
		WithArgs(exit, fee, testCarID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(regexp.QuoteMeta("WHERE car_id = $3 AND exit_time IS NULL")).
		WithArgs(exit, fee, testCarID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	tx, err := mock.Begin(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.CloseCarInTx(ctx, tx, testCarID, exit, fee))
	assert.ErrorIs(t, repo.CloseCarInTx(ctx, tx, testCarID, exit, fee), apperrors.ErrAlreadyExited)
}

func TestCarRepository_ListActiveCars_FilteredByParking(t *testing.T) {
	mock := newMockPool(t)
	repo := newPgxCarRepository(mock)
	entry := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.exit_time IS NULL AND c.parking_code = $1")).
		WithArgs("P001").
		WillReturnRows(pgxmock.NewRows(joinedCarColumns).
			AddRow(testCarID, "RAB123A", "P001", entry, nil, nil, nil, entry, entry, testParkingID,
				testParkingID, "Main Parking", "City Center", "2.50"))

	cars, err := repo.ListActiveCars(context.Background(), "P001")
	require.NoError(t, err)
	require.Len(t, cars, 1)
	require.NotNil(t, cars[0].Parking)
	assert.Equal(t, "Main Parking", cars[0].Parking.Name)
	assert.Equal(t, "P001", cars[0].Parking.Code)
}

func TestCarRepository_ListCarsByPlate_KeepsHistoryOfDeletedParking(t *testing.T) {
	mock := newMockPool(t)
	repo := newPgxCarRepository(mock)
	entry := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	exit := entry.Add(90 * time.Minute)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.plate_number = $1")).
		WithArgs("RAB123A").
		WillReturnRows(pgxmock.NewRows(joinedCarColumns).
			AddRow(testCarID, "RAB123A", "GONE", entry, exit, "5.00", nil, entry, exit, nil,
				nil, nil, nil, nil))

	cars, err := repo.ListCarsByPlate(context.Background(), "RAB123A")
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Nil(t, cars[0].Parking)
	assert.False(t, cars[0].IsOpen())
	require.NotNil(t, cars[0].TotalFee)
	assert.True(t, decimal.NewFromInt(5).Equal(*cars[0].TotalFee))
}

func TestCarRepository_HistoryJoinsOnParkingID(t *testing.T) {
	mock := newMockPool(t)
	repo := newPgxCarRepository(mock)
	entry := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	exit := entry.Add(time.Hour)
	deletedParkingID := "9d2e7c41-5a8b-4f36-b1c0-7e3a2d6f8b19"

	// The session entered a parking that was deleted; a newer parking now holds code P001.
	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN parkings p ON p.parking_id = c.parking_id")).
		WithArgs("RAB123A").
		WillReturnRows(pgxmock.NewRows(joinedCarColumns).
			AddRow(testCarID, "RAB123A", "P001", entry, exit, "2.50", nil, entry, exit, deletedParkingID,
				nil, nil, nil, nil))

	cars, err := repo.ListCarsByPlate(context.Background(), "RAB123A")
	require.NoError(t, err)
	require.Len(t, cars, 1)
	assert.Equal(t, deletedParkingID, cars[0].ParkingID)
	assert.Nil(t, cars[0].Parking)
}

func TestCarRepository_CloseCarInTx_FeeOutOfRange(t *testing.T) {
	ctx := context.Background()
	mock := newMockPool(t)
	repo := newPgxCarRepository(mock)
	exit := time.Date(2024, 6, 1, 11, 5, 0, 0, time.UTC)
	fee := decimal.RequireFromString("10000000000000000")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE cars")).
		WithArgs(exit, fee, testCarID).
		WillReturnError(&pgconn.PgError{Code: pgNumericOutOfRange})

	tx, err := mock.Begin(ctx)
	require.NoError(t, err)

	assert.ErrorIs(t, repo.CloseCarInTx(ctx, tx, testCarID, exit, fee), apperrors.ErrValueOutOfRange)
}
