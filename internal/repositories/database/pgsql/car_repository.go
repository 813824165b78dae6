package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/car_parking_app/internal/apperrors"
	"github.com/SscSPs/car_parking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_parking_app/internal/core/ports/repositories"
	"github.com/SscSPs/car_parking_app/internal/models"
	"github.com/SscSPs/car_parking_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const carColumns = `c.car_id, c.plate_number, c.parking_code, c.entry_time, c.exit_time, c.total_fee,
		c.created_by, c.created_at, c.last_updated_at, c.parking_id`

// carWithParkingSelect selects cars with the parking row they entered, if it still exists.
// Joining on the id keeps history away from a newer parking that reuses the code.
const carWithParkingSelect = `SELECT ` + carColumns + `, p.parking_id, p.name, p.location, p.fee_per_hour
		FROM cars c
		LEFT JOIN parkings p ON p.parking_id = c.parking_id`

type PgxCarRepository struct {
	BaseRepository
}

// newPgxCarRepository creates a new repository for parking sessions.
func newPgxCarRepository(db DB) portsrepo.CarRepositoryWithTx {
	return &PgxCarRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.CarRepositoryWithTx = (*PgxCarRepository)(nil)

func carScanTargets(m *models.Car) []any {
	return []any{
		&m.CarID,
		&m.PlateNumber,
		&m.ParkingCode,
		&m.EntryTime,
		&m.ExitTime,
		&m.TotalFee,
		&m.CreatedBy,
		&m.CreatedAt,
		&m.LastUpdatedAt,
		&m.ParkingID,
	}
}

func scanCarWithParking(row rowScanner) (models.CarWithParking, error) {
	var m models.CarWithParking
	targets := append(carScanTargets(&m.Car),
		&m.JoinedParkingID,
		&m.ParkingName,
		&m.ParkingLocation,
		&m.ParkingFeePerHour,
	)
	err := row.Scan(targets...)
	return m, err
}

// queryCars runs a carWithParkingSelect based query and collects the rows.
func queryCars(ctx context.Context, db DB, query string, args ...any) ([]domain.Car, error) {
	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cars: %w", err)
	}
	defer rows.Close()

	cars := []models.CarWithParking{}
	for rows.Next() {
		m, err := scanCarWithParking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan car row: %w", err)
		}
		cars = append(cars, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating car rows: %w", err)
	}
	return mapping.ToDomainCarWithParkingSlice(cars), nil
}

// FindCarByID retrieves a session with its parking.
func (r *PgxCarRepository) FindCarByID(ctx context.Context, carID string) (*domain.Car, error) {
	if !isValidID(carID) {
		return nil, apperrors.ErrCarNotFound
	}
	m, err := scanCarWithParking(r.Pool.QueryRow(ctx, carWithParkingSelect+` WHERE c.car_id = $1;`, carID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to find car %s: %w", carID, err)
	}
	car := mapping.ToDomainCarWithParking(m)
	return &car, nil
}

// ListActiveCars returns open sessions, optionally restricted to one parking.
func (r *PgxCarRepository) ListActiveCars(ctx context.Context, parkingCode string) ([]domain.Car, error) {
	if parkingCode == "" {
		return queryCars(ctx, r.Pool, carWithParkingSelect+`
		WHERE c.exit_time IS NULL
		ORDER BY c.entry_time DESC;`)
	}
	return queryCars(ctx, r.Pool, carWithParkingSelect+`
		WHERE c.exit_time IS NULL AND c.parking_code = $1
		ORDER BY c.entry_time DESC;`, parkingCode)
}

// ListCarsByPlate returns the full history of a plate.
func (r *PgxCarRepository) ListCarsByPlate(ctx context.Context, plateNumber string) ([]domain.Car, error) {
	return queryCars(ctx, r.Pool, carWithParkingSelect+`
		WHERE c.plate_number = $1
		ORDER BY c.entry_time DESC;`, plateNumber)
}

// HasOpenSessionInTx reports whether the plate is currently inside the parking.
func (r *PgxCarRepository) HasOpenSessionInTx(ctx context.Context, tx pgx.Tx, plateNumber, parkingCode string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM cars WHERE plate_number = $1 AND parking_code = $2 AND exit_time IS NULL
		);
	`
	var exists bool
	if err := tx.QueryRow(ctx, query, plateNumber, parkingCode).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check open session for %s: %w", plateNumber, err)
	}
	return exists, nil
}

// CountOpenSessionsInTx counts the open sessions of a parking.
func (r *PgxCarRepository) CountOpenSessionsInTx(ctx context.Context, tx pgx.Tx, parkingCode string) (int64, error) {
	var count int64
	query := `SELECT COUNT(*) FROM cars WHERE parking_code = $1 AND exit_time IS NULL;`
	if err := tx.QueryRow(ctx, query, parkingCode).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count open sessions for %s: %w", parkingCode, err)
	}
	return count, nil
}

// SaveCarInTx inserts a new open session.
func (r *PgxCarRepository) SaveCarInTx(ctx context.Context, tx pgx.Tx, car domain.Car) error {
	m := mapping.ToModelCar(car)
	query := `
		INSERT INTO cars (car_id, plate_number, parking_code, parking_id, entry_time, created_by, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := tx.Exec(ctx, query,
		m.CarID,
		m.PlateNumber,
		m.ParkingCode,
		m.ParkingID,
		m.EntryTime,
		m.CreatedBy,
		m.CreatedAt,
		m.LastUpdatedAt,
	)
	if err != nil {
		// cars_one_open_session_idx is the only unique constraint besides the primary key.
		if isUniqueViolation(err) {
			return apperrors.ErrSessionAlreadyOpen
		}
		if isValueOutOfRange(err) {
			return apperrors.ErrValueOutOfRange
		}
		return fmt.Errorf("failed to save car %s: %w", m.CarID, err)
	}
	return nil
}

// FindCarByIDForUpdate selects a session and locks it for the rest of tx.
func (r *PgxCarRepository) FindCarByIDForUpdate(ctx context.Context, tx pgx.Tx, carID string) (*domain.Car, error) {
	if !isValidID(carID) {
		return nil, apperrors.ErrCarNotFound
	}
	query := `SELECT ` + carColumns + ` FROM cars c WHERE c.car_id = $1 FOR UPDATE;`
	var m models.Car
	if err := tx.QueryRow(ctx, query, carID).Scan(carScanTargets(&m)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCarNotFound
		}
		return nil, fmt.Errorf("failed to lock car %s: %w", carID, err)
	}
	car := mapping.ToDomainCar(m)
	return &car, nil
}

// CloseCarInTx records the exit of an open session.
func (r *PgxCarRepository) CloseCarInTx(ctx context.Context, tx pgx.Tx, carID string, exitTime time.Time, totalFee decimal.Decimal) error {
	query := `
		UPDATE cars
		SET exit_time = $1, total_fee = $2, last_updated_at = $1
		WHERE car_id = $3 AND exit_time IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query, exitTime, totalFee, carID)
	if err != nil {
		if isValueOutOfRange(err) {
			return apperrors.ErrValueOutOfRange
		}
		return fmt.Errorf("failed to close car %s: %w", carID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAlreadyExited
	}
	return nil
}
