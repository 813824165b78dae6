package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/car_parking_app/internal/apperrors"
	"github.com/SscSPs/car_parking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_parking_app/internal/core/ports/repositories"
	"github.com/SscSPs/car_parking_app/internal/models"
	"github.com/SscSPs/car_parking_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const parkingColumns = `parking_id, code, name, location, total_slots, available_slots, fee_per_hour,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxParkingRepository struct {
	BaseRepository
}

// newPgxParkingRepository creates a new repository for parking data.
func newPgxParkingRepository(db DB) portsrepo.ParkingRepositoryWithTx {
	return &PgxParkingRepository{BaseRepository: BaseRepository{Pool: db}}
}

var _ portsrepo.ParkingRepositoryWithTx = (*PgxParkingRepository)(nil)

func scanParking(row rowScanner) (models.Parking, error) {
	var m models.Parking
	err := row.Scan(
		&m.ParkingID,
		&m.Code,
		&m.Name,
		&m.Location,
		&m.TotalSlots,
		&m.AvailableSlots,
		&m.FeePerHour,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func findParking(ctx context.Context, q queryRower, query string, arg string) (*domain.Parking, error) {
	m, err := scanParking(q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrParkingNotFound
		}
		return nil, fmt.Errorf("failed to find parking %s: %w", arg, err)
	}
	parking := mapping.ToDomainParking(m)
	return &parking, nil
}

// SaveParking inserts a new parking.
func (r *PgxParkingRepository) SaveParking(ctx context.Context, parking domain.Parking) error {
	m := mapping.ToModelParking(parking)
	query := `
		INSERT INTO parkings (` + parkingColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ParkingID,
		m.Code,
		m.Name,
		m.Location,
		m.TotalSlots,
		m.AvailableSlots,
		m.FeePerHour,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicateParkingCode
		}
		if isValueOutOfRange(err) {
			return apperrors.ErrValueOutOfRange
		}
		return fmt.Errorf("failed to save parking %s: %w", m.Code, err)
	}
	return nil
}

// FindParkingByID retrieves a parking by its identifier.
func (r *PgxParkingRepository) FindParkingByID(ctx context.Context, parkingID string) (*domain.Parking, error) {
	if !isValidID(parkingID) {
		return nil, apperrors.ErrParkingNotFound
	}
	query := `SELECT ` + parkingColumns + ` FROM parkings WHERE parking_id = $1;`
	return findParking(ctx, r.Pool, query, parkingID)
}

// FindParkingByCode retrieves a parking by its code.
func (r *PgxParkingRepository) FindParkingByCode(ctx context.Context, code string) (*domain.Parking, error) {
	query := `SELECT ` + parkingColumns + ` FROM parkings WHERE code = $1;`
	return findParking(ctx, r.Pool, query, code)
}

// ListParkings returns every parking ordered by code.
func (r *PgxParkingRepository) ListParkings(ctx context.Context) ([]domain.Parking, error) {
	query := `SELECT ` + parkingColumns + ` FROM parkings ORDER BY code;`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query parkings: %w", err)
	}
	defer rows.Close()

	parkings := []models.Parking{}
	for rows.Next() {
		m, err := scanParking(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan parking row: %w", err)
		}
		parkings = append(parkings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating parking rows: %w", err)
	}
	return mapping.ToDomainParkingSlice(parkings), nil
}

// ListSlotUsage returns the slot counters of each parking next to its number of open sessions.
func (r *PgxParkingRepository) ListSlotUsage(ctx context.Context) ([]domain.SlotUsage, error) {
	query := `
		SELECT p.code, p.total_slots, p.available_slots, COUNT(c.car_id) AS open_cars
		FROM parkings p
		LEFT JOIN cars c ON c.parking_code = p.code AND c.exit_time IS NULL
		GROUP BY p.code, p.total_slots, p.available_slots
		ORDER BY p.code;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query slot usage: %w", err)
	}
	defer rows.Close()

	usage := []domain.SlotUsage{}
	for rows.Next() {
		var m models.SlotUsage
		if err := rows.Scan(&m.Code, &m.TotalSlots, &m.AvailableSlots, &m.OpenCars); err != nil {
			return nil, fmt.Errorf("failed to scan slot usage row: %w", err)
		}
		usage = append(usage, mapping.ToDomainSlotUsage(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating slot usage rows: %w", err)
	}
	return usage, nil
}

// FindParkingByIDForUpdate selects a parking and locks it for the rest of tx.
func (r *PgxParkingRepository) FindParkingByIDForUpdate(ctx context.Context, tx pgx.Tx, parkingID string) (*domain.Parking, error) {
	if !isValidID(parkingID) {
		return nil, apperrors.ErrParkingNotFound
	}
	query := `SELECT ` + parkingColumns + ` FROM parkings WHERE parking_id = $1 FOR UPDATE;`
	return findParking(ctx, tx, query, parkingID)
}

// FindParkingByCodeForUpdate selects a parking by code and locks it for the rest of tx.
func (r *PgxParkingRepository) FindParkingByCodeForUpdate(ctx context.Context, tx pgx.Tx, code string) (*domain.Parking, error) {
	query := `SELECT ` + parkingColumns + ` FROM parkings WHERE code = $1 FOR UPDATE;`
	return findParking(ctx, tx, query, code)
}

// UpdateParkingInTx writes the mutable columns of a parking. The code never changes.
func (r *PgxParkingRepository) UpdateParkingInTx(ctx context.Context, tx pgx.Tx, parking domain.Parking) error {
	m := mapping.ToModelParking(parking)
	query := `
		UPDATE parkings
		SET name = $1, location = $2, total_slots = $3, available_slots = $4, fee_per_hour = $5,
			last_updated_at = $6, last_updated_by = $7
		WHERE parking_id = $8;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.Name,
		m.Location,
		m.TotalSlots,
		m.AvailableSlots,
		m.FeePerHour,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.ParkingID,
	)
	if err != nil {
		if isCheckViolation(err) {
			return apperrors.ErrCapacityBelowUsage
		}
		if isValueOutOfRange(err) {
			return apperrors.ErrValueOutOfRange
		}
		return fmt.Errorf("failed to update parking %s: %w", m.ParkingID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrParkingNotFound
	}
	return nil
}

// DeleteParkingInTx removes a parking. Closed sessions referencing its code are kept.
func (r *PgxParkingRepository) DeleteParkingInTx(ctx context.Context, tx pgx.Tx, parkingID string) error {
	cmdTag, err := tx.Exec(ctx, `DELETE FROM parkings WHERE parking_id = $1;`, parkingID)
	if err != nil {
		return fmt.Errorf("failed to delete parking %s: %w", parkingID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrParkingNotFound
	}
	return nil
}

// DecrementAvailableSlotsInTx takes one slot, refusing to go below zero.
func (r *PgxParkingRepository) DecrementAvailableSlotsInTx(ctx context.Context, tx pgx.Tx, code string) error {
	query := `
		UPDATE parkings
		SET available_slots = available_slots - 1, last_updated_at = NOW()
		WHERE code = $1 AND available_slots > 0;
	`
	cmdTag, err := tx.Exec(ctx, query, code)
	if err != nil {
		return fmt.Errorf("failed to decrement available slots for %s: %w", code, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNoSlotsAvailable
	}
	return nil
}

// IncrementAvailableSlotsInTx releases one slot, refusing to go above the total.
func (r *PgxParkingRepository) IncrementAvailableSlotsInTx(ctx context.Context, tx pgx.Tx, code string) error {
	query := `
		UPDATE parkings
		SET available_slots = available_slots + 1, last_updated_at = NOW()
		WHERE code = $1 AND available_slots < total_slots;
	`
	cmdTag, err := tx.Exec(ctx, query, code)
	if err != nil {
		return fmt.Errorf("failed to increment available slots for %s: %w", code, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrSlotCounterFull
	}
	return nil
}
