package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/SscSPs/car_parking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_parking_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

type reportingRepository struct {
	db DB
}

func newReportingRepository(db DB) portsrepo.ReportingRepository {
	return &reportingRepository{db: db}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// listCarsBetween filters sessions on column within [from, to], optionally for a single parking.
func (r *reportingRepository) listCarsBetween(ctx context.Context, column string, from, to time.Time, parkingCode string) ([]domain.Car, error) {
	where := ` WHERE c.` + column + ` >= $1 AND c.` + column + ` <= $2`
	args := []any{from, to}
	if parkingCode != "" {
		where += ` AND c.parking_code = $3`
		args = append(args, parkingCode)
	}
	return queryCars(ctx, r.db, carWithParkingSelect+where+` ORDER BY c.`+column+` DESC;`, args...)
}

func (r *reportingRepository) ListCarsExitedBetween(ctx context.Context, from, to time.Time, parkingCode string) ([]domain.Car, error) {
	return r.listCarsBetween(ctx, "exit_time", from, to, parkingCode)
}

func (r *reportingRepository) ListCarsEnteredBetween(ctx context.Context, from, to time.Time, parkingCode string) ([]domain.Car, error) {
	return r.listCarsBetween(ctx, "entry_time", from, to, parkingCode)
}

func (r *reportingRepository) count(ctx context.Context, query string) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to run count query: %w", err)
	}
	return n, nil
}

func (r *reportingRepository) CountParkings(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM parkings;`)
}

func (r *reportingRepository) CountOpenSessions(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM cars WHERE exit_time IS NULL;`)
}

func (r *reportingRepository) SumRevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	query := `SELECT COALESCE(SUM(total_fee), 0) FROM cars WHERE exit_time >= $1 AND exit_time < $2;`
	if err := r.db.QueryRow(ctx, query, from, to).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum revenue: %w", err)
	}
	return total, nil
}

func (r *reportingRepository) SumSlots(ctx context.Context) (int64, int64, error) {
	var total, available int64
	query := `SELECT COALESCE(SUM(total_slots), 0), COALESCE(SUM(available_slots), 0) FROM parkings;`
	if err := r.db.QueryRow(ctx, query).Scan(&total, &available); err != nil {
		return 0, 0, fmt.Errorf("failed to sum slots: %w", err)
	}
	return total, available, nil
}
