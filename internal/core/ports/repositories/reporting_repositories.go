package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/car_parking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportingRepository defines the read-only queries behind the admin reports.
type ReportingRepository interface {
	// ListCarsExitedBetween returns sessions with from <= exit_time <= to, newest exit first.
	// A non-empty parkingCode restricts the result to that parking.
	ListCarsExitedBetween(ctx context.Context, from, to time.Time, parkingCode string) ([]domain.Car, error)

	// ListCarsEnteredBetween returns sessions with from <= entry_time <= to, newest entry first.
	ListCarsEnteredBetween(ctx context.Context, from, to time.Time, parkingCode string) ([]domain.Car, error)

	// CountParkings returns the number of parkings.
	CountParkings(ctx context.Context) (int64, error)

	// CountOpenSessions returns the number of open sessions across all parkings.
	CountOpenSessions(ctx context.Context) (int64, error)

	// SumRevenueBetween sums total_fee of sessions with from <= exit_time < to.
	SumRevenueBetween(ctx context.Context, from, to time.Time) (decimal.Decimal, error)

	// SumSlots returns total and available slots across all parkings.
	SumSlots(ctx context.Context) (total int64, available int64, err error)
}
