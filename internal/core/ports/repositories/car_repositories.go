package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/car_parking_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// CarReader defines read operations for parking sessions
type CarReader interface {
	// FindCarByID retrieves a session by its identifier, parking joined.
	FindCarByID(ctx context.Context, carID string) (*domain.Car, error)

	// ListActiveCars returns open sessions, newest entry first. An empty parkingCode means all parkings.
	ListActiveCars(ctx context.Context, parkingCode string) ([]domain.Car, error)

	// ListCarsByPlate returns every session of a plate, newest entry first.
	ListCarsByPlate(ctx context.Context, plateNumber string) ([]domain.Car, error)
}

// CarTransactionSupport defines the session operations used by the entry and exit flows.
type CarTransactionSupport interface {
	// HasOpenSessionInTx reports whether plateNumber already has an open session at parkingCode.
	HasOpenSessionInTx(ctx context.Context, tx pgx.Tx, plateNumber, parkingCode string) (bool, error)

	// CountOpenSessionsInTx counts open sessions at parkingCode.
	CountOpenSessionsInTx(ctx context.Context, tx pgx.Tx, parkingCode string) (int64, error)

	// SaveCarInTx inserts a new open session. A concurrent duplicate yields apperrors.ErrSessionAlreadyOpen.
	SaveCarInTx(ctx context.Context, tx pgx.Tx, car domain.Car) error

	// FindCarByIDForUpdate selects a session and locks its row until tx ends.
	FindCarByIDForUpdate(ctx context.Context, tx pgx.Tx, carID string) (*domain.Car, error)

	// CloseCarInTx sets exit time and fee of an open session. It fails with
	// apperrors.ErrAlreadyExited if the session is already closed.
	CloseCarInTx(ctx context.Context, tx pgx.Tx, carID string, exitTime time.Time, totalFee decimal.Decimal) error
}

// CarRepositoryFacade combines all car-related repository interfaces
type CarRepositoryFacade interface {
	CarReader
	CarTransactionSupport
}

// CarRepositoryWithTx extends CarRepositoryFacade with transaction capabilities
type CarRepositoryWithTx interface {
	CarRepositoryFacade
	TransactionManager
}
