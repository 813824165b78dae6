package repositories

import (
	"context"

	"github.com/SscSPs/car_parking_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// ParkingReader defines read operations for parking data
type ParkingReader interface {
	// FindParkingByID retrieves a parking by its identifier.
	FindParkingByID(ctx context.Context, parkingID string) (*domain.Parking, error)

	// FindParkingByCode retrieves a parking by its unique code.
	FindParkingByCode(ctx context.Context, code string) (*domain.Parking, error)

	// ListParkings returns all parkings ordered by code.
	ListParkings(ctx context.Context) ([]domain.Parking, error)

	// ListSlotUsage returns each parking's slot counters next to its count of open sessions.
	ListSlotUsage(ctx context.Context) ([]domain.SlotUsage, error)
}

// ParkingWriter defines write operations for parking data
type ParkingWriter interface {
	// SaveParking persists a new parking. A taken code yields apperrors.ErrDuplicateParkingCode.
	SaveParking(ctx context.Context, parking domain.Parking) error
}

// ParkingTransactionSupport defines the operations that must run inside a caller-owned transaction.
type ParkingTransactionSupport interface {
	// FindParkingByIDForUpdate selects a parking and locks its row until tx ends.
	FindParkingByIDForUpdate(ctx context.Context, tx pgx.Tx, parkingID string) (*domain.Parking, error)

	// FindParkingByCodeForUpdate selects a parking by code and locks its row until tx ends.
	FindParkingByCodeForUpdate(ctx context.Context, tx pgx.Tx, code string) (*domain.Parking, error)

	// UpdateParkingInTx writes name, location, fee and both slot counters of an existing parking.
	UpdateParkingInTx(ctx context.Context, tx pgx.Tx, parking domain.Parking) error

	// DeleteParkingInTx removes a parking row.
	DeleteParkingInTx(ctx context.Context, tx pgx.Tx, parkingID string) error

	// DecrementAvailableSlotsInTx takes one slot. It fails with apperrors.ErrNoSlotsAvailable
	// when the counter is already zero.
	DecrementAvailableSlotsInTx(ctx context.Context, tx pgx.Tx, code string) error

	// IncrementAvailableSlotsInTx releases one slot without exceeding the total.
	IncrementAvailableSlotsInTx(ctx context.Context, tx pgx.Tx, code string) error
}

// ParkingRepositoryFacade combines all parking-related repository interfaces
type ParkingRepositoryFacade interface {
	ParkingReader
	ParkingWriter
	ParkingTransactionSupport
}

// ParkingRepositoryWithTx extends ParkingRepositoryFacade with transaction capabilities
type ParkingRepositoryWithTx interface {
	ParkingRepositoryFacade
	TransactionManager
}
