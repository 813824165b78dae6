package services

import (
	"context"

	"github.com/SscSPs/car_parking_app/internal/core/domain"
	"github.com/SscSPs/car_parking_app/internal/dto"
)

// ParkingReaderSvc defines read operations for parkings
type ParkingReaderSvc interface {
	GetParking(ctx context.Context, parkingID string) (*domain.Parking, error)
	ListParkings(ctx context.Context) ([]domain.Parking, error)
}

// ParkingWriterSvc defines the admin-only operations on parkings
type ParkingWriterSvc interface {
	// CreateParking opens a parking with every slot available.
	CreateParking(ctx context.Context, principal domain.Principal, req dto.CreateParkingRequest) (*domain.Parking, error)

	// UpdateParking changes the mutable attributes of a parking. A capacity change keeps
	// the number of used slots and fails when the new total is below it.
	UpdateParking(ctx context.Context, principal domain.Principal, parkingID string, req dto.UpdateParkingRequest) (*domain.Parking, error)

	// DeleteParking removes a parking that has no car inside.
	DeleteParking(ctx context.Context, principal domain.Principal, parkingID string) error
}

// SlotAuditSvc compares slot counters with the car ledger.
type SlotAuditSvc interface {
	// CheckSlotConsistency returns the usage of every parking whose counter disagrees with its open sessions.
	CheckSlotConsistency(ctx context.Context) ([]domain.SlotUsage, error)
}

// ParkingSvcFacade combines all parking-related service interfaces
type ParkingSvcFacade interface {
	ParkingReaderSvc
	ParkingWriterSvc
	SlotAuditSvc
}
