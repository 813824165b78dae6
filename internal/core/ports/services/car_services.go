package services

import (
	"context"

	"github.com/SscSPs/car_parking_app/internal/core/domain"
	"github.com/SscSPs/car_parking_app/internal/dto"
)

// CarLedgerSvc defines the entry and exit flows. Each call is one transaction
// covering both the car and the parking slot counter.
type CarLedgerSvc interface {
	// RecordEntry opens a session and takes one slot.
	RecordEntry(ctx context.Context, principal domain.Principal, req dto.CarEntryRequest) (*domain.Ticket, error)

	// RecordExit closes a session, bills it and releases its slot.
	RecordExit(ctx context.Context, principal domain.Principal, carID string) (*domain.Bill, error)
}

// CarReaderSvc defines read operations for parking sessions
type CarReaderSvc interface {
	// ListActive returns open sessions, optionally for a single parking.
	ListActive(ctx context.Context, parkingCode string) ([]domain.Car, error)

	// History returns every session of a plate, newest first.
	History(ctx context.Context, plateNumber string) ([]domain.Car, error)

	GetCar(ctx context.Context, carID string) (*domain.Car, error)
}

// CarSvcFacade combines all car-related service interfaces
type CarSvcFacade interface {
	CarLedgerSvc
	CarReaderSvc
}
