package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/car_parking_app/internal/apperrors"
	"github.com/SscSPs/car_parking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_parking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/car_parking_app/internal/core/ports/services"
	"github.com/SscSPs/car_parking_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerRecorder receives the outcome of entry and exit operations, for metrics.
type LedgerRecorder interface {
	CarEntered(parkingCode string)
	CarExited(parkingCode string, fee decimal.Decimal)
	EntryRejected(reason string)
	SlotCounterOverrun(parkingCode string)
}

type noopRecorder struct{}

func (noopRecorder) CarEntered(string)                 {}
func (noopRecorder) CarExited(string, decimal.Decimal) {}
func (noopRecorder) EntryRejected(string)              {}
func (noopRecorder) SlotCounterOverrun(string)         {}

// carService implements the CarSvcFacade interface
type carService struct {
	BaseService
	carRepo     portsrepo.CarRepositoryWithTx
	parkingRepo portsrepo.ParkingTransactionSupport
	now         Clock
	recorder    LedgerRecorder
}

// CarServiceOption is a functional option for configuring the car service
type CarServiceOption func(*carService)

// WithCarClock replaces the time source used for entry and exit times.
func WithCarClock(now Clock) CarServiceOption {
	return func(s *carService) {
		s.now = now
	}
}

// WithLedgerRecorder reports entries and exits to recorder.
func WithLedgerRecorder(recorder LedgerRecorder) CarServiceOption {
	return func(s *carService) {
		if recorder != nil {
			s.recorder = recorder
		}
	}
}

// NewCarService creates a new car service. Both repositories must share one
// connection pool, since entry and exit update them in the same transaction.
func NewCarService(carRepo portsrepo.CarRepositoryWithTx, parkingRepo portsrepo.ParkingTransactionSupport, options ...CarServiceOption) portssvc.CarSvcFacade {
	svc := &carService{
		carRepo:     carRepo,
		parkingRepo: parkingRepo,
		now:         systemClock,
		recorder:    noopRecorder{},
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CarSvcFacade = (*carService)(nil)

func (s *carService) RecordEntry(ctx context.Context, principal domain.Principal, req dto.CarEntryRequest) (*domain.Ticket, error) {
	plate := domain.NormalizePlate(req.PlateNumber)
	code := domain.NormalizeParkingCode(req.ParkingCode)
	if plate == "" {
		return nil, apperrors.NewValidationError("plateNumber is required")
	}
	if code == "" {
		return nil, apperrors.NewValidationError("parkingCode is required")
	}

	tx, err := s.carRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.carRepo.Rollback(ctx, tx) // no-op once committed

	parking, err := s.parkingRepo.FindParkingByCodeForUpdate(ctx, tx, code)
	if err != nil {
		return nil, err
	}
	if parking.AvailableSlots <= 0 {
		s.recorder.EntryRejected("no_slots")
		return nil, apperrors.ErrNoSlotsAvailable
	}

	open, err := s.carRepo.HasOpenSessionInTx(ctx, tx, plate, code)
	if err != nil {
		return nil, err
	}
	if open {
		s.recorder.EntryRejected("already_parked")
		return nil, apperrors.ErrSessionAlreadyOpen
	}

	now := s.now()
	car := domain.Car{
		CarID:       uuid.NewString(),
		PlateNumber: plate,
		ParkingCode: code,
		ParkingID:   parking.ParkingID,
		EntryTime:   now,
		CreatedBy:   principal.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.carRepo.SaveCarInTx(ctx, tx, car); err != nil {
		return nil, err
	}
	if err := s.parkingRepo.DecrementAvailableSlotsInTx(ctx, tx, code); err != nil {
		return nil, err
	}
	if err := s.carRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit car entry", slog.String("car_id", car.CarID))
		return nil, err
	}

	s.recorder.CarEntered(code)
	s.LogInfo(ctx, "Car entry recorded",
		slog.String("car_id", car.CarID),
		slog.String("plate_number", plate),
		slog.String("parking_code", code))

	return &domain.Ticket{
		TicketID:    car.CarID,
		PlateNumber: car.PlateNumber,
		ParkingName: parking.Name,
		ParkingCode: car.ParkingCode,
		EntryTime:   car.EntryTime,
		FeePerHour:  parking.FeePerHour,
	}, nil
}

func (s *carService) RecordExit(ctx context.Context, principal domain.Principal, carID string) (*domain.Bill, error) {
	tx, err := s.carRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.carRepo.Rollback(ctx, tx) // no-op once committed

	car, err := s.carRepo.FindCarByIDForUpdate(ctx, tx, carID)
	if err != nil {
		return nil, err
	}
	if !car.IsOpen() {
		return nil, apperrors.ErrAlreadyExited
	}

	parking, err := s.parkingRepo.FindParkingByCodeForUpdate(ctx, tx, car.ParkingCode)
	if err != nil {
		return nil, err
	}

	exitTime := s.now()
	if exitTime.Before(car.EntryTime) {
		// Clock skew between instances; the stay bills zero hours.
		exitTime = car.EntryTime
	}
	hours := domain.BillableHours(car.EntryTime, exitTime)
	fee := domain.CalculateFee(hours, parking.FeePerHour)

	if err := s.carRepo.CloseCarInTx(ctx, tx, car.CarID, exitTime, fee); err != nil {
		return nil, err
	}

	if err := s.parkingRepo.IncrementAvailableSlotsInTx(ctx, tx, car.ParkingCode); err != nil {
		if !errors.Is(err, apperrors.ErrSlotCounterFull) {
			return nil, err
		}
		s.recorder.SlotCounterOverrun(car.ParkingCode)
		s.LogWarn(ctx, "Available slots already at total on exit",
			slog.String("car_id", car.CarID),
			slog.String("parking_code", car.ParkingCode))
	}

	if err := s.carRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit car exit", slog.String("car_id", car.CarID))
		return nil, err
	}

	s.recorder.CarExited(car.ParkingCode, fee)
	s.LogInfo(ctx, "Car exit recorded",
		slog.String("car_id", car.CarID),
		slog.String("exited_by", principal.UserID),
		slog.Int64("hours", hours),
		slog.String("fee", fee.StringFixed(2)))

	return &domain.Bill{
		BillID:      car.CarID,
		PlateNumber: car.PlateNumber,
		ParkingName: parking.Name,
		ParkingCode: car.ParkingCode,
		EntryTime:   car.EntryTime,
		ExitTime:    exitTime,
		HoursParked: hours,
		FeePerHour:  parking.FeePerHour,
		TotalFee:    fee,
	}, nil
}

func (s *carService) ListActive(ctx context.Context, parkingCode string) ([]domain.Car, error) {
	return s.carRepo.ListActiveCars(ctx, domain.NormalizeParkingCode(parkingCode))
}

func (s *carService) History(ctx context.Context, plateNumber string) ([]domain.Car, error) {
	plate := domain.NormalizePlate(plateNumber)
	if plate == "" {
		return nil, apperrors.NewValidationError("plateNumber is required")
	}
	return s.carRepo.ListCarsByPlate(ctx, plate)
}

func (s *carService) GetCar(ctx context.Context, carID string) (*domain.Car, error) {
	return s.carRepo.FindCarByID(ctx, carID)
}
