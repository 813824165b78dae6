package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/SscSPs/car_parking_app/internal/apperrors"
	"github.com/SscSPs/car_parking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_parking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/car_parking_app/internal/core/ports/services"
	"github.com/SscSPs/car_parking_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// parkingService implements the ParkingSvcFacade interface
type parkingService struct {
	BaseService
	parkingRepo portsrepo.ParkingRepositoryWithTx
	carRepo     portsrepo.CarTransactionSupport
	now         Clock
}

// ParkingServiceOption is a functional option for configuring the parking service
type ParkingServiceOption func(*parkingService)

// WithParkingClock replaces the time source used for audit timestamps.
func WithParkingClock(now Clock) ParkingServiceOption {
	return func(s *parkingService) {
		s.now = now
	}
}

// NewParkingService creates a new parking service. carRepo is used to check for
// open sessions before a parking is deleted.
func NewParkingService(parkingRepo portsrepo.ParkingRepositoryWithTx, carRepo portsrepo.CarTransactionSupport, options ...ParkingServiceOption) portssvc.ParkingSvcFacade {
	svc := &parkingService{
		parkingRepo: parkingRepo,
		carRepo:     carRepo,
		now:         systemClock,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ParkingSvcFacade = (*parkingService)(nil)

func validateParkingAttributes(totalSlots *int, feePerHour *decimal.Decimal) (int, decimal.Decimal, error) {
	if totalSlots == nil || *totalSlots < 0 {
		return 0, decimal.Zero, apperrors.NewValidationError("totalSlots must be a non-negative integer")
	}
	if *totalSlots > domain.MaxTotalSlots {
		return 0, decimal.Zero, apperrors.NewValidationError("totalSlots must be at most %d", domain.MaxTotalSlots)
	}
	if feePerHour == nil || feePerHour.IsNegative() {
		return 0, decimal.Zero, apperrors.NewValidationError("feePerHour must be a non-negative amount")
	}
	if feePerHour.GreaterThan(domain.MaxFeePerHour) {
		return 0, decimal.Zero, apperrors.NewValidationError("feePerHour must be at most %s", domain.MaxFeePerHour.String())
	}
	return *totalSlots, feePerHour.Round(2), nil
}

func (s *parkingService) CreateParking(ctx context.Context, principal domain.Principal, req dto.CreateParkingRequest) (*domain.Parking, error) {
	if err := s.RequireAdmin(ctx, principal, "create_parking"); err != nil {
		return nil, err
	}

	code := domain.NormalizeParkingCode(req.Code)
	if code == "" {
		return nil, apperrors.NewValidationError("code is required")
	}
	if len(code) > domain.MaxParkingCodeLength {
		return nil, apperrors.NewValidationError("code must be at most %d characters", domain.MaxParkingCodeLength)
	}
	totalSlots, fee, err := validateParkingAttributes(req.TotalSlots, req.FeePerHour)
	if err != nil {
		return nil, err
	}

	existing, err := s.parkingRepo.FindParkingByCode(ctx, code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check parking code", slog.String("code", code))
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.ErrDuplicateParkingCode
	}

	now := s.now()
	parking := domain.Parking{
		ParkingID:      uuid.NewString(),
		Code:           code,
		Name:           strings.TrimSpace(req.Name),
		Location:       strings.TrimSpace(req.Location),
		TotalSlots:     totalSlots,
		AvailableSlots: totalSlots,
		FeePerHour:     fee,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     principal.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: principal.UserID,
		},
	}
	if err := s.parkingRepo.SaveParking(ctx, parking); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicateParkingCode) {
			s.LogError(ctx, err, "Failed to save parking", slog.String("code", code))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Parking created", slog.String("parking_id", parking.ParkingID), slog.String("code", code))
	return &parking, nil
}

func (s *parkingService) UpdateParking(ctx context.Context, principal domain.Principal, parkingID string, req dto.UpdateParkingRequest) (*domain.Parking, error) {
	if err := s.RequireAdmin(ctx, principal, "update_parking"); err != nil {
		return nil, err
	}
	totalSlots, fee, err := validateParkingAttributes(req.TotalSlots, req.FeePerHour)
	if err != nil {
		return nil, err
	}

	tx, err := s.parkingRepo.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.parkingRepo.Rollback(ctx, tx) // no-op once committed

	parking, err := s.parkingRepo.FindParkingByIDForUpdate(ctx, tx, parkingID)
	if err != nil {
		return nil, err
	}

	available, ok := parking.Resize(totalSlots)
	if !ok {
		s.LogInfo(ctx, "Rejected capacity change below usage",
			slog.String("parking_id", parkingID),
			slog.Int("used_slots", parking.UsedSlots()),
			slog.Int("requested_total", totalSlots))
		return nil, apperrors.ErrCapacityBelowUsage
	}

	parking.Name = strings.TrimSpace(req.Name)
	parking.Location = strings.TrimSpace(req.Location)
	parking.TotalSlots = totalSlots
	parking.AvailableSlots = available
	parking.FeePerHour = fee
	parking.LastUpdatedAt = s.now()
	parking.LastUpdatedBy = principal.UserID

	if err := s.parkingRepo.UpdateParkingInTx(ctx, tx, *parking); err != nil {
		return nil, err
	}
	if err := s.parkingRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit parking update", slog.String("parking_id", parkingID))
		return nil, err
	}

	s.LogInfo(ctx, "Parking updated", slog.String("parking_id", parkingID))
	return parking, nil
}

func (s *parkingService) DeleteParking(ctx context.Context, principal domain.Principal, parkingID string) error {
	if err := s.RequireAdmin(ctx, principal, "delete_parking"); err != nil {
		return err
	}

	tx, err := s.parkingRepo.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.parkingRepo.Rollback(ctx, tx) // no-op once committed

	parking, err := s.parkingRepo.FindParkingByIDForUpdate(ctx, tx, parkingID)
	if err != nil {
		return err
	}

	open, err := s.carRepo.CountOpenSessionsInTx(ctx, tx, parking.Code)
	if err != nil {
		return err
	}
	if open > 0 {
		return apperrors.ErrHasActiveSessions
	}

	if err := s.parkingRepo.DeleteParkingInTx(ctx, tx, parkingID); err != nil {
		return err
	}
	if err := s.parkingRepo.Commit(ctx, tx); err != nil {
		s.LogError(ctx, err, "Failed to commit parking deletion", slog.String("parking_id", parkingID))
		return err
	}

	s.LogInfo(ctx, "Parking deleted", slog.String("parking_id", parkingID), slog.String("code", parking.Code))
	return nil
}

func (s *parkingService) GetParking(ctx context.Context, parkingID string) (*domain.Parking, error) {
	return s.parkingRepo.FindParkingByID(ctx, parkingID)
}

func (s *parkingService) ListParkings(ctx context.Context) ([]domain.Parking, error) {
	return s.parkingRepo.ListParkings(ctx)
}

func (s *parkingService) CheckSlotConsistency(ctx context.Context) ([]domain.SlotUsage, error) {
	usage, err := s.parkingRepo.ListSlotUsage(ctx)
	if err != nil {
		return nil, err
	}
	drifted := make([]domain.SlotUsage, 0)
	for _, u := range usage {
		if u.Drift() != 0 {
			drifted = append(drifted, u)
		}
	}
	return drifted, nil
}
