package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/car_parking_app/internal/apperrors"
	"github.com/SscSPs/car_parking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_parking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/car_parking_app/internal/core/ports/services"
	"github.com/SscSPs/car_parking_app/internal/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SeedData describes what a fresh installation is populated with.
type SeedData struct {
	AdminEmail    string
	AdminPassword string
	Parking       domain.Parking
}

// DefaultSeedParking is the parking created on first start.
func DefaultSeedParking() domain.Parking {
	return domain.Parking{
		Code:           "P001",
		Name:           "Main Parking",
		Location:       "City Center",
		TotalSlots:     100,
		AvailableSlots: 100,
		FeePerHour:     decimal.RequireFromString("2.50"),
	}
}

type staticDataService struct {
	BaseService
	userRepo    portsrepo.UserRepositoryFacade
	parkingRepo portsrepo.ParkingRepositoryFacade
	seed        SeedData
	now         Clock
}

// NewStaticDataService creates the service that seeds the first administrator and default parking.
func NewStaticDataService(userRepo portsrepo.UserRepositoryFacade, parkingRepo portsrepo.ParkingRepositoryFacade, seed SeedData) portssvc.StaticDataService {
	return &staticDataService{
		userRepo:    userRepo,
		parkingRepo: parkingRepo,
		seed:        seed,
		now:         systemClock,
	}
}

// InitializeStaticData creates whatever part of the seed is missing. It is safe to run on every start.
func (s *staticDataService) InitializeStaticData(ctx context.Context) error {
	if err := s.seedAdmin(ctx); err != nil {
		return err
	}
	return s.seedParking(ctx)
}

func (s *staticDataService) seedAdmin(ctx context.Context) error {
	email := normalizeEmail(s.seed.AdminEmail)
	if email == "" {
		return nil
	}
	_, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to look up seed admin: %w", err)
	}

	hash, err := utils.HashPassword(s.seed.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash seed admin password: %w", err)
	}
	now := s.now()
	admin := domain.User{
		UserID:        uuid.NewString(),
		FirstName:     "Admin",
		LastName:      "User",
		Email:         email,
		PasswordHash:  hash,
		Role:          domain.RoleAdmin,
		CreatedAt:     now,
		LastUpdatedAt: now,
	}
	if err := s.userRepo.SaveUser(ctx, admin); err != nil && !errors.Is(err, apperrors.ErrDuplicateEmail) {
		return fmt.Errorf("failed to seed admin: %w", err)
	}
	s.LogInfo(ctx, "Seeded admin user", slog.String("email", email))
	return nil
}

func (s *staticDataService) seedParking(ctx context.Context) error {
	parking := s.seed.Parking
	if parking.Code == "" {
		return nil
	}
	_, err := s.parkingRepo.FindParkingByCode(ctx, parking.Code)
	if err == nil {
		return nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return fmt.Errorf("failed to look up seed parking: %w", err)
	}

	now := s.now()
	parking.ParkingID = uuid.NewString()
	parking.CreatedAt = now
	parking.LastUpdatedAt = now
	if err := s.parkingRepo.SaveParking(ctx, parking); err != nil && !errors.Is(err, apperrors.ErrDuplicateParkingCode) {
		return fmt.Errorf("failed to seed parking: %w", err)
	}
	s.LogInfo(ctx, "Seeded parking", slog.String("code", parking.Code))
	return nil
}
