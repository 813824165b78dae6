package handlers_test

import (
	"context"
	"time"

	"github.com/SscSPs/car_parking_app/internal/core/domain"
	portssvc "github.com/SscSPs/car_parking_app/internal/core/ports/services"
	"github.com/SscSPs/car_parking_app/internal/dto"
	"github.com/stretchr/testify/mock"
)

// --- Mock Services ---

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

type MockParkingService struct {
	mock.Mock
}

func (m *MockParkingService) GetParking(ctx context.Context, parkingID string) (*domain.Parking, error) {
	args := m.Called(ctx, parkingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Parking), args.Error(1)
}

func (m *MockParkingService) ListParkings(ctx context.Context) ([]domain.Parking, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Parking), args.Error(1)
}

func (m *MockParkingService) CreateParking(ctx context.Context, principal domain.Principal, req dto.CreateParkingRequest) (*domain.Parking, error) {
	args := m.Called(ctx, principal, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Parking), args.Error(1)
}

func (m *MockParkingService) UpdateParking(ctx context.Context, principal domain.Principal, parkingID string, req dto.UpdateParkingRequest) (*domain.Parking, error) {
	args := m.Called(ctx, principal, parkingID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Parking), args.Error(1)
}

func (m *MockParkingService) DeleteParking(ctx context.Context, principal domain.Principal, parkingID string) error {
	args := m.Called(ctx, principal, parkingID)
	return args.Error(0)
}

func (m *MockParkingService) CheckSlotConsistency(ctx context.Context) ([]domain.SlotUsage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SlotUsage), args.Error(1)
}

type MockCarService struct {
	mock.Mock
}

func (m *MockCarService) RecordEntry(ctx context.Context, principal domain.Principal, req dto.CarEntryRequest) (*domain.Ticket, error) {
	args := m.Called(ctx, principal, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Ticket), args.Error(1)
}

func (m *MockCarService) RecordExit(ctx context.Context, principal domain.Principal, carID string) (*domain.Bill, error) {
	args := m.Called(ctx, principal, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockCarService) ListActive(ctx context.Context, parkingCode string) ([]domain.Car, error) {
	args := m.Called(ctx, parkingCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Car), args.Error(1)
}

func (m *MockCarService) History(ctx context.Context, plateNumber string) ([]domain.Car, error) {
	args := m.Called(ctx, plateNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Car), args.Error(1)
}

func (m *MockCarService) GetCar(ctx context.Context, carID string) (*domain.Car, error) {
	args := m.Called(ctx, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Car), args.Error(1)
}

type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) OutgoingReport(ctx context.Context, principal domain.Principal, from, to time.Time, parkingCode string) (*domain.OutgoingReport, error) {
	args := m.Called(ctx, principal, from, to, parkingCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OutgoingReport), args.Error(1)
}

func (m *MockReportingService) EnteredReport(ctx context.Context, principal domain.Principal, from, to time.Time, parkingCode string) (*domain.EnteredReport, error) {
	args := m.Called(ctx, principal, from, to, parkingCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EnteredReport), args.Error(1)
}

func (m *MockReportingService) Dashboard(ctx context.Context, principal domain.Principal) (*domain.DashboardStats, error) {
	args := m.Called(ctx, principal)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardStats), args.Error(1)
}

var (
	_ portssvc.UserSvcFacade    = (*MockUserService)(nil)
	_ portssvc.TokenSvcFacade   = (*MockTokenService)(nil)
	_ portssvc.ParkingSvcFacade = (*MockParkingService)(nil)
	_ portssvc.CarSvcFacade     = (*MockCarService)(nil)
	_ portssvc.ReportingService = (*MockReportingService)(nil)
)
