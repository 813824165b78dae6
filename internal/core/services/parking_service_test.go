package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/car_parking_app/internal/apperrors"
	"github.com/SscSPs/car_parking_app/internal/core/domain"
	portssvc "github.com/SscSPs/car_parking_app/internal/core/ports/services"
	"github.com/SscSPs/car_parking_app/internal/core/services"
	"github.com/SscSPs/car_parking_app/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type ParkingServiceTestSuite struct {
	suite.Suite
	parkingRepo *MockParkingRepository
	carRepo     *MockCarRepository
	service     portssvc.ParkingSvcFacade
	ctx         context.Context
	tx          *fakeTx
	now         time.Time
}

func (s *ParkingServiceTestSuite) SetupTest() {
	s.parkingRepo = new(MockParkingRepository)
	s.carRepo = new(MockCarRepository)
	s.ctx = context.Background()
	s.tx = &fakeTx{}
	s.now = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	s.service = services.NewParkingService(s.parkingRepo, s.carRepo,
		services.WithParkingClock(func() time.Time { return s.now }))

	s.parkingRepo.On("Rollback", mock.Anything, s.tx).Return(nil).Maybe()
}

func (s *ParkingServiceTestSuite) TearDownTest() {
	s.parkingRepo.AssertExpectations(s.T())
	s.carRepo.AssertExpectations(s.T())
}

func TestParkingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ParkingServiceTestSuite))
}

func existingParking(total, available int) *domain.Parking {
	return &domain.Parking{
		ParkingID:      "parking-1",
		Code:           "P001",
		Name:           "Main Parking",
		Location:       "City Center",
		TotalSlots:     total,
		AvailableSlots: available,
		FeePerHour:     decimal.RequireFromString("2.50"),
	}
}

func (s *ParkingServiceTestSuite) TestCreateParking_Success() {
	req := dto.CreateParkingRequest{
		Code:       " p002 ",
		Name:       " Airport ",
		Location:   "Terminal 1",
		TotalSlots: intPtr(50),
		FeePerHour: decPtr("3.456"),
	}
	s.parkingRepo.On("FindParkingByCode", mock.Anything, "P002").Return(nil, apperrors.ErrParkingNotFound).Once()
	s.parkingRepo.On("SaveParking", mock.Anything, mock.MatchedBy(func(p domain.Parking) bool {
		return p.Code == "P002" &&
			p.Name == "Airport" &&
			p.TotalSlots == 50 &&
			p.AvailableSlots == 50 &&
			p.FeePerHour.Equal(decimal.RequireFromString("3.46")) &&
			p.CreatedBy == "admin-1" &&
			p.CreatedAt.Equal(s.now) &&
			p.ParkingID != ""
	})).Return(nil).Once()

	parking, err := s.service.CreateParking(s.ctx, admin, req)

	s.Require().NoError(err)
	s.Equal("P002", parking.Code)
	s.Equal(50, parking.AvailableSlots)
}

func (s *ParkingServiceTestSuite) TestCreateParking_RequiresAdmin() {
	_, err := s.service.CreateParking(s.ctx, regular, dto.CreateParkingRequest{
		Code: "P002", Name: "Airport", TotalSlots: intPtr(5), FeePerHour: decPtr("1"),
	})

	s.ErrorIs(err, apperrors.ErrAdminRequired)
	s.ErrorIs(err, apperrors.ErrForbidden)
	s.parkingRepo.AssertNotCalled(s.T(), "SaveParking", mock.Anything, mock.Anything)
}

func (s *ParkingServiceTestSuite) TestCreateParking_DuplicateCode() {
	s.parkingRepo.On("FindParkingByCode", mock.Anything, "P001").Return(existingParking(10, 10), nil).Once()

	_, err := s.service.CreateParking(s.ctx, admin, dto.CreateParkingRequest{
		Code: "P001", Name: "Again", TotalSlots: intPtr(5), FeePerHour: decPtr("1"),
	})

	s.ErrorIs(err, apperrors.ErrDuplicateParkingCode)
	s.parkingRepo.AssertNotCalled(s.T(), "SaveParking", mock.Anything, mock.Anything)
}

func (s *ParkingServiceTestSuite) TestCreateParking_InvalidAttributes() {
	_, err := s.service.CreateParking(s.ctx, admin, dto.CreateParkingRequest{
		Code: "P002", Name: "Airport", TotalSlots: intPtr(-1), FeePerHour: decPtr("1"),
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.CreateParking(s.ctx, admin, dto.CreateParkingRequest{
		Code: "P002", Name: "Airport", TotalSlots: intPtr(1), FeePerHour: decPtr("-0.5"),
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.CreateParking(s.ctx, admin, dto.CreateParkingRequest{
		Code: "P002", Name: "Airport", FeePerHour: decPtr("1"),
	})
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *ParkingServiceTestSuite) TestCreateParking_RejectsValuesBeyondColumns() {
	_, err := s.service.CreateParking(s.ctx, admin, dto.CreateParkingRequest{
		Code: strings.Repeat("P", 33), Name: "Airport", TotalSlots: intPtr(10), FeePerHour: decPtr("1"),
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.CreateParking(s.ctx, admin, dto.CreateParkingRequest{
		Code: "P002", Name: "Airport", TotalSlots: intPtr(domain.MaxTotalSlots + 1), FeePerHour: decPtr("1"),
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.CreateParking(s.ctx, admin, dto.CreateParkingRequest{
		Code: "P002", Name: "Airport", TotalSlots: intPtr(10), FeePerHour: decPtr("1000000000"),
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	s.parkingRepo.AssertNotCalled(s.T(), "FindParkingByCode", mock.Anything, mock.Anything)
	s.parkingRepo.AssertNotCalled(s.T(), "SaveParking", mock.Anything, mock.Anything)
}

func (s *ParkingServiceTestSuite) TestCreateParking_AcceptsUpperBounds() {
	s.parkingRepo.On("FindParkingByCode", mock.Anything, strings.Repeat("P", 32)).Return(nil, apperrors.ErrParkingNotFound).Once()
	s.parkingRepo.On("SaveParking", mock.Anything, mock.Anything).Return(nil).Once()

	parking, err := s.service.CreateParking(s.ctx, admin, dto.CreateParkingRequest{
		Code: strings.Repeat("p", 32), Name: "Stadium", TotalSlots: intPtr(domain.MaxTotalSlots), FeePerHour: decPtr("100000"),
	})

	s.Require().NoError(err)
	s.Equal(domain.MaxTotalSlots, parking.AvailableSlots)
	s.True(domain.MaxFeePerHour.Equal(parking.FeePerHour))
}

func (s *ParkingServiceTestSuite) TestUpdateParking_RejectsValuesBeyondColumns() {
	_, err := s.service.UpdateParking(s.ctx, admin, "parking-1", dto.UpdateParkingRequest{
		Name: "Main Parking", TotalSlots: intPtr(domain.MaxTotalSlots + 1), FeePerHour: decPtr("2.50"),
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	_, err = s.service.UpdateParking(s.ctx, admin, "parking-1", dto.UpdateParkingRequest{
		Name: "Main Parking", TotalSlots: intPtr(10), FeePerHour: decPtr("100000.01"),
	})
	s.ErrorIs(err, apperrors.ErrValidation)

	s.parkingRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *ParkingServiceTestSuite) TestUpdateParking_KeepsUsedSlots() {
	s.parkingRepo.On("Begin", mock.Anything).Return(s.tx, nil).Once()
	s.parkingRepo.On("FindParkingByIDForUpdate", mock.Anything, s.tx, "parking-1").Return(existingParking(10, 4), nil).Once()
	s.parkingRepo.On("UpdateParkingInTx", mock.Anything, s.tx, mock.MatchedBy(func(p domain.Parking) bool {
		return p.TotalSlots == 20 &&
			p.AvailableSlots == 14 &&
			p.Name == "Main Parking West" &&
			p.FeePerHour.Equal(decimal.NewFromInt(3)) &&
			p.LastUpdatedBy == "admin-1"
	})).Return(nil).Once()
	s.parkingRepo.On("Commit", mock.Anything, s.tx).Return(nil).Once()

	parking, err := s.service.UpdateParking(s.ctx, admin, "parking-1", dto.UpdateParkingRequest{
		Name: "Main Parking West", Location: "City Center", TotalSlots: intPtr(20), FeePerHour: decPtr("3"),
	})

	s.Require().NoError(err)
	s.Equal(14, parking.AvailableSlots)
	s.Equal(6, parking.UsedSlots())
}

func (s *ParkingServiceTestSuite) TestUpdateParking_ShrinkToUsage() {
	s.parkingRepo.On("Begin", mock.Anything).Return(s.tx, nil).Once()
	s.parkingRepo.On("FindParkingByIDForUpdate", mock.Anything, s.tx, "parking-1").Return(existingParking(10, 4), nil).Once()
	s.parkingRepo.On("UpdateParkingInTx", mock.Anything, s.tx, mock.MatchedBy(func(p domain.Parking) bool {
		return p.TotalSlots == 6 && p.AvailableSlots == 0
	})).Return(nil).Once()
	s.parkingRepo.On("Commit", mock.Anything, s.tx).Return(nil).Once()

	parking, err := s.service.UpdateParking(s.ctx, admin, "parking-1", dto.UpdateParkingRequest{
		Name: "Main Parking", TotalSlots: intPtr(6), FeePerHour: decPtr("2.50"),
	})

	s.Require().NoError(err)
	s.Equal(0, parking.AvailableSlots)
}

func (s *ParkingServiceTestSuite) TestUpdateParking_BelowUsageRejected() {
	s.parkingRepo.On("Begin", mock.Anything).Return(s.tx, nil).Once()
	s.parkingRepo.On("FindParkingByIDForUpdate", mock.Anything, s.tx, "parking-1").Return(existingParking(10, 4), nil).Once()

	_, err := s.service.UpdateParking(s.ctx, admin, "parking-1", dto.UpdateParkingRequest{
		Name: "Main Parking", TotalSlots: intPtr(5), FeePerHour: decPtr("2.50"),
	})

	s.ErrorIs(err, apperrors.ErrCapacityBelowUsage)
	s.parkingRepo.AssertNotCalled(s.T(), "UpdateParkingInTx", mock.Anything, mock.Anything, mock.Anything)
	s.parkingRepo.AssertCalled(s.T(), "Rollback", mock.Anything, s.tx)
}

func (s *ParkingServiceTestSuite) TestUpdateParking_NotFound() {
	s.parkingRepo.On("Begin", mock.Anything).Return(s.tx, nil).Once()
	s.parkingRepo.On("FindParkingByIDForUpdate", mock.Anything, s.tx, "missing").Return(nil, apperrors.ErrParkingNotFound).Once()

	_, err := s.service.UpdateParking(s.ctx, admin, "missing", dto.UpdateParkingRequest{
		Name: "x", TotalSlots: intPtr(5), FeePerHour: decPtr("1"),
	})

	s.ErrorIs(err, apperrors.ErrParkingNotFound)
}

func (s *ParkingServiceTestSuite) TestUpdateParking_RequiresAdmin() {
	_, err := s.service.UpdateParking(s.ctx, regular, "parking-1", dto.UpdateParkingRequest{
		Name: "x", TotalSlots: intPtr(5), FeePerHour: decPtr("1"),
	})

	s.ErrorIs(err, apperrors.ErrAdminRequired)
	s.parkingRepo.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *ParkingServiceTestSuite) TestDeleteParking_WithActiveCars() {
	s.parkingRepo.On("Begin", mock.Anything).Return(s.tx, nil).Once()
	s.parkingRepo.On("FindParkingByIDForUpdate", mock.Anything, s.tx, "parking-1").Return(existingParking(10, 8), nil).Once()
	s.carRepo.On("CountOpenSessionsInTx", mock.Anything, s.tx, "P001").Return(int64(2), nil).Once()

	err := s.service.DeleteParking(s.ctx, admin, "parking-1")

	s.ErrorIs(err, apperrors.ErrHasActiveSessions)
	s.parkingRepo.AssertNotCalled(s.T(), "DeleteParkingInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (s *ParkingServiceTestSuite) TestDeleteParking_Success() {
	s.parkingRepo.On("Begin", mock.Anything).Return(s.tx, nil).Once()
	s.parkingRepo.On("FindParkingByIDForUpdate", mock.Anything, s.tx, "parking-1").Return(existingParking(10, 10), nil).Once()
	s.carRepo.On("CountOpenSessionsInTx", mock.Anything, s.tx, "P001").Return(int64(0), nil).Once()
	s.parkingRepo.On("DeleteParkingInTx", mock.Anything, s.tx, "parking-1").Return(nil).Once()
	s.parkingRepo.On("Commit", mock.Anything, s.tx).Return(nil).Once()

	s.NoError(s.service.DeleteParking(s.ctx, admin, "parking-1"))
}

func (s *ParkingServiceTestSuite) TestCheckSlotConsistency_ReturnsOnlyDrift() {
	s.parkingRepo.On("ListSlotUsage", mock.Anything).Return([]domain.SlotUsage{
		{Code: "P001", TotalSlots: 10, AvailableSlots: 7, OpenCars: 3},
		{Code: "P002", TotalSlots: 5, AvailableSlots: 5, OpenCars: 1},
	}, nil).Once()

	drifted, err := s.service.CheckSlotConsistency(s.ctx)

	s.Require().NoError(err)
	s.Require().Len(drifted, 1)
	s.Equal("P002", drifted[0].Code)
	s.Equal(-1, drifted[0].Drift())
}
