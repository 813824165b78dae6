package services

import (
	"context"
	"time"

	"github.com/SscSPs/car_parking_app/internal/apperrors"
	"github.com/SscSPs/car_parking_app/internal/core/domain"
	portsrepo "github.com/SscSPs/car_parking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/car_parking_app/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type reportingService struct {
	BaseService
	repo portsrepo.ReportingRepository
	now  Clock
}

// ReportingServiceOption is a functional option for configuring the reporting service
type ReportingServiceOption func(*reportingService)

// WithReportingClock replaces the time source that decides what "today" is.
func WithReportingClock(now Clock) ReportingServiceOption {
	return func(s *reportingService) {
		s.now = now
	}
}

// NewReportingService creates a new reporting service
func NewReportingService(repo portsrepo.ReportingRepository, options ...ReportingServiceOption) portssvc.ReportingService {
	svc := &reportingService{repo: repo, now: systemClock}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ReportingService = (*reportingService)(nil)

// period returns the inclusive bounds of a report: from as given, to extended to the end of its day.
func period(from, to time.Time) (time.Time, time.Time, error) {
	end := domain.EndOfDay(to)
	if from.After(end) {
		return time.Time{}, time.Time{}, apperrors.ErrInvalidDateRange
	}
	return from, end, nil
}

func (s *reportingService) OutgoingReport(ctx context.Context, principal domain.Principal, from, to time.Time, parkingCode string) (*domain.OutgoingReport, error) {
	if err := s.RequireAdmin(ctx, principal, "outgoing_report"); err != nil {
		return nil, err
	}
	start, end, err := period(from, to)
	if err != nil {
		return nil, err
	}

	cars, err := s.repo.ListCarsExitedBetween(ctx, start, end, domain.NormalizeParkingCode(parkingCode))
	if err != nil {
		s.LogError(ctx, err, "Failed to list exited cars")
		return nil, err
	}

	total := decimal.Zero
	for _, car := range cars {
		if car.TotalFee != nil {
			total = total.Add(*car.TotalFee)
		}
	}
	return &domain.OutgoingReport{Cars: cars, TotalAmount: total, Count: len(cars)}, nil
}

func (s *reportingService) EnteredReport(ctx context.Context, principal domain.Principal, from, to time.Time, parkingCode string) (*domain.EnteredReport, error) {
	if err := s.RequireAdmin(ctx, principal, "entered_report"); err != nil {
		return nil, err
	}
	start, end, err := period(from, to)
	if err != nil {
		return nil, err
	}

	cars, err := s.repo.ListCarsEnteredBetween(ctx, start, end, domain.NormalizeParkingCode(parkingCode))
	if err != nil {
		s.LogError(ctx, err, "Failed to list entered cars")
		return nil, err
	}
	return &domain.EnteredReport{Cars: cars, Count: len(cars)}, nil
}

func (s *reportingService) Dashboard(ctx context.Context, principal domain.Principal) (*domain.DashboardStats, error) {
	if err := s.RequireAdmin(ctx, principal, "dashboard"); err != nil {
		return nil, err
	}

	parkings, err := s.repo.CountParkings(ctx)
	if err != nil {
		return nil, err
	}
	activeCars, err := s.repo.CountOpenSessions(ctx)
	if err != nil {
		return nil, err
	}
	today := domain.StartOfDay(s.now())
	revenue, err := s.repo.SumRevenueBetween(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}
	totalSlots, availableSlots, err := s.repo.SumSlots(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.DashboardStats{
		TotalParkings:   parkings,
		TotalActiveCars: activeCars,
		TodayRevenue:    revenue,
		TotalSlots:      totalSlots,
		AvailableSlots:  availableSlots,
		OccupancyRate:   domain.OccupancyRate(totalSlots, availableSlots),
	}, nil
}
