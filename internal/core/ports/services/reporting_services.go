package services

import (
	"context"
	"time"

	"github.com/SscSPs/car_parking_app/internal/core/domain"
)

// ReportingService defines the admin reports
type ReportingService interface {
	// OutgoingReport lists cars that exited between from and the end of to's day, with their total fees.
	OutgoingReport(ctx context.Context, principal domain.Principal, from, to time.Time, parkingCode string) (*domain.OutgoingReport, error)

	// EnteredReport lists cars that entered between from and the end of to's day.
	EnteredReport(ctx context.Context, principal domain.Principal, from, to time.Time, parkingCode string) (*domain.EnteredReport, error)

	// Dashboard returns a snapshot of parkings, occupancy and today's revenue.
	Dashboard(ctx context.Context, principal domain.Principal) (*domain.DashboardStats, error)
}
