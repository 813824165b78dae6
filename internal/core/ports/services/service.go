package services

import (
	"context"
)

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User       UserSvcFacade
	Token      TokenSvcFacade
	Parking    ParkingSvcFacade
	Car        CarSvcFacade
	Reporting  ReportingService
	StaticData StaticDataService
}

// StaticDataService defines the interface for seeding the data a fresh installation needs
// (the first administrator and a default parking).
type StaticDataService interface {
	InitializeStaticData(ctx context.Context) error
}
