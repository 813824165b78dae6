package services

import (
	portsrepo "github.com/SscSPs/car_parking_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/car_parking_app/internal/core/ports/services"
	"github.com/SscSPs/car_parking_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, recorder LedgerRecorder) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg)
	container.Parking = NewParkingService(repos.ParkingRepo, repos.CarRepo)
	container.Car = NewCarService(repos.CarRepo, repos.ParkingRepo, WithLedgerRecorder(recorder))
	container.Reporting = NewReportingService(repos.ReportingRepo)

	seed := SeedData{
		AdminEmail:    cfg.SeedAdminEmail,
		AdminPassword: cfg.SeedAdminPassword,
		Parking:       DefaultSeedParking(),
	}
	container.StaticData = NewStaticDataService(repos.UserRepo, repos.ParkingRepo, seed)

	return container
}
