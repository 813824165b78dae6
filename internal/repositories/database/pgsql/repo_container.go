package pgsql

import (
	portsrepo "github.com/SscSPs/car_parking_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every pgx-backed repository onto the same pool.
func NewRepositoryProvider(db DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		UserRepo:      newPgxUserRepository(db),
		ParkingRepo:   newPgxParkingRepository(db),
		CarRepo:       newPgxCarRepository(db),
		ReportingRepo: newReportingRepository(db),
	}
}
