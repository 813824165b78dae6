package mapping

import (
	"database/sql"

	"github.com/SscSPs/car_parking_app/internal/core/domain"
	"github.com/SscSPs/car_parking_app/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelCar converts a domain Car to a model Car
func ToModelCar(d domain.Car) models.Car {
	m := models.Car{
		CarID:         d.CarID,
		PlateNumber:   d.PlateNumber,
		ParkingCode:   d.ParkingCode,
		ParkingID:     nullString(d.ParkingID),
		EntryTime:     d.EntryTime,
		CreatedBy:     nullString(d.CreatedBy),
		CreatedAt:     d.CreatedAt,
		LastUpdatedAt: d.UpdatedAt,
	}
	if d.ExitTime != nil {
		m.ExitTime = sql.NullTime{Time: *d.ExitTime, Valid: true}
	}
	if d.TotalFee != nil {
		m.TotalFee = decimal.NullDecimal{Decimal: *d.TotalFee, Valid: true}
	}
	return m
}

// ToDomainCar converts a model Car to a domain Car
func ToDomainCar(m models.Car) domain.Car {
	d := domain.Car{
		CarID:       m.CarID,
		PlateNumber: m.PlateNumber,
		ParkingCode: m.ParkingCode,
		ParkingID:   m.ParkingID.String,
		EntryTime:   m.EntryTime,
		CreatedBy:   m.CreatedBy.String,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.LastUpdatedAt,
	}
	if m.ExitTime.Valid {
		exit := m.ExitTime.Time
		d.ExitTime = &exit
	}
	if m.TotalFee.Valid {
		fee := m.TotalFee.Decimal
		d.TotalFee = &fee
	}
	return d
}

// ToDomainCarWithParking converts a joined car row, attaching the parking summary when present
func ToDomainCarWithParking(m models.CarWithParking) domain.Car {
	d := ToDomainCar(m.Car)
	if m.JoinedParkingID.Valid {
		d.Parking = &domain.ParkingSummary{
			ParkingID:  m.JoinedParkingID.String,
			Code:       m.ParkingCode,
			Name:       m.ParkingName.String,
			Location:   m.ParkingLocation.String,
			FeePerHour: m.ParkingFeePerHour.Decimal,
		}
	}
	return d
}

// ToDomainCarWithParkingSlice converts joined car rows to domain Cars
func ToDomainCarWithParkingSlice(ms []models.CarWithParking) []domain.Car {
	ds := make([]domain.Car, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCarWithParking(m)
	}
	return ds
}
