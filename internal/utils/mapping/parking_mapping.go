package mapping

import (
	"github.com/SscSPs/car_parking_app/internal/core/domain"
	"github.com/SscSPs/car_parking_app/internal/models"
)

// ToModelParking converts a domain Parking to a model Parking
func ToModelParking(d domain.Parking) models.Parking {
	return models.Parking{
		ParkingID:      d.ParkingID,
		Code:           d.Code,
		Name:           d.Name,
		Location:       d.Location,
		TotalSlots:     d.TotalSlots,
		AvailableSlots: d.AvailableSlots,
		FeePerHour:     d.FeePerHour,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainParking converts a model Parking to a domain Parking
func ToDomainParking(m models.Parking) domain.Parking {
	return domain.Parking{
		ParkingID:      m.ParkingID,
		Code:           m.Code,
		Name:           m.Name,
		Location:       m.Location,
		TotalSlots:     m.TotalSlots,
		AvailableSlots: m.AvailableSlots,
		FeePerHour:     m.FeePerHour,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainParkingSlice converts a slice of model Parkings to a slice of domain Parkings
func ToDomainParkingSlice(ms []models.Parking) []domain.Parking {
	ds := make([]domain.Parking, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainParking(m)
	}
	return ds
}

// ToDomainSlotUsage converts a model SlotUsage to a domain SlotUsage
func ToDomainSlotUsage(m models.SlotUsage) domain.SlotUsage {
	return domain.SlotUsage{
		Code:           m.Code,
		TotalSlots:     m.TotalSlots,
		AvailableSlots: m.AvailableSlots,
		OpenCars:       m.OpenCars,
	}
}
