package dto

import (
	"time"

	"github.com/SscSPs/car_parking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CarEntryRequest registers a vehicle entering a parking.
type CarEntryRequest struct {
	PlateNumber string `json:"plateNumber" binding:"required,plate"`
	ParkingCode string `json:"parkingCode" binding:"required,parkingcode"`
}

// ListActiveCarsParams defines query parameters for listing parked cars.
type ListActiveCarsParams struct {
	ParkingCode string `form:"parkingCode"`
}

// ParkingSummaryResponse is the parking embedded in car listings.
type ParkingSummaryResponse struct {
	ID         string          `json:"id"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Location   string          `json:"location"`
	FeePerHour decimal.Decimal `json:"feePerHour" swaggertype:"number"`
}

// CarResponse defines the data returned for a parking session.
type CarResponse struct {
	ID          string                  `json:"id"`
	PlateNumber string                  `json:"plateNumber"`
	ParkingCode string                  `json:"parkingCode"`
	EntryTime   time.Time               `json:"entryTime"`
	ExitTime    *time.Time              `json:"exitTime"`
	TotalFee    *decimal.Decimal        `json:"totalFee" swaggertype:"number"`
	CreatedAt   time.Time               `json:"createdAt"`
	UpdatedAt   time.Time               `json:"updatedAt"`
	Parking     *ParkingSummaryResponse `json:"parking"`
}

// CarEntryResponse wraps the ticket issued on entry.
type CarEntryResponse struct {
	Message string        `json:"message"`
	Ticket  domain.Ticket `json:"ticket"`
}

// CarExitResponse wraps the bill issued on exit.
type CarExitResponse struct {
	Message string      `json:"message"`
	Bill    domain.Bill `json:"bill"`
}

// ToCarResponse converts a domain.Car to CarResponse DTO
func ToCarResponse(c *domain.Car) CarResponse {
	resp := CarResponse{
		ID:          c.CarID,
		PlateNumber: c.PlateNumber,
		ParkingCode: c.ParkingCode,
		EntryTime:   c.EntryTime,
		ExitTime:    c.ExitTime,
		TotalFee:    c.TotalFee,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.Parking != nil {
		resp.Parking = &ParkingSummaryResponse{
			ID:         c.Parking.ParkingID,
			Code:       c.Parking.Code,
			Name:       c.Parking.Name,
			Location:   c.Parking.Location,
			FeePerHour: c.Parking.FeePerHour,
		}
	}
	return resp
}

// ToListCarResponse converts a slice of domain.Car to DTOs.
func ToListCarResponse(cars []domain.Car) []CarResponse {
	resp := make([]CarResponse, len(cars))
	for i := range cars {
		resp[i] = ToCarResponse(&cars[i])
	}
	return resp
}
