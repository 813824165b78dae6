package dto

import (
	"time"

	"github.com/SscSPs/car_parking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateParkingRequest defines the data needed to open a new parking.
type CreateParkingRequest struct {
	Code       string           `json:"code" binding:"required,parkingcode"`
	Name       string           `json:"name" binding:"required,max=255"`
	Location   string           `json:"location" binding:"required,max=255"`
	TotalSlots *int             `json:"totalSlots" binding:"required,gte=0,lte=100000"`
	FeePerHour *decimal.Decimal `json:"feePerHour" binding:"required" swaggertype:"number"`
}

// UpdateParkingRequest replaces the mutable attributes of a parking. The code cannot change.
type UpdateParkingRequest struct {
	Name       string           `json:"name" binding:"required,max=255"`
	Location   string           `json:"location" binding:"required,max=255"`
	TotalSlots *int             `json:"totalSlots" binding:"required,gte=0,lte=100000"`
	FeePerHour *decimal.Decimal `json:"feePerHour" binding:"required" swaggertype:"number"`
}

// ParkingResponse defines the data returned for a parking.
type ParkingResponse struct {
	ID             string          `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Location       string          `json:"location"`
	TotalSlots     int             `json:"totalSlots"`
	AvailableSlots int             `json:"availableSlots"`
	FeePerHour     decimal.Decimal `json:"feePerHour" swaggertype:"number"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// ParkingMutationResponse wraps a created or updated parking.
type ParkingMutationResponse struct {
	Message string          `json:"message"`
	Parking ParkingResponse `json:"parking"`
}

// ToParkingResponse converts a domain.Parking to ParkingResponse DTO
func ToParkingResponse(p *domain.Parking) ParkingResponse {
	return ParkingResponse{
		ID:             p.ParkingID,
		Code:           p.Code,
		Name:           p.Name,
		Location:       p.Location,
		TotalSlots:     p.TotalSlots,
		AvailableSlots: p.AvailableSlots,
		FeePerHour:     p.FeePerHour,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.LastUpdatedAt,
	}
}

// ToListParkingResponse converts a slice of domain.Parking to DTOs.
func ToListParkingResponse(parkings []domain.Parking) []ParkingResponse {
	resp := make([]ParkingResponse, len(parkings))
	for i := range parkings {
		resp[i] = ToParkingResponse(&parkings[i])
	}
	return resp
}
