package dto

import (
	"github.com/SscSPs/car_parking_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReportParams defines the query parameters of the period reports.
// Dates are YYYY-MM-DD or RFC3339; the end date covers its whole day.
type ReportParams struct {
	StartDate   string `form:"startDate"`
	EndDate     string `form:"endDate"`
	ParkingCode string `form:"parkingCode"`
}

// OutgoingReportResponse lists exited cars and the revenue they produced.
type OutgoingReportResponse struct {
	Cars        []CarResponse   `json:"cars"`
	TotalAmount decimal.Decimal `json:"totalAmount" swaggertype:"number"`
	Count       int             `json:"count"`
}

// EnteredReportResponse lists entered cars.
type EnteredReportResponse struct {
	Cars  []CarResponse `json:"cars"`
	Count int           `json:"count"`
}

// ToOutgoingReportResponse converts a domain.OutgoingReport to its DTO
func ToOutgoingReportResponse(r *domain.OutgoingReport) OutgoingReportResponse {
	return OutgoingReportResponse{
		Cars:        ToListCarResponse(r.Cars),
		TotalAmount: r.TotalAmount,
		Count:       r.Count,
	}
}

// ToEnteredReportResponse converts a domain.EnteredReport to its DTO
func ToEnteredReportResponse(r *domain.EnteredReport) EnteredReportResponse {
	return EnteredReportResponse{
		Cars:  ToListCarResponse(r.Cars),
		Count: r.Count,
	}
}
