package domain

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// Car is one parking session of a vehicle. A session is open until ExitTime is set,
// and a closed session is never modified again.
type Car struct {
	CarID       string           `json:"id"`
	PlateNumber string           `json:"plateNumber"`
	ParkingCode string           `json:"parkingCode"`
	ParkingID   string           `json:"-"`
	EntryTime   time.Time        `json:"entryTime"`
	ExitTime    *time.Time       `json:"exitTime"`
	TotalFee    *decimal.Decimal `json:"totalFee"`
	CreatedBy   string           `json:"-"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`

	// Parking is populated by listing queries. It is nil when the parking was deleted.
	Parking *ParkingSummary `json:"parking,omitempty"`
}

// IsOpen reports whether the car is still inside the parking.
func (c Car) IsOpen() bool {
	return c.ExitTime == nil
}

// ParkingSummary is the subset of a parking joined onto car listings.
type ParkingSummary struct {
	ParkingID  string          `json:"id"`
	Code       string          `json:"code"`
	Name       string          `json:"name"`
	Location   string          `json:"location"`
	FeePerHour decimal.Decimal `json:"feePerHour"`
}

// Ticket is issued when a car enters.
type Ticket struct {
	TicketID    string          `json:"ticketId"`
	PlateNumber string          `json:"plateNumber"`
	ParkingName string          `json:"parkingName"`
	ParkingCode string          `json:"parkingCode"`
	EntryTime   time.Time       `json:"entryTime"`
	FeePerHour  decimal.Decimal `json:"feePerHour"`
}

// Bill is issued when a car exits.
type Bill struct {
	BillID      string          `json:"billId"`
	PlateNumber string          `json:"plateNumber"`
	ParkingName string          `json:"parkingName"`
	ParkingCode string          `json:"parkingCode"`
	EntryTime   time.Time       `json:"entryTime"`
	ExitTime    time.Time       `json:"exitTime"`
	HoursParked int64           `json:"hoursParked"`
	FeePerHour  decimal.Decimal `json:"feePerHour"`
	TotalFee    decimal.Decimal `json:"totalFee"`
}

// NormalizePlate upper-cases a plate number and strips all whitespace from it,
// so "rab 123a" and "RAB123A" identify the same vehicle.
func NormalizePlate(plate string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return unicode.ToUpper(r)
	}, plate)
}
