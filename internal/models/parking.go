package models

import "github.com/shopspring/decimal"

// Parking is a row of the parkings table.
type Parking struct {
	ParkingID      string          `db:"parking_id"`
	Code           string          `db:"code"`
	Name           string          `db:"name"`
	Location       string          `db:"location"`
	TotalSlots     int             `db:"total_slots"`
	AvailableSlots int             `db:"available_slots"`
	FeePerHour     decimal.Decimal `db:"fee_per_hour"`
	AuditFields
}

// SlotUsage is the result row of the slot reconciliation query.
type SlotUsage struct {
	Code           string `db:"code"`
	TotalSlots     int    `db:"total_slots"`
	AvailableSlots int    `db:"available_slots"`
	OpenCars       int    `db:"open_cars"`
}
