package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// MaxParkingCodeLength is the width of parkings.code.
	MaxParkingCodeLength = 32
	// MaxTotalSlots is the largest capacity a parking may declare.
	MaxTotalSlots = 100000
)

// MaxFeePerHour is the largest hourly rate. At this rate a 100-year stay still fits cars.total_fee.
var MaxFeePerHour = decimal.NewFromInt(100000)

// Parking is a lot with a fixed number of slots and an hourly rate.
// AvailableSlots always stays within [0, TotalSlots].
type Parking struct {
	ParkingID      string          `json:"id"`
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Location       string          `json:"location"`
	TotalSlots     int             `json:"totalSlots"`
	AvailableSlots int             `json:"availableSlots"`
	FeePerHour     decimal.Decimal `json:"feePerHour"`
	AuditFields
}

// UsedSlots is the number of slots currently held by open sessions.
func (p Parking) UsedSlots() int {
	return p.TotalSlots - p.AvailableSlots
}

// Resize returns the available slot count after changing the capacity to newTotal while
// keeping the number of used slots unchanged. ok is false when newTotal is below usage.
func (p Parking) Resize(newTotal int) (available int, ok bool) {
	available = newTotal - p.UsedSlots()
	if available < 0 {
		return 0, false
	}
	return available, true
}

// SlotUsage compares the slot counter of a parking with the open sessions it actually holds.
type SlotUsage struct {
	Code           string
	TotalSlots     int
	AvailableSlots int
	OpenCars       int
}

// Drift is how many slots the counter disagrees with the ledger. Zero means consistent.
func (u SlotUsage) Drift() int {
	return (u.TotalSlots - u.AvailableSlots) - u.OpenCars
}

// NormalizeParkingCode trims and upper-cases a parking code.
func NormalizeParkingCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
