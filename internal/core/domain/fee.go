package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const millisPerHour = int64(time.Hour / time.Millisecond)

// BillableHours returns the number of started hours between entry and exit.
// Any partial hour counts as a full one; a zero-length stay bills nothing.
func BillableHours(entry, exit time.Time) int64 {
	ms := exit.Sub(entry).Milliseconds()
	if ms <= 0 {
		return 0
	}
	return (ms + millisPerHour - 1) / millisPerHour
}

// CalculateFee multiplies billable hours by the hourly rate, rounded to cents.
func CalculateFee(hours int64, feePerHour decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(hours).Mul(feePerHour).Round(2)
}
