package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OutgoingReport lists sessions that exited within a period along with their revenue.
type OutgoingReport struct {
	Cars        []Car           `json:"cars"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Count       int             `json:"count"`
}

// EnteredReport lists sessions that started within a period.
type EnteredReport struct {
	Cars  []Car `json:"cars"`
	Count int   `json:"count"`
}

// DashboardStats is a snapshot of the whole system.
type DashboardStats struct {
	TotalParkings   int64           `json:"totalParkings"`
	TotalActiveCars int64           `json:"totalActiveCars"`
	TodayRevenue    decimal.Decimal `json:"todayRevenue"`
	TotalSlots      int64           `json:"totalSlots"`
	AvailableSlots  int64           `json:"availableSlots"`
	OccupancyRate   float64         `json:"occupancyRate"`
}

// OccupancyRate returns the percentage of occupied slots, or 0 when there is no capacity.
func OccupancyRate(totalSlots, availableSlots int64) float64 {
	if totalSlots <= 0 {
		return 0
	}
	return float64(totalSlots-availableSlots) / float64(totalSlots) * 100
}

// StartOfDay returns midnight of t's day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last millisecond of t's day in t's location.
func EndOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
