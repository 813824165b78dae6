package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// Car is a row of the cars table. ExitTime and TotalFee are NULL while the session is open.
type Car struct {
	CarID         string              `db:"car_id"`
	PlateNumber   string              `db:"plate_number"`
	ParkingCode   string              `db:"parking_code"`
	EntryTime     time.Time           `db:"entry_time"`
	ExitTime      sql.NullTime        `db:"exit_time"`
	TotalFee      decimal.NullDecimal `db:"total_fee"`
	CreatedBy     sql.NullString      `db:"created_by"`
	CreatedAt     time.Time           `db:"created_at"`
	LastUpdatedAt time.Time           `db:"last_updated_at"`
	ParkingID     sql.NullString      `db:"parking_id"`
}

// CarWithParking is a car row LEFT JOINed with the parking it entered. The parking columns are
// NULL when that parking has been deleted since.
type CarWithParking struct {
	Car
	JoinedParkingID   sql.NullString
	ParkingName       sql.NullString
	ParkingLocation   sql.NullString
	ParkingFeePerHour decimal.NullDecimal
}
