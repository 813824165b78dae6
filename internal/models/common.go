package models

import (
	"database/sql"
	"time"
)

// AuditFields mirrors the audit columns shared by mutable tables.
// The *_by columns are nullable because seeded rows have no acting user.
type AuditFields struct {
	CreatedAt     time.Time      `db:"created_at"`
	CreatedBy     sql.NullString `db:"created_by"`
	LastUpdatedAt time.Time      `db:"last_updated_at"`
	LastUpdatedBy sql.NullString `db:"last_updated_by"`
}
