package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base is embedded by rows that support soft deletion; queries filter
// on deleted_at IS NULL so a cancelled booking stays out of listings
// without losing its audit trail.
type Base struct {
	ID        uuid.UUID  `db:"id"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

// BaseNoDelete is for rows that are never soft-deleted: inventory,
// allocations, payment orders and webhook records are kept forever.
type BaseNoDelete struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
