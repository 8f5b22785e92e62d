package entity

import "github.com/google/uuid"

// Allocation joins a booking to a unit with the seats it consumes.
// Unique per (booking, unit); the sum of seats across live bookings of
// one event never exceeds the unit's capacity.
type Allocation struct {
	BaseNoDelete
	BookingID uuid.UUID `db:"booking_id"`
	UnitID    uuid.UUID `db:"unit_id"`
	Seats     int       `db:"seats"`
	Gender    Gender    `db:"gender"` // class seated in the unit; empty for a mixed single-unit fit
}
