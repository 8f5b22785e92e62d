package entity

import "github.com/google/uuid"

// ==================== ADD-ON STATUS ====================

type AddOnStatus string

const (
	AddOnPending   AddOnStatus = "PENDING"
	AddOnFinalized AddOnStatus = "FINALIZED"
)

// BookingAddOn is an extra registration (activity slot, merchandise)
// attached to a booking; finalized when the booking's payment lands.
type BookingAddOn struct {
	BaseNoDelete
	BookingID uuid.UUID   `db:"booking_id"`
	Name      string      `db:"name"`
	Quantity  int         `db:"quantity"`
	Amount    int64       `db:"amount"`
	Status    AddOnStatus `db:"status"`
}
