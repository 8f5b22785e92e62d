package entity

import "github.com/google/uuid"

// ==================== UNIT STATUS ====================

type UnitStatus string

const (
	UnitAvailable   UnitStatus = "AVAILABLE"
	UnitHold        UnitStatus = "HOLD"
	UnitOccupied    UnitStatus = "OCCUPIED"
	UnitMaintenance UnitStatus = "MAINTENANCE"
)

// ==================== UNIT ====================

// Unit is a bookable inventory item (tent, cottage, hut) at a property.
type Unit struct {
	BaseNoDelete
	PropertyID uuid.UUID  `db:"property_id"`
	UnitTypeID uuid.UUID  `db:"unit_type_id"`
	Name       string     `db:"name"`
	Category   string     `db:"category"`
	Capacity   int        `db:"capacity"`
	Status     UnitStatus `db:"status"`
	Notes      string     `db:"notes"`
}

// FreeUnit is a unit row joined with its property and type names, as
// returned by the free-inventory query used during allocation.
type FreeUnit struct {
	ID           uuid.UUID
	PropertyID   uuid.UUID
	PropertyName string
	UnitTypeID   uuid.UUID
	UnitTypeName string
	Name         string
	Category     string
	Capacity     int
}
