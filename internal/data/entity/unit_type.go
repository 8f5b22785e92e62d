package entity

// UnitType is a shared taxonomy dimension (e.g. DOME TENT, SWISS TENT,
// COTTAGE, HUT); it belongs to no property.
type UnitType struct {
	BaseNoDelete
	Name string `db:"name"`
	Code string `db:"code"` // short code, e.g. DT, ST, CT, HUT
}
