package entity

import "github.com/google/uuid"

// Package is a sellable pricing ruleset for an event. Base price covers
// BaseIncludes persons; extras are priced per age class.
type Package struct {
	BaseNoDelete
	EventID             uuid.UUID `db:"event_id"`
	Name                string    `db:"name"`
	Slug                string    `db:"slug"`
	Description         string    `db:"description"`
	BaseIncludes        int       `db:"base_includes"`
	BasePrice           int64     `db:"base_price"`
	ExtraAdultPrice     int64     `db:"extra_adult_price"`
	ChildFreeMaxAge     int       `db:"child_free_max_age"`
	ChildHalfMaxAge     int       `db:"child_half_max_age"`
	ChildHalfMultiplier float64   `db:"child_half_multiplier"`
	Active              bool      `db:"active"`
}

// HalfAgeCeiling clamps the half-price threshold so it never falls
// below the free threshold.
func (p *Package) HalfAgeCeiling() int {
	if p.ChildHalfMaxAge < p.ChildFreeMaxAge {
		return p.ChildFreeMaxAge
	}
	return p.ChildHalfMaxAge
}
