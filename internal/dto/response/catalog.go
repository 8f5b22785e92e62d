package response

import "camp-booking/internal/data/entity"

type PackageResponse struct {
	ID                  string  `json:"id"`
	EventID             string  `json:"event_id"`
	Name                string  `json:"name"`
	Slug                string  `json:"slug"`
	Description         string  `json:"description,omitempty"`
	BaseIncludes        int     `json:"base_includes"`
	BasePrice           int64   `json:"base_price"`
	ExtraAdultPrice     int64   `json:"extra_adult_price"`
	ChildFreeMaxAge     int     `json:"child_free_max_age"`
	ChildHalfMaxAge     int     `json:"child_half_max_age"`
	ChildHalfMultiplier float64 `json:"child_half_multiplier"`
}

type AvailabilityResponse struct {
	PropertyID   string `json:"property_id"`
	PropertyName string `json:"property_name"`
	UnitTypeID   string `json:"unit_type_id"`
	UnitTypeName string `json:"unit_type_name"`
	FreeUnits    int    `json:"free_units"`
	FreeCapacity int    `json:"free_capacity"`
}

type PromoValidationResponse struct {
	Code     string `json:"code"`
	Valid    bool   `json:"valid"`
	Kind     string `json:"kind,omitempty"`
	Value    int64  `json:"value,omitempty"`
	Discount int64  `json:"discount,omitempty"`
	Final    int64  `json:"final,omitempty"`
}

func PackageToResponse(p *entity.Package) PackageResponse {
	return PackageResponse{
		ID:                  p.ID.String(),
		EventID:             p.EventID.String(),
		Name:                p.Name,
		Slug:                p.Slug,
		Description:         p.Description,
		BaseIncludes:        p.BaseIncludes,
		BasePrice:           p.BasePrice,
		ExtraAdultPrice:     p.ExtraAdultPrice,
		ChildFreeMaxAge:     p.ChildFreeMaxAge,
		ChildHalfMaxAge:     p.ChildHalfMaxAge,
		ChildHalfMultiplier: p.ChildHalfMultiplier,
	}
}
