package entity

import "time"

// ==================== PROMO KIND ====================

type PromoKind string

const (
	PromoPercent PromoKind = "PERCENT"
	PromoFlat    PromoKind = "FLAT"
)

// ==================== PROMO CODE ====================

// PromoCode is a discount rule. Codes are matched case-insensitively;
// an open window bound means unbounded on that side.
type PromoCode struct {
	BaseNoDelete
	Code       string     `db:"code"`
	Kind       PromoKind  `db:"kind"`
	Value      int64      `db:"value"`
	Active     bool       `db:"active"`
	ValidFrom  *time.Time `db:"valid_from"`
	ValidUntil *time.Time `db:"valid_until"`
}

// IsLiveOn reports whether the code can be applied on the given date.
func (p *PromoCode) IsLiveOn(at time.Time) bool {
	if !p.Active {
		return false
	}
	if p.ValidFrom != nil && at.Before(*p.ValidFrom) {
		return false
	}
	if p.ValidUntil != nil && at.After(*p.ValidUntil) {
		return false
	}
	return true
}
