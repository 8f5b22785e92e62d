package entity

import (
	"time"

	"github.com/google/uuid"
)

// ==================== BOOKING STATUS ====================

type BookingStatus string

const (
	BookingPendingPayment BookingStatus = "PENDING_PAYMENT"
	BookingPartial        BookingStatus = "PARTIAL"
	BookingConfirmed      BookingStatus = "CONFIRMED"
	BookingCancelled      BookingStatus = "CANCELLED"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPendingPayment: {BookingPartial, BookingConfirmed, BookingCancelled},
	BookingPartial:        {BookingConfirmed},
}

// CanTransition reports whether a booking may move from its current
// status to the target. CONFIRMED and CANCELLED are terminal.
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ==================== PARTY ====================

type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

// Companion is one non-primary party member, stored as JSONB on the
// booking. Age is optional; an unknown age prices as an adult.
type Companion struct {
	Name       string `json:"name"`
	Age        *int   `json:"age,omitempty"`
	Gender     Gender `json:"gender"`
	Meal       string `json:"meal,omitempty"`
	BloodGroup string `json:"blood_group,omitempty"`
}

// ==================== PRICING SNAPSHOT ====================

// PricingProvenance records which input the breakdown was computed
// from. Companion-derived figures take precedence over the others.
type PricingProvenance string

const (
	ProvenanceCompanions PricingProvenance = "companions"
	ProvenanceGuestAges  PricingProvenance = "guest_ages"
	ProvenanceManual     PricingProvenance = "manual_counts"
)

// BaseSeatSplit records how the package's included seats were spent
// across age classes, priciest first.
type BaseSeatSplit struct {
	Adults int `json:"adults"`
	Half   int `json:"half"`
	Free   int `json:"free"`
}

type PricingBreakdown struct {
	Provenance  PricingProvenance `json:"provenance"`
	Adults      int               `json:"adults"`
	HalfKids    int               `json:"half_kids"`
	FreeKids    int               `json:"free_kids"`
	BaseSeats   BaseSeatSplit     `json:"base_seats"`
	ExtraAdults int               `json:"extra_adults"`
	ExtraHalf   int               `json:"extra_half"`
	ExtraFree   int               `json:"extra_free"`
	BasePrice   int64             `json:"base_price"`
	ExtraAmount int64             `json:"extra_amount"`
	Total       int64             `json:"total"`
}

type PromoBreakdown struct {
	Code     string    `json:"code"`
	Kind     PromoKind `json:"kind"`
	Value    int64     `json:"value"`
	Discount int64     `json:"discount"`
	Final    int64     `json:"final"`
}

type FeeBreakdown struct {
	Net      int64   `json:"net"`
	Rate     float64 `json:"rate"`
	GSTRate  float64 `json:"gst_rate"`
	Fee      int64   `json:"fee"`
	GSTOnFee int64   `json:"gst_on_fee"`
	Gross    int64   `json:"gross"`
}

// ==================== BOOKING ====================

// Booking is one party's reservation for an event. Unit placement is
// resolved by the allocation engine only after payment confirmation.
type Booking struct {
	Base
	UserID           uuid.UUID         `db:"user_id"`
	EventID          uuid.UUID         `db:"event_id"`
	PackageID        uuid.UUID         `db:"package_id"`
	Status           BookingStatus     `db:"status"`
	PrimaryName      string            `db:"primary_name"`
	PrimaryGender    Gender            `db:"primary_gender"`
	PrimaryAge       *int              `db:"primary_age"`
	PrimaryPhone     string            `db:"primary_phone"`
	PrimaryEmail     string            `db:"primary_email"`
	EmergencyName    string            `db:"emergency_name"`
	EmergencyPhone   string            `db:"emergency_phone"`
	Companions       []Companion       `db:"companions"`
	GuestAges        []int             `db:"guest_ages"`
	GuestCount       int               `db:"guest_count"`
	Pricing          *PricingBreakdown `db:"pricing"`
	Promo            *PromoBreakdown   `db:"promo"`
	Fee              *FeeBreakdown     `db:"fee"`
	TotalAmount      int64             `db:"total_amount"`
	PayableAmount    int64             `db:"payable_amount"`
	PropertyID       *uuid.UUID        `db:"property_id"`
	UnitTypeID       *uuid.UUID        `db:"unit_type_id"`
	ResolvedCategory string            `db:"resolved_category"`
	CheckIn          *time.Time        `db:"check_in"`
	CheckOut         *time.Time        `db:"check_out"`
}

// PartySize counts the primary plus companions; an empty party prices
// as one adult.
func (b *Booking) PartySize() int {
	n := 1 + len(b.Companions)
	if len(b.Companions) == 0 && len(b.GuestAges) > 0 {
		n = 1 + len(b.GuestAges)
	}
	if b.GuestCount > n {
		n = b.GuestCount
	}
	return n
}
