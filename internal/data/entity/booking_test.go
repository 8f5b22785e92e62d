package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, v string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, v)
	if err != nil {
		t.Fatalf("parse %s: %v", v, err)
	}
	return ts
}

func TestBookingStatusTransitions(t *testing.T) {
	cases := []struct {
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{BookingPendingPayment, BookingPartial, true},
		{BookingPendingPayment, BookingConfirmed, true},
		{BookingPendingPayment, BookingCancelled, true},
		{BookingPartial, BookingConfirmed, true},
		{BookingPartial, BookingCancelled, false},
		{BookingPartial, BookingPendingPayment, false},
		{BookingConfirmed, BookingCancelled, false},
		{BookingConfirmed, BookingPendingPayment, false},
		{BookingCancelled, BookingConfirmed, false},
		{BookingCancelled, BookingPendingPayment, false},
	}
	for _, c := range cases {
		assert.Equal(t, c.allowed, c.from.CanTransition(c.to),
			"%s -> %s", c.from, c.to)
	}
}

func TestBookingPartySize(t *testing.T) {
	age := 30

	solo := &Booking{}
	assert.Equal(t, 1, solo.PartySize())

	withCompanions := &Booking{Companions: []Companion{{Name: "A"}, {Name: "B"}}}
	assert.Equal(t, 3, withCompanions.PartySize())

	// Companions win over guest ages when both are present.
	both := &Booking{
		Companions: []Companion{{Name: "A"}},
		GuestAges:  []int{5, 9, 40},
	}
	assert.Equal(t, 2, both.PartySize())

	agesOnly := &Booking{GuestAges: []int{5, 9, 40}}
	assert.Equal(t, 4, agesOnly.PartySize())

	manualLarger := &Booking{GuestCount: 6, GuestAges: []int{5}}
	assert.Equal(t, 6, manualLarger.PartySize())

	manualSmaller := &Booking{GuestCount: 2, Companions: []Companion{{Name: "A", Age: &age}, {Name: "B"}, {Name: "C"}}}
	assert.Equal(t, 4, manualSmaller.PartySize())
}

func TestPromoCodeIsLiveOn(t *testing.T) {
	now := mustTime(t, "2026-11-01T12:00:00Z")
	before := mustTime(t, "2026-10-01T00:00:00Z")
	after := mustTime(t, "2026-12-01T00:00:00Z")

	open := &PromoCode{Active: true}
	assert.True(t, open.IsLiveOn(now))

	inactive := &PromoCode{Active: false}
	assert.False(t, inactive.IsLiveOn(now))

	windowed := &PromoCode{Active: true, ValidFrom: &before, ValidUntil: &after}
	assert.True(t, windowed.IsLiveOn(now))

	expired := &PromoCode{Active: true, ValidUntil: &before}
	assert.False(t, expired.IsLiveOn(now))

	future := &PromoCode{Active: true, ValidFrom: &after}
	assert.False(t, future.IsLiveOn(now))
}
