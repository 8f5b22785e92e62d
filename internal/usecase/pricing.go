package usecase

import (
	"math"
	"time"

	"camp-booking/internal/data/entity"
)

// ==================== PARTY CLASSIFICATION ====================

type partyCounts struct {
	adults     int
	half       int
	free       int
	provenance entity.PricingProvenance
}

// classifyParty buckets every member by age against the package
// thresholds. Provenance order: full companion list wins over
// extras-only ages, which win over a bare manual count.
func classifyParty(pkg *entity.Package, booking *entity.Booking) partyCounts {
	freeMax := pkg.ChildFreeMaxAge
	halfMax := pkg.HalfAgeCeiling()

	add := func(counts *partyCounts, age *int) {
		if age == nil {
			// Umur tidak diketahui dihitung dewasa.
			counts.adults++
			return
		}
		switch {
		case *age <= freeMax:
			counts.free++
		case *age <= halfMax:
			counts.half++
		default:
			counts.adults++
		}
	}

	if len(booking.Companions) > 0 {
		counts := partyCounts{provenance: entity.ProvenanceCompanions}
		add(&counts, booking.PrimaryAge)
		for i := range booking.Companions {
			add(&counts, booking.Companions[i].Age)
		}
		return counts
	}

	if len(booking.GuestAges) > 0 {
		counts := partyCounts{provenance: entity.ProvenanceGuestAges}
		add(&counts, booking.PrimaryAge)
		for i := range booking.GuestAges {
			age := booking.GuestAges[i]
			add(&counts, &age)
		}
		return counts
	}

	size := booking.GuestCount
	if size < 1 {
		size = 1
	}
	counts := partyCounts{provenance: entity.ProvenanceManual}
	add(&counts, booking.PrimaryAge)
	for i := 1; i < size; i++ {
		counts.adults++
	}
	return counts
}

// ==================== PRICING ====================

// ComputePricing prices a party against a package's tiered rules.
// Included seats absorb the priciest classes first, so cheaper classes
// only become extras once pricier ones are exhausted.
func ComputePricing(pkg *entity.Package, booking *entity.Booking) *entity.PricingBreakdown {
	counts := classifyParty(pkg, booking)

	remaining := pkg.BaseIncludes
	if remaining < 0 {
		remaining = 0
	}

	baseAdults := min(counts.adults, remaining)
	remaining -= baseAdults
	baseHalf := min(counts.half, remaining)
	remaining -= baseHalf
	baseFree := min(counts.free, remaining)

	extraAdults := counts.adults - baseAdults
	extraHalf := counts.half - baseHalf
	extraFree := counts.free - baseFree

	// Paket tanpa tarif extra memakai base price per dewasa tambahan.
	adultPrice := pkg.ExtraAdultPrice
	if adultPrice <= 0 {
		adultPrice = pkg.BasePrice
	}

	halfPrice := int64(math.Round(float64(adultPrice) * pkg.ChildHalfMultiplier))
	extraAmount := int64(extraAdults)*adultPrice + int64(extraHalf)*halfPrice

	return &entity.PricingBreakdown{
		Provenance: counts.provenance,
		Adults:     counts.adults,
		HalfKids:   counts.half,
		FreeKids:   counts.free,
		BaseSeats: entity.BaseSeatSplit{
			Adults: baseAdults,
			Half:   baseHalf,
			Free:   baseFree,
		},
		ExtraAdults: extraAdults,
		ExtraHalf:   extraHalf,
		ExtraFree:   extraFree,
		BasePrice:   pkg.BasePrice,
		ExtraAmount: extraAmount,
		Total:       pkg.BasePrice + extraAmount,
	}
}

// ==================== PROMO ====================

// ValidatePromoCode returns the promo only when it is live on the
// given date. An unknown or expired code is simply no discount.
func ValidatePromoCode(promo *entity.PromoCode, asOf time.Time) *entity.PromoCode {
	if promo == nil || !promo.IsLiveOn(asOf) {
		return nil
	}
	return promo
}

// ApplyPromo computes the discount for a total. PERCENT values above
// 100 are a configuration error; the discount is clamped so the final
// payable stays at least 1.
func ApplyPromo(total int64, promo *entity.PromoCode) (*entity.PromoBreakdown, error) {
	if promo == nil {
		return nil, nil
	}

	var discount int64
	switch promo.Kind {
	case entity.PromoPercent:
		if promo.Value > 100 {
			return nil, newError(KindConfiguration, "promo percent exceeds 100")
		}
		discount = total * promo.Value / 100
	case entity.PromoFlat:
		discount = promo.Value
	default:
		return nil, newError(KindConfiguration, "unknown promo kind "+string(promo.Kind))
	}

	if discount < 0 {
		discount = 0
	}
	if discount > total-1 {
		discount = total - 1
	}

	return &entity.PromoBreakdown{
		Code:     promo.Code,
		Kind:     promo.Kind,
		Value:    promo.Value,
		Discount: discount,
		Final:    total - discount,
	}, nil
}

// ==================== FEE GROSS-UP ====================

// GrossUp inflates a net amount so that after the gateway deducts its
// percentage fee plus tax on that fee, the organizer nets the input:
// gross = net / (1 - rate*(1+gstRate)). A zero rate is the identity.
func GrossUp(net int64, rate, gstRate float64) (*entity.FeeBreakdown, error) {
	if rate < 0 || gstRate < 0 {
		return nil, newError(KindConfiguration, "negative fee rate")
	}
	if rate == 0 {
		return &entity.FeeBreakdown{Net: net, Rate: rate, GSTRate: gstRate, Gross: net}, nil
	}

	effective := rate * (1 + gstRate)
	if effective >= 1 {
		return nil, newError(KindConfiguration, "fee rate consumes the entire amount")
	}

	gross := int64(math.Round(float64(net) / (1 - effective)))
	fee := int64(math.Round(float64(gross) * rate))
	gstOnFee := gross - net - fee

	return &entity.FeeBreakdown{
		Net:      net,
		Rate:     rate,
		GSTRate:  gstRate,
		Fee:      fee,
		GSTOnFee: gstOnFee,
		Gross:    gross,
	}, nil
}
