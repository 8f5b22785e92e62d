package response

import (
	"time"

	"camp-booking/internal/data/entity"
)

type BookingResponse struct {
	ID            string                   `json:"id"`
	EventID       string                   `json:"event_id"`
	PackageID     string                   `json:"package_id"`
	Status        entity.BookingStatus     `json:"status"`
	PrimaryName   string                   `json:"primary_name"`
	GuestCount    int                      `json:"guest_count"`
	TotalAmount   int64                    `json:"total_amount"`
	PayableAmount int64                    `json:"payable_amount"`
	Pricing       *entity.PricingBreakdown `json:"pricing,omitempty"`
	Promo         *entity.PromoBreakdown   `json:"promo,omitempty"`
	Fee           *entity.FeeBreakdown     `json:"fee,omitempty"`
	PropertyName  string                   `json:"property_name,omitempty"`
	UnitTypeName  string                   `json:"unit_type_name,omitempty"`
	CheckIn       *time.Time               `json:"check_in,omitempty"`
	CheckOut      *time.Time               `json:"check_out,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
}

type OrderResponse struct {
	ID              string `json:"id"`
	BookingID       string `json:"booking_id"`
	Reference       string `json:"reference"`
	ProviderOrderID string `json:"provider_order_id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Paid            bool   `json:"paid"`
	PaymentLinkURL  string `json:"payment_link_url,omitempty"`
}

func BookingToResponse(b *entity.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID.String(),
		EventID:       b.EventID.String(),
		PackageID:     b.PackageID.String(),
		Status:        b.Status,
		PrimaryName:   b.PrimaryName,
		GuestCount:    b.GuestCount,
		TotalAmount:   b.TotalAmount,
		PayableAmount: b.PayableAmount,
		Pricing:       b.Pricing,
		Promo:         b.Promo,
		Fee:           b.Fee,
		CheckIn:       b.CheckIn,
		CheckOut:      b.CheckOut,
		CreatedAt:     b.CreatedAt,
	}
}

func OrderToResponse(o *entity.Order) OrderResponse {
	return OrderResponse{
		ID:              o.ID.String(),
		BookingID:       o.BookingID.String(),
		Reference:       o.Reference,
		ProviderOrderID: o.ProviderOrderID,
		Amount:          o.Amount,
		Currency:        o.Currency,
		Paid:            o.Paid,
		PaymentLinkURL:  o.PaymentLinkURL,
	}
}
