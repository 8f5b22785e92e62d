package entity

import (
	"time"

	"github.com/google/uuid"
)

// Order is the local mirror of a payment-provider order. Amounts are
// in minor currency units. One order maps to at most one booking.
type Order struct {
	BaseNoDelete
	BookingID         uuid.UUID  `db:"booking_id"`
	Reference         string     `db:"reference"`
	ProviderOrderID   string     `db:"provider_order_id"`
	ProviderPaymentID *string    `db:"provider_payment_id"`
	Amount            int64      `db:"amount"`
	AmountPaid        int64      `db:"amount_paid"`
	Currency          string     `db:"currency"`
	Paid              bool       `db:"paid"`
	PaidAt            *time.Time `db:"paid_at"`
	PaymentLinkURL    string     `db:"payment_link_url"`
}
