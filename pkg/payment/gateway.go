// Package payment wraps the hosted payment provider. The core only hands
// over a gross amount plus a reference id and consumes the provider order
// id / redirect URL back; the wire protocol stays inside the SDK.
package payment

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
)

// Order is a provider-side order created for one local order.
type Order struct {
	ProviderOrderID string
	Amount          int64
	Currency        string
}

// Link is a hosted payment page for one order.
type Link struct {
	ID              string
	URL             string
	ProviderOrderID string
}

type CreateOrderParams struct {
	Amount   int64 // minor units
	Currency string
	Receipt  string
	Notes    map[string]string
}

type CreateLinkParams struct {
	Amount        int64 // minor units
	Currency      string
	ReferenceID   string
	Description   string
	CustomerName  string
	CustomerEmail string
	Notes         map[string]string
}

// Gateway creates provider orders and hosted payment links.
type Gateway interface {
	CreateOrder(ctx context.Context, p CreateOrderParams) (*Order, error)
	CreatePaymentLink(ctx context.Context, p CreateLinkParams) (*Link, error)
}

type razorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpayGateway builds the SDK client once; callers inject it where
// needed instead of reaching for a process-wide instance.
func NewRazorpayGateway(keyID, keySecret string) Gateway {
	return &razorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
}

func (g *razorpayGateway) CreateOrder(ctx context.Context, p CreateOrderParams) (*Order, error) {
	data := map[string]interface{}{
		"amount":          p.Amount,
		"currency":        p.Currency,
		"receipt":         p.Receipt,
		"payment_capture": 1,
	}
	if len(p.Notes) > 0 {
		data["notes"] = toNotes(p.Notes)
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("create provider order: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("provider order response missing id")
	}

	return &Order{
		ProviderOrderID: id,
		Amount:          p.Amount,
		Currency:        p.Currency,
	}, nil
}

func (g *razorpayGateway) CreatePaymentLink(ctx context.Context, p CreateLinkParams) (*Link, error) {
	data := map[string]interface{}{
		"amount":       p.Amount,
		"currency":     p.Currency,
		"reference_id": p.ReferenceID,
		"description":  p.Description,
		"notify":       map[string]interface{}{"email": true, "sms": false},
	}
	if len(p.Notes) > 0 {
		data["notes"] = toNotes(p.Notes)
	}
	if p.CustomerName != "" || p.CustomerEmail != "" {
		cust := map[string]interface{}{}
		if p.CustomerName != "" {
			cust["name"] = p.CustomerName
		}
		if p.CustomerEmail != "" {
			cust["email"] = p.CustomerEmail
		}
		data["customer"] = cust
	}

	body, err := g.client.PaymentLink.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("create payment link: %w", err)
	}

	link := &Link{}
	link.ID, _ = body["id"].(string)
	if u, ok := body["short_url"].(string); ok && u != "" {
		link.URL = u
	} else if u, ok := body["url"].(string); ok {
		link.URL = u
	}
	link.ProviderOrderID, _ = body["order_id"].(string)

	return link, nil
}

func toNotes(notes map[string]string) map[string]interface{} {
	out := make(map[string]interface{}, len(notes))
	for k, v := range notes {
		out[k] = v
	}
	return out
}
