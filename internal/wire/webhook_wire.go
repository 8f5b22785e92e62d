package wire

import (
	"camp-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireWebhook(r chi.Router, webhookHandler *adaptor.WebhookHandler) {
	// POST /api/webhooks/payment - Provider notifications. Auth is the
	// HMAC signature over the raw body, not a session.
	r.Post("/api/webhooks/payment", webhookHandler.HandleNotification)
}
