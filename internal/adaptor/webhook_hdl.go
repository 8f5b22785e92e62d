package adaptor

import (
	"io"
	"net/http"

	"camp-booking/internal/usecase"
	"camp-booking/pkg/utils"

	"go.uber.org/zap"
)

const maxWebhookBody = 1 << 20 // 1 MiB

type WebhookHandler struct {
	service usecase.ReconcileService
	log     *zap.Logger
}

func NewWebhookHandler(service usecase.ReconcileService, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		log:     log.With(zap.String("handler", "webhook")),
	}
}

// HandleNotification handles POST /api/webhooks/payment. The raw body
// is read whole before anything else; the signature covers its exact
// bytes.
func (h *WebhookHandler) HandleNotification(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		h.log.Error("Failed to read webhook body", zap.Error(err))
		utils.ResponseBadRequest(w, "Unreadable body", nil)
		return
	}

	notification := &usecase.Notification{
		Signature:  r.Header.Get("X-Razorpay-Signature"),
		RemoteAddr: r.RemoteAddr,
		RawBody:    body,
	}

	if err := h.service.HandleNotification(r.Context(), notification); err != nil {
		switch usecase.KindOf(err) {
		case usecase.KindAuthenticity:
			utils.ResponseBadRequest(w, "Invalid signature", nil)
			return
		case usecase.KindValidation:
			utils.ResponseBadRequest(w, "Malformed payload", nil)
			return
		}
		h.log.Error("Webhook processing failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
		return
	}

	utils.ResponseSuccess(w, "ok", nil)
}
