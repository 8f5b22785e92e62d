package adaptor

import (
	"net/http"

	"camp-booking/internal/usecase"
	"camp-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Catalog *CatalogHandler
	Booking *BookingHandler
	Webhook *WebhookHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Catalog: NewCatalogHandler(service.Catalog, log),
		Booking: NewBookingHandler(service.Booking, log),
		Webhook: NewWebhookHandler(service.Reconcile, log),
	}
}

// handleServiceError maps classified service errors onto HTTP responses.
// Unclassified errors are internal.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	kind := usecase.KindOf(err)

	switch kind {
	case usecase.KindValidation:
		log.Warn(operation+" failed - validation", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	case usecase.KindNotFound:
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case usecase.KindCapacity, usecase.KindGenderSplit, usecase.KindConfiguration:
		log.Warn(operation+" failed - "+string(kind), zap.Error(err))
		utils.ResponseConflict(w, err.Error(), nil)

	case usecase.KindAuthenticity:
		log.Warn(operation+" failed - authenticity", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error(operation+" failed", zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
