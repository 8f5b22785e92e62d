package adaptor

import (
	"net/http"
	"strconv"

	"camp-booking/internal/usecase"
	"camp-booking/pkg/utils"

	"go.uber.org/zap"
)

type CatalogHandler struct {
	service usecase.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(service usecase.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		log:     log.With(zap.String("handler", "catalog")),
	}
}

// ListPackages handles GET /api/packages (public)
func (h *CatalogHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	packages, err := h.service.ListPackages(r.Context(), r.URL.Query().Get("event_id"))
	if err != nil {
		handleServiceError(w, h.log, err, "list packages")
		return
	}

	utils.ResponseSuccess(w, "success", packages)
}

// GetAvailability handles GET /api/availability (public)
func (h *CatalogHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	availability, err := h.service.GetAvailability(r.Context(), r.URL.Query().Get("event_id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get availability")
		return
	}

	utils.ResponseSuccess(w, "success", availability)
}

// ValidatePromo handles GET /api/promocodes/validate (public)
func (h *CatalogHandler) ValidatePromo(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	code := query.Get("code")

	var total int64
	if raw := query.Get("total"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed < 0 {
			utils.ResponseBadRequest(w, "Invalid total", nil)
			return
		}
		total = parsed
	}

	result, err := h.service.ValidatePromo(r.Context(), code, total)
	if err != nil {
		handleServiceError(w, h.log, err, "validate promo")
		return
	}

	utils.ResponseSuccess(w, "success", result)
}
