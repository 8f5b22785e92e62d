package wire

import (
	"camp-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireCatalog(r chi.Router, catalogHandler *adaptor.CatalogHandler) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/packages - List sellable packages for an event
	r.Get("/api/packages", catalogHandler.ListPackages)

	// GET /api/availability - Free units per property and unit type
	r.Get("/api/availability", catalogHandler.GetAvailability)

	// GET /api/promocodes/validate - Preview a promo code
	r.Get("/api/promocodes/validate", catalogHandler.ValidatePromo)
}
