// internal/wire/wire.go
package wire

import (
	"net/http"

	"camp-booking/internal/adaptor"
	"camp-booking/internal/data/repository"
	"camp-booking/internal/usecase"
	"camp-booking/pkg/database"
	"camp-booking/pkg/identity"
	"camp-booking/pkg/middleware"
	"camp-booking/pkg/payment"
	"camp-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router *chi.Mux
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, db database.PgxIface, gateway payment.Gateway, config *utils.Config, logger *zap.Logger) *App {
	// Initialize services dan handlers
	service := usecase.NewService(repo, db, gateway, config, logger)
	handler := adaptor.NewHandler(service, logger)
	verifier := identity.NewHS256Verifier(config.Auth.JWTSecret)

	router := setupRouter(handler, verifier, logger)

	return &App{
		Router: router,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	verifier identity.Verifier,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireCatalog(r, handler.Catalog)
	wireBooking(r, handler.Booking, verifier, logger)
	wireWebhook(r, handler.Webhook)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
