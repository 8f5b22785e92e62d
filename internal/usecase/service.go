package usecase

import (
	"camp-booking/internal/data/repository"
	"camp-booking/pkg/database"
	"camp-booking/pkg/payment"
	"camp-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Catalog    CatalogService
	Booking    BookingService
	Allocation AllocationService
	Reconcile  ReconcileService
}

func NewService(repo *repository.Repository, db database.PgxIface, gateway payment.Gateway, config *utils.Config, log *zap.Logger) *Service {
	allocation := NewAllocationService(repo, db, log)
	return &Service{
		Catalog:    NewCatalogService(repo, log),
		Booking:    NewBookingService(repo, gateway, config.Gateway, log),
		Allocation: allocation,
		Reconcile:  NewReconcileService(repo, allocation, config.Gateway.WebhookSecret, log),
	}
}
