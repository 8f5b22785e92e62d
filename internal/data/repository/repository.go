package repository

import (
	"camp-booking/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Event        EventRepository
	Property     PropertyRepository
	UnitType     UnitTypeRepository
	Unit         UnitRepository
	Package      PackageRepository
	Promo        PromoRepository
	Booking      BookingRepository
	Allocation   AllocationRepository
	Order        OrderRepository
	WebhookEvent WebhookEventRepository
	AddOn        AddOnRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Event:        NewEventRepository(db, log),
		Property:     NewPropertyRepository(db, log),
		UnitType:     NewUnitTypeRepository(db, log),
		Unit:         NewUnitRepository(db, log),
		Package:      NewPackageRepository(db, log),
		Promo:        NewPromoRepository(db, log),
		Booking:      NewBookingRepository(db, log),
		Allocation:   NewAllocationRepository(db, log),
		Order:        NewOrderRepository(db, log),
		WebhookEvent: NewWebhookEventRepository(db, log),
		AddOn:        NewAddOnRepository(db, log),
	}
}
