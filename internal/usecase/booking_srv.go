package usecase

import (
	"context"
	"fmt"
	"time"

	"camp-booking/internal/data/entity"
	"camp-booking/internal/data/repository"
	"camp-booking/internal/dto/request"
	"camp-booking/internal/dto/response"
	"camp-booking/pkg/payment"
	"camp-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// CreateOrder reprices the booking, grosses the payable up for
	// gateway fees, and opens a provider order plus payment link.
	CreateOrder(ctx context.Context, userID string, req *request.CreateOrderRequest) (*response.OrderResponse, error)
}

type bookingService struct {
	repo    *repository.Repository
	gateway payment.Gateway
	cfg     utils.GatewayConfig
	log     *zap.Logger
}

func NewBookingService(repo *repository.Repository, gateway payment.Gateway, cfg utils.GatewayConfig, log *zap.Logger) BookingService {
	return &bookingService{
		repo:    repo,
		gateway: gateway,
		cfg:     cfg,
		log:     log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, newError(KindValidation, utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, wrapError(KindValidation, "invalid user ID format", err)
	}

	eventID, err := uuid.Parse(req.EventID)
	if err != nil {
		return nil, wrapError(KindValidation, "invalid event ID format", err)
	}

	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return nil, wrapError(KindValidation, "invalid package ID format", err)
	}

	event, err := s.repo.Event.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("check event: %w", err)
	}
	if event == nil {
		return nil, newError(KindNotFound, fmt.Sprintf("event %s not found", req.EventID))
	}
	if !event.BookingOpen {
		return nil, newError(KindValidation, fmt.Sprintf("bookings for %s are closed", event.Name))
	}

	pkg, err := s.repo.Package.FindByID(ctx, packageID)
	if err != nil {
		return nil, fmt.Errorf("check package: %w", err)
	}
	if pkg == nil || !pkg.Active || pkg.EventID != eventID {
		return nil, newError(KindNotFound, fmt.Sprintf("package %s not available for event", req.PackageID))
	}

	var propertyID *uuid.UUID
	if req.PropertyID != nil {
		id, err := uuid.Parse(*req.PropertyID)
		if err != nil {
			return nil, wrapError(KindValidation, "invalid property ID format", err)
		}
		property, err := s.repo.Property.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("check property: %w", err)
		}
		if property == nil {
			return nil, newError(KindNotFound, fmt.Sprintf("property %s not found", *req.PropertyID))
		}
		propertyID = &id
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		UserID:         userUUID,
		EventID:        eventID,
		PackageID:      packageID,
		Status:         entity.BookingPendingPayment,
		PrimaryName:    req.PrimaryName,
		PrimaryGender:  entity.Gender(req.PrimaryGender),
		PrimaryAge:     req.PrimaryAge,
		PrimaryPhone:   req.PrimaryPhone,
		PrimaryEmail:   req.PrimaryEmail,
		EmergencyName:  req.EmergencyName,
		EmergencyPhone: req.EmergencyPhone,
		GuestAges:      req.GuestAges,
		PropertyID:     propertyID,
	}

	for _, c := range req.Companions {
		booking.Companions = append(booking.Companions, entity.Companion{
			Name:       c.Name,
			Age:        c.Age,
			Gender:     entity.Gender(c.Gender),
			Meal:       c.Meal,
			BloodGroup: c.BloodGroup,
		})
	}

	booking.GuestCount = req.GuestCount
	booking.GuestCount = booking.PartySize() // normalize against companions/ages

	pricing := ComputePricing(pkg, booking)
	booking.Pricing = pricing
	booking.TotalAmount = pricing.Total
	booking.PayableAmount = pricing.Total

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		return nil, err
	}

	if len(req.AddOns) > 0 {
		addOns := make([]*entity.BookingAddOn, 0, len(req.AddOns))
		for _, a := range req.AddOns {
			addOns = append(addOns, &entity.BookingAddOn{
				BaseNoDelete: entity.BaseNoDelete{
					ID:        utils.GenerateUUID(),
					CreatedAt: now,
					UpdatedAt: now,
				},
				BookingID: booking.ID,
				Name:      a.Name,
				Quantity:  a.Quantity,
				Status:    entity.AddOnPending,
			})
		}
		if err := s.repo.AddOn.CreateBatch(ctx, addOns); err != nil {
			return nil, err
		}
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("user_id", userID),
		zap.Int("guest_count", booking.GuestCount),
		zap.Int64("total", booking.TotalAmount),
	)

	resp := response.BookingToResponse(booking)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, wrapError(KindValidation, "invalid user ID format", err)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		return nil, err
	}

	items := make([]response.BookingResponse, 0, len(bookings))
	for _, b := range bookings {
		items = append(items, response.BookingToResponse(b))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *bookingService) CreateOrder(ctx context.Context, userID string, req *request.CreateOrderRequest) (*response.OrderResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create order validation failed", zap.Any("errors", errs))
		return nil, newError(KindValidation, utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, wrapError(KindValidation, "invalid user ID format", err)
	}

	bookingID, err := uuid.Parse(req.BookingID)
	if err != nil {
		return nil, wrapError(KindValidation, "invalid booking ID format", err)
	}

	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil || booking.UserID != userUUID {
		return nil, newError(KindNotFound, fmt.Sprintf("booking %s not found", req.BookingID))
	}
	if booking.Status == entity.BookingConfirmed || booking.Status == entity.BookingCancelled {
		return nil, newError(KindValidation, fmt.Sprintf("booking is already %s", booking.Status))
	}

	pkg, err := s.repo.Package.FindByID(ctx, booking.PackageID)
	if err != nil {
		return nil, err
	}
	if pkg == nil {
		return nil, newError(KindConfiguration, "booking references a missing package")
	}

	// Snapshot harga dihitung ulang setiap attempt; idempotent selama
	// booking masih pending.
	pricing := ComputePricing(pkg, booking)
	booking.Pricing = pricing
	booking.TotalAmount = pricing.Total

	payable := pricing.Total
	if req.PromoCode != "" {
		promo, err := s.repo.Promo.FindByCode(ctx, req.PromoCode)
		if err != nil {
			return nil, err
		}
		promoBreakdown, err := ApplyPromo(payable, ValidatePromoCode(promo, time.Now()))
		if err != nil {
			return nil, err
		}
		booking.Promo = promoBreakdown
		if promoBreakdown != nil {
			payable = promoBreakdown.Final
		}
	} else {
		booking.Promo = nil
	}

	fee, err := GrossUp(payable, s.cfg.FeeRate, s.cfg.FeeGSTRate)
	if err != nil {
		return nil, err
	}
	booking.Fee = fee
	booking.PayableAmount = fee.Gross

	if err := s.repo.Booking.UpdatePricingSnapshot(ctx, booking); err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.Order{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingID: booking.ID,
		Reference: utils.GenerateOrderRef(),
		Amount:    booking.PayableAmount * 100, // minor units
		Currency:  s.cfg.Currency,
	}

	// Panggilan gateway berjalan di luar lock inventory manapun.
	providerOrder, err := s.gateway.CreateOrder(ctx, payment.CreateOrderParams{
		Amount:   order.Amount,
		Currency: order.Currency,
		Receipt:  order.Reference,
		Notes: map[string]string{
			"local_rp_order": order.ID.String(),
			"booking_id":     booking.ID.String(),
		},
	})
	if err != nil {
		s.log.Error("Failed to create provider order",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return nil, fmt.Errorf("create provider order: %w", err)
	}
	order.ProviderOrderID = providerOrder.ProviderOrderID

	link, err := s.gateway.CreatePaymentLink(ctx, payment.CreateLinkParams{
		Amount:        order.Amount,
		Currency:      order.Currency,
		ReferenceID:   fmt.Sprintf("orderdb-%s", order.ID.String()),
		Description:   fmt.Sprintf("Booking %s", order.Reference),
		CustomerName:  booking.PrimaryName,
		CustomerEmail: booking.PrimaryEmail,
		Notes: map[string]string{
			"local_rp_order": order.ID.String(),
		},
	})
	if err != nil {
		s.log.Error("Failed to create payment link",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return nil, fmt.Errorf("create payment link: %w", err)
	}
	order.PaymentLinkURL = link.URL
	if link.ProviderOrderID != "" {
		// Payment link membawa order provider-nya sendiri; id itulah
		// yang muncul di notifikasi webhook.
		order.ProviderOrderID = link.ProviderOrderID
	}

	if err := s.repo.Order.Create(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info("Order created",
		zap.String("order_id", order.ID.String()),
		zap.String("booking_id", booking.ID.String()),
		zap.String("provider_order_id", order.ProviderOrderID),
		zap.Int64("amount", order.Amount),
	)

	resp := response.OrderToResponse(order)
	return &resp, nil
}
