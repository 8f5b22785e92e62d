package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"camp-booking/internal/data/entity"
	"camp-booking/internal/data/repository"
	"camp-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notification is one raw inbound delivery from the payment provider.
type Notification struct {
	Signature  string
	RemoteAddr string
	RawBody    []byte
}

type ReconcileService interface {
	// HandleNotification persists, authenticates, and applies one
	// provider notification. Re-deliveries are acknowledged without
	// repeating side effects.
	HandleNotification(ctx context.Context, n *Notification) error
}

type reconcileService struct {
	repo       *repository.Repository
	allocation AllocationService
	secret     string
	log        *zap.Logger
}

func NewReconcileService(repo *repository.Repository, allocation AllocationService, webhookSecret string, log *zap.Logger) ReconcileService {
	return &reconcileService{
		repo:       repo,
		allocation: allocation,
		secret:     webhookSecret,
		log:        log.With(zap.String("service", "reconcile")),
	}
}

// ==================== PAYLOAD ====================

// noteMap tolerates the provider sending notes as an empty array
// instead of an object.
type noteMap map[string]string

func (n *noteMap) UnmarshalJSON(b []byte) error {
	var m map[string]string
	if err := json.Unmarshal(b, &m); err == nil {
		*n = m
	}
	return nil
}

type notificationPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string  `json:"id"`
				OrderID string  `json:"order_id"`
				Amount  int64   `json:"amount"`
				Notes   noteMap `json:"notes"`
			} `json:"entity"`
		} `json:"payment"`
		PaymentLink struct {
			Entity struct {
				ReferenceID string `json:"reference_id"`
				OrderID     string `json:"order_id"`
			} `json:"entity"`
		} `json:"payment_link"`
	} `json:"payload"`
}

// ==================== HANDLER ====================

func (s *reconcileService) HandleNotification(ctx context.Context, n *Notification) error {
	var payload notificationPayload
	parseErr := json.Unmarshal(n.RawBody, &payload)

	// Simpan dulu apa adanya, valid atau tidak.
	now := time.Now()
	record := &entity.WebhookEvent{
		BaseNoDelete: entity.BaseNoDelete{
			ID:        utils.GenerateUUID(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Provider:   "razorpay",
		Event:      payload.Event,
		Signature:  n.Signature,
		RemoteAddr: n.RemoteAddr,
		RawBody:    n.RawBody,
	}
	if err := s.repo.WebhookEvent.Create(ctx, record); err != nil {
		return err
	}

	if !verifySignature(n.RawBody, n.Signature, s.secret) {
		s.finish(ctx, record, nil, false, "signature mismatch")
		s.log.Warn("Webhook signature mismatch",
			zap.String("webhook_event_id", record.ID.String()),
			zap.String("remote_addr", n.RemoteAddr),
		)
		return newError(KindAuthenticity, "webhook signature mismatch")
	}

	if parseErr != nil {
		s.finish(ctx, record, nil, false, "malformed payload: "+parseErr.Error())
		return wrapError(KindValidation, "malformed webhook payload", parseErr)
	}

	order, err := s.resolveOrder(ctx, &payload)
	if err != nil {
		s.finish(ctx, record, nil, false, err.Error())
		return nil
	}
	if order == nil {
		// Notifikasi untuk order yang tidak dikenal tetap di-ack.
		s.finish(ctx, record, nil, true, "no matching order")
		return nil
	}

	if err := s.applyPayment(ctx, order, &payload); err != nil {
		s.finish(ctx, record, &order.ID, false, err.Error())
		return nil
	}

	s.finish(ctx, record, &order.ID, true, "")
	return nil
}

// applyPayment credits the payment against the order and, once the
// order is fully paid, runs the downstream side effects. Side-effect
// failures never unwind the paid flag.
func (s *reconcileService) applyPayment(ctx context.Context, order *entity.Order, payload *notificationPayload) error {
	if order.Paid {
		// Pembayaran sudah tercatat; pengiriman ulang tetap mencoba
		// side effect lagi supaya booking yang gagal dikonfirmasi
		// sebelumnya sembuh sendiri.
		s.log.Info("Order already paid, retrying side effects on re-delivery",
			zap.String("order_id", order.ID.String()),
		)
		if err := s.confirmBooking(ctx, order.BookingID); err != nil {
			return fmt.Errorf("paid, post-payment processing failed: %w", err)
		}
		return nil
	}

	paymentID := payload.Payload.Payment.Entity.ID
	amount := payload.Payload.Payment.Entity.Amount

	alreadyCounted := order.ProviderPaymentID != nil && paymentID != "" && *order.ProviderPaymentID == paymentID
	if !alreadyCounted && amount > 0 {
		if err := s.repo.Order.AddPayment(ctx, order.ID, paymentID, amount); err != nil {
			return err
		}
		order.AmountPaid += amount
	}

	if order.AmountPaid < order.Amount {
		s.log.Info("Partial payment recorded",
			zap.String("order_id", order.ID.String()),
			zap.Int64("amount_paid", order.AmountPaid),
			zap.Int64("amount", order.Amount),
		)
		return s.markPartial(ctx, order.BookingID)
	}

	transitioned, err := s.repo.Order.MarkPaid(ctx, order.ID, paymentID)
	if err != nil {
		return err
	}
	if !transitioned {
		// Pengiriman ganda kalah balapan; pihak lain sudah memproses.
		return nil
	}

	s.log.Info("Order paid",
		zap.String("order_id", order.ID.String()),
		zap.String("provider_payment_id", paymentID),
	)

	// Fakta pembayaran sudah commit; kegagalan di bawah ini dicatat
	// untuk rekonsiliasi manual, bukan di-rollback.
	if err := s.confirmBooking(ctx, order.BookingID); err != nil {
		s.log.Error("Post-payment processing failed",
			zap.Error(err),
			zap.String("order_id", order.ID.String()),
			zap.String("booking_id", order.BookingID.String()),
		)
		return fmt.Errorf("paid, post-payment processing failed: %w", err)
	}

	return nil
}

func (s *reconcileService) confirmBooking(ctx context.Context, bookingID uuid.UUID) error {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking == nil {
		return newError(KindNotFound, fmt.Sprintf("booking %s not found", bookingID.String()))
	}
	if booking.Status == entity.BookingConfirmed {
		return nil
	}
	if !booking.Status.CanTransition(entity.BookingConfirmed) {
		return newError(KindValidation,
			fmt.Sprintf("booking %s is %s and cannot be confirmed", bookingID, booking.Status))
	}

	if booking.Pricing == nil {
		pkg, err := s.repo.Package.FindByID(ctx, booking.PackageID)
		if err != nil {
			return err
		}
		if pkg == nil {
			return newError(KindConfiguration, "booking references a missing package")
		}
		booking.Pricing = ComputePricing(pkg, booking)
		booking.TotalAmount = booking.Pricing.Total
		if booking.PayableAmount == 0 {
			booking.PayableAmount = booking.Pricing.Total
		}
		if err := s.repo.Booking.UpdatePricingSnapshot(ctx, booking); err != nil {
			return err
		}
	}

	if err := s.allocation.Allocate(ctx, bookingID); err != nil {
		return err
	}

	finalized, err := s.repo.AddOn.FinalizeByBookingID(ctx, bookingID)
	if err != nil {
		return err
	}
	if finalized > 0 {
		s.log.Info("Add-ons finalized",
			zap.String("booking_id", bookingID.String()),
			zap.Int64("count", finalized),
		)
	}

	return nil
}

func (s *reconcileService) markPartial(ctx context.Context, bookingID uuid.UUID) error {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking == nil || !booking.Status.CanTransition(entity.BookingPartial) {
		return nil
	}
	return s.repo.Booking.UpdateStatus(ctx, bookingID, entity.BookingPartial)
}

// resolveOrder tries the identifier locations in fixed priority order;
// the first hit wins.
func (s *reconcileService) resolveOrder(ctx context.Context, payload *notificationPayload) (*entity.Order, error) {
	if ref := payload.Payload.PaymentLink.Entity.ReferenceID; strings.HasPrefix(ref, "orderdb-") {
		if id, err := uuid.Parse(strings.TrimPrefix(ref, "orderdb-")); err == nil {
			order, err := s.repo.Order.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			if order != nil {
				return order, nil
			}
		}
	}

	if providerOrderID := payload.Payload.Payment.Entity.OrderID; providerOrderID != "" {
		order, err := s.repo.Order.FindByProviderOrderID(ctx, providerOrderID)
		if err != nil {
			return nil, err
		}
		if order != nil {
			return order, nil
		}
	}

	if providerOrderID := payload.Payload.PaymentLink.Entity.OrderID; providerOrderID != "" {
		order, err := s.repo.Order.FindByProviderOrderID(ctx, providerOrderID)
		if err != nil {
			return nil, err
		}
		if order != nil {
			return order, nil
		}
	}

	if local := payload.Payload.Payment.Entity.Notes["local_rp_order"]; local != "" {
		if id, err := uuid.Parse(local); err == nil {
			order, err := s.repo.Order.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			if order != nil {
				return order, nil
			}
		}
	}

	return nil, nil
}

func (s *reconcileService) finish(ctx context.Context, record *entity.WebhookEvent, orderID *uuid.UUID, ok bool, errMsg string) {
	now := time.Now()
	record.MatchedOrderID = orderID
	record.ProcessedOK = ok
	record.Error = errMsg
	record.ProcessedAt = &now

	if err := s.repo.WebhookEvent.UpdateOutcome(ctx, record); err != nil {
		s.log.Error("Failed to record webhook outcome",
			zap.Error(err),
			zap.String("webhook_event_id", record.ID.String()),
		)
	}
}

// verifySignature checks the provider's HMAC-SHA256 hex signature over
// the raw body in constant time.
func verifySignature(body []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
