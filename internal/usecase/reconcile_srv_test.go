package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"testing"

	"camp-booking/internal/data/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testWebhookSecret = "whsec_test"

func sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testWebhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func capturedBody(paymentID, providerOrderID string, amount int64) []byte {
	return []byte(fmt.Sprintf(`{
		"event": "payment.captured",
		"payload": {
			"payment": {
				"entity": {"id": %q, "order_id": %q, "amount": %d, "notes": []}
			}
		}
	}`, paymentID, providerOrderID, amount))
}

type reconcileFixture struct {
	*allocFixture
	reconcile ReconcileService
	bookingID uuid.UUID
	orderID   uuid.UUID
}

func newReconcileFixture(t *testing.T) *reconcileFixture {
	t.Helper()

	f := newAllocFixture(t)
	f.store.addUnit(f.propID, f.utID, "T1", 4)

	bookingID := f.addBooking(entity.GenderMale, entity.GenderFemale)
	booking := f.store.bookings[bookingID]
	booking.TotalAmount = 11500
	booking.PayableAmount = 11500

	orderID := uuid.New()
	f.store.orders[orderID] = &entity.Order{
		BaseNoDelete:    entity.BaseNoDelete{ID: orderID},
		BookingID:       bookingID,
		Reference:       "CAMP-20261120-101500-0042",
		ProviderOrderID: "order_live_7",
		Amount:          1150000,
		Currency:        "INR",
	}

	reconcile := NewReconcileService(f.store.repos(), f.service, testWebhookSecret, zap.NewNop())

	return &reconcileFixture{
		allocFixture: f,
		reconcile:    reconcile,
		bookingID:    bookingID,
		orderID:      orderID,
	}
}

func (f *reconcileFixture) deliver(t *testing.T, body []byte, signature string) error {
	t.Helper()
	return f.reconcile.HandleNotification(context.Background(), &Notification{
		Signature:  signature,
		RemoteAddr: "10.0.0.9:3456",
		RawBody:    body,
	})
}

func (f *reconcileFixture) singleWebhookRecord(t *testing.T) *entity.WebhookEvent {
	t.Helper()
	require.Len(t, f.store.webhooks, 1)
	for _, w := range f.store.webhooks {
		return w
	}
	return nil
}

func TestHandleNotification_FullPaymentConfirmsBooking(t *testing.T) {
	f := newReconcileFixture(t)
	body := capturedBody("pay_1", "order_live_7", 1150000)

	require.NoError(t, f.deliver(t, body, sign(body)))

	order := f.store.orders[f.orderID]
	assert.True(t, order.Paid)
	require.NotNil(t, order.ProviderPaymentID)
	assert.Equal(t, "pay_1", *order.ProviderPaymentID)

	booking := f.store.bookings[f.bookingID]
	assert.Equal(t, entity.BookingConfirmed, booking.Status)
	assert.Len(t, f.store.allocs, 1)

	record := f.singleWebhookRecord(t)
	assert.True(t, record.ProcessedOK)
	require.NotNil(t, record.MatchedOrderID)
	assert.Equal(t, f.orderID, *record.MatchedOrderID)
	assert.Equal(t, body, record.RawBody)
}

func TestHandleNotification_BadSignatureRejectedButLogged(t *testing.T) {
	f := newReconcileFixture(t)
	body := capturedBody("pay_1", "order_live_7", 1150000)

	err := f.deliver(t, body, "deadbeef")
	require.Error(t, err)
	assert.Equal(t, KindAuthenticity, KindOf(err))

	// Raw delivery persisted even though rejected; nothing mutated.
	record := f.singleWebhookRecord(t)
	assert.False(t, record.ProcessedOK)
	assert.Equal(t, body, record.RawBody)
	assert.False(t, f.store.orders[f.orderID].Paid)
	assert.Equal(t, entity.BookingPendingPayment, f.store.bookings[f.bookingID].Status)
	assert.Empty(t, f.store.allocs)
}

func TestHandleNotification_RedeliveryYieldsOneConfirmation(t *testing.T) {
	f := newReconcileFixture(t)
	body := capturedBody("pay_1", "order_live_7", 1150000)

	require.NoError(t, f.deliver(t, body, sign(body)))
	require.NoError(t, f.deliver(t, body, sign(body)))

	assert.Equal(t, entity.BookingConfirmed, f.store.bookings[f.bookingID].Status)
	assert.Len(t, f.store.allocs, 1)
	assert.Equal(t, int64(1150000), f.store.orders[f.orderID].AmountPaid)
	assert.Len(t, f.store.webhooks, 2)
}

func TestHandleNotification_UnknownOrderAcknowledgedWithoutMutation(t *testing.T) {
	f := newReconcileFixture(t)
	body := capturedBody("pay_9", "order_nobody_knows", 500)

	require.NoError(t, f.deliver(t, body, sign(body)))

	record := f.singleWebhookRecord(t)
	assert.True(t, record.ProcessedOK)
	assert.Nil(t, record.MatchedOrderID)
	assert.Equal(t, "no matching order", record.Error)
	assert.False(t, f.store.orders[f.orderID].Paid)
	assert.Empty(t, f.store.allocs)
}

func TestHandleNotification_ResolvesByPaymentLinkReference(t *testing.T) {
	f := newReconcileFixture(t)
	body := []byte(fmt.Sprintf(`{
		"event": "payment_link.paid",
		"payload": {
			"payment": {"entity": {"id": "pay_2", "amount": 1150000, "notes": []}},
			"payment_link": {"entity": {"reference_id": "orderdb-%s"}}
		}
	}`, f.orderID))

	require.NoError(t, f.deliver(t, body, sign(body)))

	assert.True(t, f.store.orders[f.orderID].Paid)
	assert.Equal(t, entity.BookingConfirmed, f.store.bookings[f.bookingID].Status)
}

func TestHandleNotification_ResolvesByNotesFallback(t *testing.T) {
	f := newReconcileFixture(t)
	body := []byte(fmt.Sprintf(`{
		"event": "payment.captured",
		"payload": {
			"payment": {"entity": {"id": "pay_3", "amount": 1150000, "notes": {"local_rp_order": %q}}}
		}
	}`, f.orderID.String()))

	require.NoError(t, f.deliver(t, body, sign(body)))

	assert.True(t, f.store.orders[f.orderID].Paid)
}

func TestHandleNotification_UnderpaymentMarksPartial(t *testing.T) {
	f := newReconcileFixture(t)
	first := capturedBody("pay_a", "order_live_7", 500000)

	require.NoError(t, f.deliver(t, first, sign(first)))

	assert.False(t, f.store.orders[f.orderID].Paid)
	assert.Equal(t, entity.BookingPartial, f.store.bookings[f.bookingID].Status)
	assert.Empty(t, f.store.allocs)

	// The remainder lands later under a new payment id.
	second := capturedBody("pay_b", "order_live_7", 650000)
	require.NoError(t, f.deliver(t, second, sign(second)))

	assert.True(t, f.store.orders[f.orderID].Paid)
	assert.Equal(t, entity.BookingConfirmed, f.store.bookings[f.bookingID].Status)
	assert.Len(t, f.store.allocs, 1)
}

func TestHandleNotification_AllocationFailureKeepsPaidFact(t *testing.T) {
	f := newReconcileFixture(t)

	// Occupy the only unit so allocation must fail.
	for _, u := range f.store.units {
		u.Status = entity.UnitOccupied
	}

	body := capturedBody("pay_1", "order_live_7", 1150000)
	require.NoError(t, f.deliver(t, body, sign(body)))

	assert.True(t, f.store.orders[f.orderID].Paid, "paid flag must survive side-effect failure")
	assert.NotEqual(t, entity.BookingConfirmed, f.store.bookings[f.bookingID].Status)

	record := f.singleWebhookRecord(t)
	assert.False(t, record.ProcessedOK)
	assert.NotEmpty(t, record.Error)
	require.NotNil(t, record.MatchedOrderID)
}

func TestHandleNotification_MalformedPayloadRejectedAfterPersist(t *testing.T) {
	f := newReconcileFixture(t)
	body := []byte(`{"event": "payment.captured", "payload":`)

	err := f.deliver(t, body, sign(body))
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))

	// Still persisted verbatim for manual reconciliation.
	record := f.singleWebhookRecord(t)
	assert.False(t, record.ProcessedOK)
	assert.Contains(t, record.Error, "malformed payload")
	assert.Equal(t, body, record.RawBody)
}

func TestHandleNotification_RedeliveryHealsUnconfirmedPaidBooking(t *testing.T) {
	f := newReconcileFixture(t)

	// A previous delivery committed the paid fact but its allocation
	// side effect failed before confirming the booking.
	paymentID := "pay_1"
	order := f.store.orders[f.orderID]
	order.Paid = true
	order.AmountPaid = order.Amount
	order.ProviderPaymentID = &paymentID

	body := capturedBody("pay_1", "order_live_7", 1150000)
	require.NoError(t, f.deliver(t, body, sign(body)))

	assert.Equal(t, entity.BookingConfirmed, f.store.bookings[f.bookingID].Status)
	assert.Len(t, f.store.allocs, 1)
	assert.Equal(t, order.Amount, f.store.orders[f.orderID].AmountPaid, "re-delivery must not double-count")
}

func TestHandleNotification_CancelledBookingNeverConfirmed(t *testing.T) {
	f := newReconcileFixture(t)
	f.store.bookings[f.bookingID].Status = entity.BookingCancelled

	body := capturedBody("pay_1", "order_live_7", 1150000)
	require.NoError(t, f.deliver(t, body, sign(body)))

	assert.True(t, f.store.orders[f.orderID].Paid)
	assert.Equal(t, entity.BookingCancelled, f.store.bookings[f.bookingID].Status)
	assert.Empty(t, f.store.allocs)

	record := f.singleWebhookRecord(t)
	assert.False(t, record.ProcessedOK)
	assert.NotEmpty(t, record.Error)
}

func TestHandleNotification_FinalizesPendingAddOns(t *testing.T) {
	f := newReconcileFixture(t)
	addOnID := uuid.New()
	f.store.addOns[addOnID] = &entity.BookingAddOn{
		BaseNoDelete: entity.BaseNoDelete{ID: addOnID},
		BookingID:    f.bookingID,
		Name:         "Bonfire Dinner",
		Quantity:     2,
		Status:       entity.AddOnPending,
	}

	body := capturedBody("pay_1", "order_live_7", 1150000)
	require.NoError(t, f.deliver(t, body, sign(body)))

	assert.Equal(t, entity.AddOnFinalized, f.store.addOns[addOnID].Status)
}
