package usecase

// In-memory fakes of the repository interfaces. A single mutex is held
// from Begin to Commit/Rollback so parallel allocation attempts
// serialize over the shared inventory exactly like row locks would.

import (
	"context"
	"sync"
	"time"

	"camp-booking/internal/data/entity"
	"camp-booking/internal/data/repository"
	"camp-booking/pkg/database"
	"camp-booking/pkg/payment"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ==================== FAKE STORE ====================

type fakeStore struct {
	mu     sync.Mutex // held Begin..Commit, serializes allocation txs
	dataMu sync.Mutex // guards the maps below

	events    map[uuid.UUID]*entity.Event
	packages  map[uuid.UUID]*entity.Package
	allowed   map[uuid.UUID][]uuid.UUID // package -> unit types
	unitTypes map[uuid.UUID]*entity.UnitType
	units     map[uuid.UUID]*entity.Unit
	unitMeta  map[uuid.UUID]*entity.FreeUnit
	bookings  map[uuid.UUID]*entity.Booking
	allocs    []*entity.Allocation
	orders    map[uuid.UUID]*entity.Order
	webhooks  map[uuid.UUID]*entity.WebhookEvent
	addOns    map[uuid.UUID]*entity.BookingAddOn
	promos    map[string]*entity.PromoCode
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		events:    map[uuid.UUID]*entity.Event{},
		packages:  map[uuid.UUID]*entity.Package{},
		allowed:   map[uuid.UUID][]uuid.UUID{},
		unitTypes: map[uuid.UUID]*entity.UnitType{},
		units:     map[uuid.UUID]*entity.Unit{},
		unitMeta:  map[uuid.UUID]*entity.FreeUnit{},
		bookings:  map[uuid.UUID]*entity.Booking{},
		orders:    map[uuid.UUID]*entity.Order{},
		webhooks:  map[uuid.UUID]*entity.WebhookEvent{},
		addOns:    map[uuid.UUID]*entity.BookingAddOn{},
		promos:    map[string]*entity.PromoCode{},
	}
}

func (s *fakeStore) addUnit(propertyID, unitTypeID uuid.UUID, name string, capacity int) uuid.UUID {
	id := uuid.New()
	s.units[id] = &entity.Unit{
		BaseNoDelete: entity.BaseNoDelete{ID: id},
		PropertyID:   propertyID,
		UnitTypeID:   unitTypeID,
		Name:         name,
		Capacity:     capacity,
		Status:       entity.UnitAvailable,
	}
	s.unitMeta[id] = &entity.FreeUnit{
		ID:         id,
		PropertyID: propertyID,
		UnitTypeID: unitTypeID,
		Name:       name,
		Capacity:   capacity,
	}
	return id
}

func (s *fakeStore) repos() *repository.Repository {
	return &repository.Repository{
		Event:        &fakeEventRepo{s},
		Property:     &fakePropertyRepo{},
		UnitType:     &fakeUnitTypeRepo{s},
		Unit:         &fakeUnitRepo{s},
		Package:      &fakePackageRepo{s},
		Promo:        &fakePromoRepo{s},
		Booking:      &fakeBookingRepo{s},
		Allocation:   &fakeAllocationRepo{s},
		Order:        &fakeOrderRepo{s},
		WebhookEvent: &fakeWebhookRepo{s},
		AddOn:        &fakeAddOnRepo{s},
	}
}

// ==================== FAKE DB / TX ====================

type fakeDB struct{ store *fakeStore }

func (db *fakeDB) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (db *fakeDB) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (db *fakeDB) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (db *fakeDB) Ping(ctx context.Context) error { return nil }
func (db *fakeDB) Close()                         {}

func (db *fakeDB) Begin(ctx context.Context) (database.Tx, error) {
	db.store.mu.Lock()
	return &fakeTx{store: db.store}, nil
}

type fakeTx struct {
	store *fakeStore
	done  bool
}

func (tx *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (tx *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row { return nil }
func (tx *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (tx *fakeTx) Commit(ctx context.Context) error {
	tx.release()
	return nil
}

func (tx *fakeTx) Rollback(ctx context.Context) error {
	tx.release()
	return pgx.ErrTxClosed
}

func (tx *fakeTx) release() {
	if !tx.done {
		tx.done = true
		tx.store.mu.Unlock()
	}
}

// ==================== FAKE REPOSITORIES ====================

type fakeEventRepo struct{ s *fakeStore }

func (r *fakeEventRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	return r.s.events[id], nil
}
func (r *fakeEventRepo) FindBySlug(ctx context.Context, slug string) (*entity.Event, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	for _, e := range r.s.events {
		if e.Slug == slug {
			return e, nil
		}
	}
	return nil, nil
}
func (r *fakeEventRepo) FindActive(ctx context.Context) (*entity.Event, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	for _, e := range r.s.events {
		if e.Active {
			return e, nil
		}
	}
	return nil, nil
}

type fakePropertyRepo struct{}

func (r *fakePropertyRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	return &entity.Property{BaseNoDelete: entity.BaseNoDelete{ID: id}, Name: "Riverside"}, nil
}
func (r *fakePropertyRepo) FindAll(ctx context.Context) ([]*entity.Property, error) {
	return nil, nil
}

type fakeUnitTypeRepo struct{ s *fakeStore }

func (r *fakeUnitTypeRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.UnitType, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	return r.s.unitTypes[id], nil
}
func (r *fakeUnitTypeRepo) FindByNames(ctx context.Context, names []string) ([]*entity.UnitType, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	var out []*entity.UnitType
	for _, ut := range r.s.unitTypes {
		for _, n := range names {
			if ut.Name == n {
				out = append(out, ut)
			}
		}
	}
	return out, nil
}
func (r *fakeUnitTypeRepo) FindAll(ctx context.Context) ([]*entity.UnitType, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	return nil, nil
}

type fakeUnitRepo struct{ s *fakeStore }

func (r *fakeUnitRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Unit, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	return r.s.units[id], nil
}

func (r *fakeUnitRepo) FindFreeForUpdate(ctx context.Context, tx database.Tx, eventID uuid.UUID, allowedTypeIDs []uuid.UUID, preferredPropertyID *uuid.UUID) ([]*entity.FreeUnit, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	taken := map[uuid.UUID]bool{}
	for _, a := range r.s.allocs {
		b := r.s.bookings[a.BookingID]
		if b != nil && b.EventID == eventID && b.Status != entity.BookingCancelled {
			taken[a.UnitID] = true
		}
	}

	allowed := map[uuid.UUID]bool{}
	for _, id := range allowedTypeIDs {
		allowed[id] = true
	}

	var free []*entity.FreeUnit
	for id, u := range r.s.units {
		if u.Status != entity.UnitAvailable || taken[id] || !allowed[u.UnitTypeID] {
			continue
		}
		free = append(free, r.s.unitMeta[id])
	}

	// Preferred property first, then larger capacity, mirroring the
	// production ordering.
	for i := 0; i < len(free); i++ {
		for j := i + 1; j < len(free); j++ {
			if freeLess(free[j], free[i], preferredPropertyID) {
				free[i], free[j] = free[j], free[i]
			}
		}
	}
	return free, nil
}

func freeLess(a, b *entity.FreeUnit, preferred *uuid.UUID) bool {
	if preferred != nil {
		ap, bp := a.PropertyID == *preferred, b.PropertyID == *preferred
		if ap != bp {
			return ap
		}
	}
	if a.Capacity != b.Capacity {
		return a.Capacity > b.Capacity
	}
	return a.Name < b.Name
}

func (r *fakeUnitRepo) UpdateStatusTx(ctx context.Context, tx database.Tx, unitID uuid.UUID, status entity.UnitStatus) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	r.s.units[unitID].Status = status
	return nil
}

func (r *fakeUnitRepo) AvailabilitySummary(ctx context.Context, eventID uuid.UUID) ([]*repository.AvailabilityRow, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	return nil, nil
}

type fakePackageRepo struct{ s *fakeStore }

func (r *fakePackageRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Package, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	return r.s.packages[id], nil
}
func (r *fakePackageRepo) FindActiveByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.Package, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	var out []*entity.Package
	for _, p := range r.s.packages {
		if p.EventID == eventID && p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *fakePackageRepo) FindAllowedUnitTypeIDs(ctx context.Context, packageID uuid.UUID) ([]uuid.UUID, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	return r.s.allowed[packageID], nil
}

type fakePromoRepo struct{ s *fakeStore }

func (r *fakePromoRepo) FindByCode(ctx context.Context, code string) (*entity.PromoCode, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	for c, p := range r.s.promos {
		if equalFold(c, code) {
			return p, nil
		}
	}
	return nil, nil
}

func equalFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

type fakeBookingRepo struct{ s *fakeStore }

func (r *fakeBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	copied := *booking
	r.s.bookings[booking.ID] = &copied
	return nil
}
func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, nil
	}
	copied := *b
	return &copied, nil
}
func (r *fakeBookingRepo) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	var out []*entity.Booking
	for _, b := range r.s.bookings {
		if b.UserID == userID {
			copied := *b
			out = append(out, &copied)
		}
	}
	return out, nil
}
func (r *fakeBookingRepo) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	var n int64
	for _, b := range r.s.bookings {
		if b.UserID == userID {
			n++
		}
	}
	return n, nil
}
func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	r.s.bookings[bookingID].Status = status
	return nil
}
func (r *fakeBookingRepo) UpdatePricingSnapshot(ctx context.Context, booking *entity.Booking) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	stored := r.s.bookings[booking.ID]
	stored.Pricing = booking.Pricing
	stored.Promo = booking.Promo
	stored.Fee = booking.Fee
	stored.TotalAmount = booking.TotalAmount
	stored.PayableAmount = booking.PayableAmount
	stored.GuestCount = booking.GuestCount
	return nil
}
func (r *fakeBookingRepo) UpdateAllocationOutcomeTx(ctx context.Context, tx database.Tx, booking *entity.Booking) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	stored := r.s.bookings[booking.ID]
	stored.Status = booking.Status
	stored.PropertyID = booking.PropertyID
	stored.UnitTypeID = booking.UnitTypeID
	stored.ResolvedCategory = booking.ResolvedCategory
	stored.CheckIn = booking.CheckIn
	stored.CheckOut = booking.CheckOut
	return nil
}

type fakeAllocationRepo struct{ s *fakeStore }

func (r *fakeAllocationRepo) CreateTx(ctx context.Context, tx database.Tx, allocation *entity.Allocation) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	copied := *allocation
	r.s.allocs = append(r.s.allocs, &copied)
	return nil
}
func (r *fakeAllocationRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Allocation, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	var out []*entity.Allocation
	for _, a := range r.s.allocs {
		if a.BookingID == bookingID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}

type fakeOrderRepo struct{ s *fakeStore }

func (r *fakeOrderRepo) Create(ctx context.Context, order *entity.Order) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	copied := *order
	r.s.orders[order.ID] = &copied
	return nil
}
func (r *fakeOrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *o
	return &copied, nil
}
func (r *fakeOrderRepo) FindByProviderOrderID(ctx context.Context, providerOrderID string) (*entity.Order, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	for _, o := range r.s.orders {
		if o.ProviderOrderID == providerOrderID {
			copied := *o
			return &copied, nil
		}
	}
	return nil, nil
}
func (r *fakeOrderRepo) FindByReference(ctx context.Context, reference string) (*entity.Order, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	for _, o := range r.s.orders {
		if o.Reference == reference {
			copied := *o
			return &copied, nil
		}
	}
	return nil, nil
}
func (r *fakeOrderRepo) FindOpenByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Order, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	for _, o := range r.s.orders {
		if o.BookingID == bookingID && !o.Paid {
			copied := *o
			return &copied, nil
		}
	}
	return nil, nil
}
func (r *fakeOrderRepo) MarkPaid(ctx context.Context, orderID uuid.UUID, providerPaymentID string) (bool, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	o := r.s.orders[orderID]
	if o.Paid {
		return false, nil
	}
	now := time.Now()
	o.Paid = true
	o.ProviderPaymentID = &providerPaymentID
	o.PaidAt = &now
	return true, nil
}
func (r *fakeOrderRepo) AddPayment(ctx context.Context, orderID uuid.UUID, providerPaymentID string, amount int64) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	o := r.s.orders[orderID]
	o.AmountPaid += amount
	o.ProviderPaymentID = &providerPaymentID
	return nil
}

type fakeWebhookRepo struct{ s *fakeStore }

func (r *fakeWebhookRepo) Create(ctx context.Context, event *entity.WebhookEvent) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	copied := *event
	r.s.webhooks[event.ID] = &copied
	return nil
}
func (r *fakeWebhookRepo) UpdateOutcome(ctx context.Context, event *entity.WebhookEvent) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	copied := *event
	r.s.webhooks[event.ID] = &copied
	return nil
}

type fakeAddOnRepo struct{ s *fakeStore }

func (r *fakeAddOnRepo) CreateBatch(ctx context.Context, addOns []*entity.BookingAddOn) error {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	for _, a := range addOns {
		copied := *a
		r.s.addOns[a.ID] = &copied
	}
	return nil
}
func (r *fakeAddOnRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingAddOn, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	var out []*entity.BookingAddOn
	for _, a := range r.s.addOns {
		if a.BookingID == bookingID {
			copied := *a
			out = append(out, &copied)
		}
	}
	return out, nil
}
func (r *fakeAddOnRepo) FinalizeByBookingID(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	r.s.dataMu.Lock()
	defer r.s.dataMu.Unlock()
	var n int64
	for _, a := range r.s.addOns {
		if a.BookingID == bookingID && a.Status == entity.AddOnPending {
			a.Status = entity.AddOnFinalized
			n++
		}
	}
	return n, nil
}

// ==================== FAKE GATEWAY ====================

type fakeGateway struct {
	mu     sync.Mutex
	orders int
	links  int
}

func (g *fakeGateway) CreateOrder(ctx context.Context, p payment.CreateOrderParams) (*payment.Order, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.orders++
	return &payment.Order{
		ProviderOrderID: "order_fake_1",
		Amount:          p.Amount,
		Currency:        p.Currency,
	}, nil
}

func (g *fakeGateway) CreatePaymentLink(ctx context.Context, p payment.CreateLinkParams) (*payment.Link, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.links++
	return &payment.Link{
		ID:              "plink_fake_1",
		URL:             "https://rzp.io/l/fake",
		ProviderOrderID: "order_fake_link_1",
	}, nil
}
