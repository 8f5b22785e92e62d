package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"camp-booking/internal/data/entity"
	"camp-booking/internal/data/repository"
	"camp-booking/pkg/database"
	"camp-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Fallback per nama paket kalau relasi unit type kosong.
var packageUnitTypeFallback = map[string][]string{
	"room":  {"COTTAGE", "HUT"},
	"swiss": {"SWISS TENT"},
	"tent":  {"DOME TENT"},
}

type AllocationService interface {
	// Allocate places a paid booking into units and confirms it.
	// Already-CONFIRMED bookings are a no-op.
	Allocate(ctx context.Context, bookingID uuid.UUID) error
}

type allocationService struct {
	repo *repository.Repository
	db   database.PgxIface
	log  *zap.Logger
}

func NewAllocationService(repo *repository.Repository, db database.PgxIface, log *zap.Logger) AllocationService {
	return &allocationService{
		repo: repo,
		db:   db,
		log:  log.With(zap.String("service", "allocation")),
	}
}

func (s *allocationService) Allocate(ctx context.Context, bookingID uuid.UUID) error {
	booking, err := s.repo.Booking.FindByID(ctx, bookingID)
	if err != nil {
		return fmt.Errorf("load booking for allocation: %w", err)
	}
	if booking == nil {
		return newError(KindNotFound, fmt.Sprintf("booking %s not found", bookingID.String()))
	}
	if booking.Status == entity.BookingConfirmed {
		s.log.Info("Booking already confirmed, skipping allocation",
			zap.String("booking_id", bookingID.String()),
		)
		return nil
	}
	if !booking.Status.CanTransition(entity.BookingConfirmed) {
		return newError(KindValidation,
			fmt.Sprintf("booking %s is %s and cannot be confirmed", bookingID, booking.Status))
	}

	pkg, err := s.repo.Package.FindByID(ctx, booking.PackageID)
	if err != nil {
		return fmt.Errorf("load package for allocation: %w", err)
	}
	if pkg == nil {
		return newError(KindNotFound, fmt.Sprintf("package %s not found", booking.PackageID.String()))
	}

	event, err := s.repo.Event.FindByID(ctx, booking.EventID)
	if err != nil {
		return fmt.Errorf("load event for allocation: %w", err)
	}
	if event == nil {
		return newError(KindNotFound, fmt.Sprintf("event %s not found", booking.EventID.String()))
	}

	allowedTypeIDs, err := s.resolveAllowedUnitTypes(ctx, pkg)
	if err != nil {
		return err
	}
	// Unit type yang sudah dipin di booking jadi batasan keras.
	if booking.UnitTypeID != nil {
		for _, id := range allowedTypeIDs {
			if id == *booking.UnitTypeID {
				allowedTypeIDs = []uuid.UUID{id}
				break
			}
		}
	}

	partySize := booking.PartySize()
	needs := genderNeeds(booking)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin allocation transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	free, err := s.repo.Unit.FindFreeForUpdate(ctx, tx, booking.EventID, allowedTypeIDs, booking.PropertyID)
	if err != nil {
		return err
	}

	assignments, err := selectUnits(free, partySize, needs)
	if err != nil {
		s.log.Warn("Allocation search failed",
			zap.String("booking_id", bookingID.String()),
			zap.Int("party_size", partySize),
			zap.Int("free_units", len(free)),
			zap.Error(err),
		)
		return err
	}

	now := time.Now()
	for _, a := range assignments {
		allocation := &entity.Allocation{
			BaseNoDelete: entity.BaseNoDelete{
				ID:        utils.GenerateUUID(),
				CreatedAt: now,
				UpdatedAt: now,
			},
			BookingID: booking.ID,
			UnitID:    a.unit.ID,
			Seats:     a.seats,
			Gender:    a.gender,
		}
		if err := s.repo.Allocation.CreateTx(ctx, tx, allocation); err != nil {
			return err
		}
		if err := s.repo.Unit.UpdateStatusTx(ctx, tx, a.unit.ID, entity.UnitOccupied); err != nil {
			return err
		}
	}

	first := assignments[0].unit
	booking.Status = entity.BookingConfirmed
	booking.PropertyID = &first.PropertyID
	booking.UnitTypeID = &first.UnitTypeID
	booking.ResolvedCategory = first.Category
	if booking.CheckIn == nil {
		booking.CheckIn = &event.StartDate
	}
	if booking.CheckOut == nil {
		booking.CheckOut = &event.EndDate
	}

	if err := s.repo.Booking.UpdateAllocationOutcomeTx(ctx, tx, booking); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit allocation transaction: %w", err)
	}

	s.log.Info("Booking allocated",
		zap.String("booking_id", bookingID.String()),
		zap.Int("units", len(assignments)),
		zap.Int("party_size", partySize),
	)

	return nil
}

func (s *allocationService) resolveAllowedUnitTypes(ctx context.Context, pkg *entity.Package) ([]uuid.UUID, error) {
	ids, err := s.repo.Package.FindAllowedUnitTypeIDs(ctx, pkg.ID)
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		return ids, nil
	}

	names, ok := packageUnitTypeFallback[pkg.Slug]
	if !ok {
		return nil, newError(KindConfiguration, fmt.Sprintf("package %s has no allowed unit types", pkg.Name))
	}

	unitTypes, err := s.repo.UnitType.FindByNames(ctx, names)
	if err != nil {
		return nil, err
	}
	if len(unitTypes) == 0 {
		return nil, newError(KindConfiguration, fmt.Sprintf("package %s has no allowed unit types", pkg.Name))
	}

	for _, ut := range unitTypes {
		ids = append(ids, ut.ID)
	}
	return ids, nil
}

// genderNeeds counts seats required per gender class. Members with no
// recorded gender count under the primary's class.
func genderNeeds(booking *entity.Booking) map[entity.Gender]int {
	primary := booking.PrimaryGender
	if primary == "" {
		primary = entity.GenderOther
	}

	needs := map[entity.Gender]int{primary: 1}
	for i := range booking.Companions {
		g := booking.Companions[i].Gender
		if g == "" {
			g = primary
		}
		needs[g]++
	}

	extras := booking.PartySize() - 1 - len(booking.Companions)
	if extras > 0 {
		needs[primary] += extras
	}

	return needs
}

// ==================== UNIT SELECTION ====================

type unitAssignment struct {
	unit   *entity.FreeUnit
	seats  int
	gender entity.Gender
}

type cluster struct {
	propertyID uuid.UUID
	unitTypeID uuid.UUID
	units      []*entity.FreeUnit
}

// selectUnits picks units for a party from the locked free pool. One
// unit covering the whole party is a mixed fit; otherwise the party
// splits across units, one gender class per unit. Clusters of
// (property, unit type) are tried in pool order before a global
// cross-cluster search.
func selectUnits(free []*entity.FreeUnit, partySize int, needs map[entity.Gender]int) ([]unitAssignment, error) {
	if partySize < 1 {
		partySize = 1
	}

	for _, c := range clustersOf(free) {
		if assignments := tryPool(c.units, partySize, needs); assignments != nil {
			return assignments, nil
		}
	}

	if assignments := tryPool(free, partySize, needs); assignments != nil {
		return assignments, nil
	}

	total := 0
	for _, u := range free {
		total += u.Capacity
	}
	if total < partySize {
		return nil, newError(KindCapacity, fmt.Sprintf("need %d seats, only %d free", partySize, total))
	}
	return nil, newError(KindGenderSplit, fmt.Sprintf("no single-gender split fits %d seats", partySize))
}

func clustersOf(free []*entity.FreeUnit) []*cluster {
	var clusters []*cluster
	index := map[[2]uuid.UUID]*cluster{}
	for _, u := range free {
		key := [2]uuid.UUID{u.PropertyID, u.UnitTypeID}
		c, ok := index[key]
		if !ok {
			c = &cluster{propertyID: u.PropertyID, unitTypeID: u.UnitTypeID}
			index[key] = c
			clusters = append(clusters, c)
		}
		c.units = append(c.units, u)
	}
	return clusters
}

// tryPool attempts a single-unit mixed fit, then a gendered split.
// Returns nil when the pool cannot seat the party.
func tryPool(units []*entity.FreeUnit, partySize int, needs map[entity.Gender]int) []unitAssignment {
	// Satu unit cukup untuk semua: gender diabaikan. Pilih unit pas
	// terkecil supaya unit besar tersisa untuk rombongan lain.
	var best *entity.FreeUnit
	for _, u := range units {
		if u.Capacity < partySize {
			continue
		}
		if best == nil || u.Capacity < best.Capacity {
			best = u
		}
	}
	if best != nil {
		return []unitAssignment{{unit: best, seats: partySize}}
	}

	return tryGenderedSplit(units, needs)
}

// tryGenderedSplit seats each gender class whole into its own unit:
// classes by descending need, each taking the largest unused unit. A
// class never spans units, so a class bigger than the largest free
// unit fails the whole split.
func tryGenderedSplit(units []*entity.FreeUnit, needs map[entity.Gender]int) []unitAssignment {
	type classNeed struct {
		gender entity.Gender
		need   int
	}

	classes := make([]classNeed, 0, len(needs))
	for g, n := range needs {
		if n > 0 {
			classes = append(classes, classNeed{gender: g, need: n})
		}
	}
	if len(classes) == 0 {
		return nil
	}
	sort.SliceStable(classes, func(i, j int) bool {
		if classes[i].need != classes[j].need {
			return classes[i].need > classes[j].need
		}
		return classes[i].gender < classes[j].gender
	})

	pool := make([]*entity.FreeUnit, len(units))
	copy(pool, units)
	sort.SliceStable(pool, func(i, j int) bool {
		return pool[i].Capacity > pool[j].Capacity
	})

	var assignments []unitAssignment
	used := map[uuid.UUID]bool{}

	for _, c := range classes {
		var chosen *entity.FreeUnit
		for _, u := range pool {
			if !used[u.ID] && u.Capacity >= c.need {
				chosen = u
				break
			}
		}
		if chosen == nil {
			return nil
		}
		used[chosen.ID] = true
		assignments = append(assignments, unitAssignment{unit: chosen, seats: c.need, gender: c.gender})
	}

	return assignments
}
