package repository

import (
	"context"
	"fmt"

	"camp-booking/internal/data/entity"
	"camp-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UnitRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Unit, error)

	// FindFreeForUpdate locks and returns every AVAILABLE unit of the
	// allowed types that is not held by a live booking of the event.
	// Preferred-property units sort first, then larger units first.
	// Must run inside the allocation transaction.
	FindFreeForUpdate(ctx context.Context, tx database.Tx, eventID uuid.UUID, allowedTypeIDs []uuid.UUID, preferredPropertyID *uuid.UUID) ([]*entity.FreeUnit, error)

	UpdateStatusTx(ctx context.Context, tx database.Tx, unitID uuid.UUID, status entity.UnitStatus) error
	AvailabilitySummary(ctx context.Context, eventID uuid.UUID) ([]*AvailabilityRow, error)
}

// AvailabilityRow aggregates free capacity per (property, unit type).
type AvailabilityRow struct {
	PropertyID   uuid.UUID
	PropertyName string
	UnitTypeID   uuid.UUID
	UnitTypeName string
	FreeUnits    int
	FreeCapacity int
}

type unitRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUnitRepository(db database.PgxIface, log *zap.Logger) UnitRepository {
	return &unitRepository{
		db:  db,
		log: log.With(zap.String("repository", "unit")),
	}
}

func (r *unitRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Unit, error) {
	query := `
		SELECT id, property_id, unit_type_id, name, category, capacity, status, notes, created_at, updated_at
		FROM units
		WHERE id = $1
	`

	var unit entity.Unit
	err := r.db.QueryRow(ctx, query, id).Scan(
		&unit.ID,
		&unit.PropertyID,
		&unit.UnitTypeID,
		&unit.Name,
		&unit.Category,
		&unit.Capacity,
		&unit.Status,
		&unit.Notes,
		&unit.CreatedAt,
		&unit.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find unit by ID",
			zap.Error(err),
			zap.String("unit_id", id.String()),
		)
		return nil, fmt.Errorf("find unit by ID %s: %w", id.String(), err)
	}

	return &unit, nil
}

func (r *unitRepository) FindFreeForUpdate(ctx context.Context, tx database.Tx, eventID uuid.UUID, allowedTypeIDs []uuid.UUID, preferredPropertyID *uuid.UUID) ([]*entity.FreeUnit, error) {
	// Taken-set dihitung ulang dari baris alokasi yang sudah commit,
	// bukan dari cache; FOR UPDATE OF u menserialisasi pemilihan unit.
	query := `
		SELECT u.id, u.property_id, p.name, u.unit_type_id, ut.name, u.name, u.category, u.capacity
		FROM units u
		JOIN properties p ON p.id = u.property_id
		JOIN unit_types ut ON ut.id = u.unit_type_id
		WHERE u.status = 'AVAILABLE'
		  AND u.unit_type_id = ANY($1)
		  AND NOT EXISTS (
			SELECT 1
			FROM allocations a
			JOIN bookings b ON b.id = a.booking_id
			WHERE a.unit_id = u.id
			  AND b.event_id = $2
			  AND b.status IN ('PENDING_PAYMENT', 'PARTIAL', 'CONFIRMED')
		  )
		ORDER BY
			CASE WHEN $3::uuid IS NOT NULL AND u.property_id = $3::uuid THEN 0 ELSE 1 END,
			u.capacity DESC,
			u.name
		FOR UPDATE OF u
	`

	rows, err := tx.Query(ctx, query, allowedTypeIDs, eventID, preferredPropertyID)
	if err != nil {
		r.log.Error("Failed to lock free units",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return nil, fmt.Errorf("lock free units for event %s: %w", eventID.String(), err)
	}
	defer rows.Close()

	var units []*entity.FreeUnit
	for rows.Next() {
		var unit entity.FreeUnit
		err := rows.Scan(
			&unit.ID,
			&unit.PropertyID,
			&unit.PropertyName,
			&unit.UnitTypeID,
			&unit.UnitTypeName,
			&unit.Name,
			&unit.Category,
			&unit.Capacity,
		)
		if err != nil {
			r.log.Error("Failed to scan free unit row", zap.Error(err))
			return nil, fmt.Errorf("scan free unit row: %w", err)
		}
		units = append(units, &unit)
	}

	return units, nil
}

func (r *unitRepository) UpdateStatusTx(ctx context.Context, tx database.Tx, unitID uuid.UUID, status entity.UnitStatus) error {
	query := `UPDATE units SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := tx.Exec(ctx, query, unitID, status)
	if err != nil {
		r.log.Error("Failed to update unit status",
			zap.Error(err),
			zap.String("unit_id", unitID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update unit %s status to %s: %w", unitID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("unit %s not found", unitID.String())
	}

	return nil
}

func (r *unitRepository) AvailabilitySummary(ctx context.Context, eventID uuid.UUID) ([]*AvailabilityRow, error) {
	query := `
		SELECT u.property_id, p.name, u.unit_type_id, ut.name, COUNT(*), COALESCE(SUM(u.capacity), 0)
		FROM units u
		JOIN properties p ON p.id = u.property_id
		JOIN unit_types ut ON ut.id = u.unit_type_id
		WHERE u.status = 'AVAILABLE'
		  AND NOT EXISTS (
			SELECT 1
			FROM allocations a
			JOIN bookings b ON b.id = a.booking_id
			WHERE a.unit_id = u.id
			  AND b.event_id = $1
			  AND b.status IN ('PENDING_PAYMENT', 'PARTIAL', 'CONFIRMED')
		  )
		GROUP BY u.property_id, p.name, u.unit_type_id, ut.name
		ORDER BY p.name, ut.name
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		r.log.Error("Failed to summarize availability",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return nil, fmt.Errorf("summarize availability for event %s: %w", eventID.String(), err)
	}
	defer rows.Close()

	var summary []*AvailabilityRow
	for rows.Next() {
		var row AvailabilityRow
		err := rows.Scan(
			&row.PropertyID,
			&row.PropertyName,
			&row.UnitTypeID,
			&row.UnitTypeName,
			&row.FreeUnits,
			&row.FreeCapacity,
		)
		if err != nil {
			r.log.Error("Failed to scan availability row", zap.Error(err))
			return nil, fmt.Errorf("scan availability row: %w", err)
		}
		summary = append(summary, &row)
	}

	return summary, nil
}
