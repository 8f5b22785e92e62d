package repository

import (
	"context"
	"fmt"

	"camp-booking/internal/data/entity"
	"camp-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AllocationRepository interface {
	CreateTx(ctx context.Context, tx database.Tx, allocation *entity.Allocation) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Allocation, error)
}

type allocationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAllocationRepository(db database.PgxIface, log *zap.Logger) AllocationRepository {
	return &allocationRepository{
		db:  db,
		log: log.With(zap.String("repository", "allocation")),
	}
}

func (r *allocationRepository) CreateTx(ctx context.Context, tx database.Tx, allocation *entity.Allocation) error {
	query := `
		INSERT INTO allocations (id, booking_id, unit_id, seats, gender, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := tx.Exec(ctx, query,
		allocation.ID,
		allocation.BookingID,
		allocation.UnitID,
		allocation.Seats,
		allocation.Gender,
		allocation.CreatedAt,
		allocation.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create allocation",
			zap.Error(err),
			zap.String("booking_id", allocation.BookingID.String()),
			zap.String("unit_id", allocation.UnitID.String()),
		)
		return fmt.Errorf("create allocation for booking %s: %w", allocation.BookingID.String(), err)
	}

	return nil
}

func (r *allocationRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Allocation, error) {
	query := `
		SELECT id, booking_id, unit_id, seats, gender, created_at, updated_at
		FROM allocations
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find allocations by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find allocations by booking ID %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var allocations []*entity.Allocation
	for rows.Next() {
		var allocation entity.Allocation
		err := rows.Scan(
			&allocation.ID,
			&allocation.BookingID,
			&allocation.UnitID,
			&allocation.Seats,
			&allocation.Gender,
			&allocation.CreatedAt,
			&allocation.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan allocation row", zap.Error(err))
			return nil, fmt.Errorf("scan allocation row: %w", err)
		}
		allocations = append(allocations, &allocation)
	}

	return allocations, nil
}
