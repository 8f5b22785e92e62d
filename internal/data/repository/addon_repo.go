package repository

import (
	"context"
	"fmt"

	"camp-booking/internal/data/entity"
	"camp-booking/pkg/database"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AddOnRepository interface {
	CreateBatch(ctx context.Context, addOns []*entity.BookingAddOn) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingAddOn, error)
	FinalizeByBookingID(ctx context.Context, bookingID uuid.UUID) (int64, error)
}

type addOnRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAddOnRepository(db database.PgxIface, log *zap.Logger) AddOnRepository {
	return &addOnRepository{
		db:  db,
		log: log.With(zap.String("repository", "addon")),
	}
}

func (r *addOnRepository) CreateBatch(ctx context.Context, addOns []*entity.BookingAddOn) error {
	query := `
		INSERT INTO booking_addons (id, booking_id, name, quantity, amount, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for _, addOn := range addOns {
		_, err := r.db.Exec(ctx, query,
			addOn.ID,
			addOn.BookingID,
			addOn.Name,
			addOn.Quantity,
			addOn.Amount,
			addOn.Status,
			addOn.CreatedAt,
			addOn.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to create booking add-on",
				zap.Error(err),
				zap.String("booking_id", addOn.BookingID.String()),
				zap.String("name", addOn.Name),
			)
			return fmt.Errorf("create add-on %s for booking %s: %w", addOn.Name, addOn.BookingID.String(), err)
		}
	}

	return nil
}

func (r *addOnRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.BookingAddOn, error) {
	query := `
		SELECT id, booking_id, name, quantity, amount, status, created_at, updated_at
		FROM booking_addons
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find add-ons by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find add-ons by booking ID %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var addOns []*entity.BookingAddOn
	for rows.Next() {
		var addOn entity.BookingAddOn
		err := rows.Scan(
			&addOn.ID,
			&addOn.BookingID,
			&addOn.Name,
			&addOn.Quantity,
			&addOn.Amount,
			&addOn.Status,
			&addOn.CreatedAt,
			&addOn.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan add-on row", zap.Error(err))
			return nil, fmt.Errorf("scan add-on row: %w", err)
		}
		addOns = append(addOns, &addOn)
	}

	return addOns, nil
}

func (r *addOnRepository) FinalizeByBookingID(ctx context.Context, bookingID uuid.UUID) (int64, error) {
	query := `
		UPDATE booking_addons
		SET status = 'FINALIZED', updated_at = NOW()
		WHERE booking_id = $1 AND status = 'PENDING'
	`

	result, err := r.db.Exec(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to finalize add-ons",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return 0, fmt.Errorf("finalize add-ons for booking %s: %w", bookingID.String(), err)
	}

	return result.RowsAffected(), nil
}
