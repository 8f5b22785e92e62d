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

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error

	// UpdatePricingSnapshot rewrites the priced figures; safe to call
	// repeatedly while the booking is still pending.
	UpdatePricingSnapshot(ctx context.Context, booking *entity.Booking) error

	// UpdateAllocationOutcomeTx writes the resolved placement and the
	// CONFIRMED status inside the allocation transaction.
	UpdateAllocationOutcomeTx(ctx context.Context, tx database.Tx, booking *entity.Booking) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, user_id, event_id, package_id, status,
		primary_name, primary_gender, primary_age, primary_phone, primary_email,
		emergency_name, emergency_phone, companions, guest_ages, guest_count,
		pricing, promo, fee, total_amount, payable_amount,
		property_id, unit_type_id, resolved_category, check_in, check_out,
		created_at, updated_at, deleted_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.UserID,
		&b.EventID,
		&b.PackageID,
		&b.Status,
		&b.PrimaryName,
		&b.PrimaryGender,
		&b.PrimaryAge,
		&b.PrimaryPhone,
		&b.PrimaryEmail,
		&b.EmergencyName,
		&b.EmergencyPhone,
		&b.Companions,
		&b.GuestAges,
		&b.GuestCount,
		&b.Pricing,
		&b.Promo,
		&b.Fee,
		&b.TotalAmount,
		&b.PayableAmount,
		&b.PropertyID,
		&b.UnitTypeID,
		&b.ResolvedCategory,
		&b.CheckIn,
		&b.CheckOut,
		&b.CreatedAt,
		&b.UpdatedAt,
		&b.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, user_id, event_id, package_id, status,
			primary_name, primary_gender, primary_age, primary_phone, primary_email,
			emergency_name, emergency_phone, companions, guest_ages, guest_count,
			pricing, promo, fee, total_amount, payable_amount,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.UserID,
		booking.EventID,
		booking.PackageID,
		booking.Status,
		booking.PrimaryName,
		booking.PrimaryGender,
		booking.PrimaryAge,
		booking.PrimaryPhone,
		booking.PrimaryEmail,
		booking.EmergencyName,
		booking.EmergencyPhone,
		booking.Companions,
		booking.GuestAges,
		booking.GuestCount,
		booking.Pricing,
		booking.Promo,
		booking.Fee,
		booking.TotalAmount,
		booking.PayableAmount,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.ID.String(), err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1 AND deleted_at IS NULL`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1 AND deleted_at IS NULL`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) UpdatePricingSnapshot(ctx context.Context, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET pricing = $2, promo = $3, fee = $4, total_amount = $5, payable_amount = $6,
		    guest_count = $7, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.Pricing,
		booking.Promo,
		booking.Fee,
		booking.TotalAmount,
		booking.PayableAmount,
		booking.GuestCount,
	)

	if err != nil {
		r.log.Error("Failed to update pricing snapshot",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("update pricing snapshot for booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	return nil
}

func (r *bookingRepository) UpdateAllocationOutcomeTx(ctx context.Context, tx database.Tx, booking *entity.Booking) error {
	query := `
		UPDATE bookings
		SET status = $2, property_id = $3, unit_type_id = $4, resolved_category = $5,
		    check_in = $6, check_out = $7, updated_at = NOW()
		WHERE id = $1
	`

	result, err := tx.Exec(ctx, query,
		booking.ID,
		booking.Status,
		booking.PropertyID,
		booking.UnitTypeID,
		booking.ResolvedCategory,
		booking.CheckIn,
		booking.CheckOut,
	)

	if err != nil {
		r.log.Error("Failed to write allocation outcome",
			zap.Error(err),
			zap.String("booking_id", booking.ID.String()),
		)
		return fmt.Errorf("write allocation outcome for booking %s: %w", booking.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", booking.ID.String())
	}

	return nil
}
