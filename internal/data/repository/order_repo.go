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

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindByProviderOrderID(ctx context.Context, providerOrderID string) (*entity.Order, error)
	FindByReference(ctx context.Context, reference string) (*entity.Order, error)
	FindOpenByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Order, error)

	// MarkPaid stamps the paid flag only if it is not already set and
	// reports whether this call made the transition.
	MarkPaid(ctx context.Context, orderID uuid.UUID, providerPaymentID string) (bool, error)
	AddPayment(ctx context.Context, orderID uuid.UUID, providerPaymentID string, amount int64) error
}

type orderRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewOrderRepository(db database.PgxIface, log *zap.Logger) OrderRepository {
	return &orderRepository{
		db:  db,
		log: log.With(zap.String("repository", "order")),
	}
}

const orderColumns = `id, booking_id, reference, provider_order_id, provider_payment_id,
		amount, amount_paid, currency, paid, paid_at, payment_link_url, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	err := row.Scan(
		&o.ID,
		&o.BookingID,
		&o.Reference,
		&o.ProviderOrderID,
		&o.ProviderPaymentID,
		&o.Amount,
		&o.AmountPaid,
		&o.Currency,
		&o.Paid,
		&o.PaidAt,
		&o.PaymentLinkURL,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO orders (id, booking_id, reference, provider_order_id, provider_payment_id,
			amount, amount_paid, currency, paid, paid_at, payment_link_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		order.ID,
		order.BookingID,
		order.Reference,
		order.ProviderOrderID,
		order.ProviderPaymentID,
		order.Amount,
		order.AmountPaid,
		order.Currency,
		order.Paid,
		order.PaidAt,
		order.PaymentLinkURL,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create order",
			zap.Error(err),
			zap.String("order_id", order.ID.String()),
			zap.String("reference", order.Reference),
		)
		return fmt.Errorf("create order %s: %w", order.Reference, err)
	}

	return nil
}

func (r *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by ID",
			zap.Error(err),
			zap.String("order_id", id.String()),
		)
		return nil, fmt.Errorf("find order by ID %s: %w", id.String(), err)
	}

	return order, nil
}

func (r *orderRepository) FindByProviderOrderID(ctx context.Context, providerOrderID string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE provider_order_id = $1`

	order, err := scanOrder(r.db.QueryRow(ctx, query, providerOrderID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by provider order ID",
			zap.Error(err),
			zap.String("provider_order_id", providerOrderID),
		)
		return nil, fmt.Errorf("find order by provider order ID %s: %w", providerOrderID, err)
	}

	return order, nil
}

func (r *orderRepository) FindByReference(ctx context.Context, reference string) (*entity.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE reference = $1`

	order, err := scanOrder(r.db.QueryRow(ctx, query, reference))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find order by reference",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return nil, fmt.Errorf("find order by reference %s: %w", reference, err)
	}

	return order, nil
}

func (r *orderRepository) FindOpenByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE booking_id = $1 AND paid = FALSE
		ORDER BY created_at DESC
		LIMIT 1
	`

	order, err := scanOrder(r.db.QueryRow(ctx, query, bookingID))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find open order by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find open order by booking ID %s: %w", bookingID.String(), err)
	}

	return order, nil
}

func (r *orderRepository) MarkPaid(ctx context.Context, orderID uuid.UUID, providerPaymentID string) (bool, error) {
	query := `
		UPDATE orders
		SET paid = TRUE, provider_payment_id = $2, paid_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND paid = FALSE
	`

	result, err := r.db.Exec(ctx, query, orderID, providerPaymentID)
	if err != nil {
		r.log.Error("Failed to mark order paid",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
		)
		return false, fmt.Errorf("mark order %s paid: %w", orderID.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *orderRepository) AddPayment(ctx context.Context, orderID uuid.UUID, providerPaymentID string, amount int64) error {
	query := `
		UPDATE orders
		SET amount_paid = amount_paid + $3, provider_payment_id = $2, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query, orderID, providerPaymentID, amount)
	if err != nil {
		r.log.Error("Failed to add payment to order",
			zap.Error(err),
			zap.String("order_id", orderID.String()),
			zap.Int64("amount", amount),
		)
		return fmt.Errorf("add payment to order %s: %w", orderID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("order %s not found", orderID.String())
	}

	return nil
}
