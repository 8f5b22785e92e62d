package repository

import (
	"context"
	"fmt"

	"camp-booking/internal/data/entity"
	"camp-booking/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type PromoRepository interface {
	// FindByCode matches case-insensitively.
	FindByCode(ctx context.Context, code string) (*entity.PromoCode, error)
}

type promoRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPromoRepository(db database.PgxIface, log *zap.Logger) PromoRepository {
	return &promoRepository{
		db:  db,
		log: log.With(zap.String("repository", "promo")),
	}
}

func (r *promoRepository) FindByCode(ctx context.Context, code string) (*entity.PromoCode, error) {
	query := `
		SELECT id, code, kind, value, active, valid_from, valid_until, created_at, updated_at
		FROM promo_codes
		WHERE UPPER(code) = UPPER($1)
	`

	var promo entity.PromoCode
	err := r.db.QueryRow(ctx, query, code).Scan(
		&promo.ID,
		&promo.Code,
		&promo.Kind,
		&promo.Value,
		&promo.Active,
		&promo.ValidFrom,
		&promo.ValidUntil,
		&promo.CreatedAt,
		&promo.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find promo code",
			zap.Error(err),
			zap.String("code", code),
		)
		return nil, fmt.Errorf("find promo code %s: %w", code, err)
	}

	return &promo, nil
}
