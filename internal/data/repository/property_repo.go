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

type PropertyRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error)
	FindAll(ctx context.Context) ([]*entity.Property, error)
}

type propertyRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPropertyRepository(db database.PgxIface, log *zap.Logger) PropertyRepository {
	return &propertyRepository{
		db:  db,
		log: log.With(zap.String("repository", "property")),
	}
}

func (r *propertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	query := `
		SELECT id, name, slug, address, created_at, updated_at
		FROM properties
		WHERE id = $1
	`

	var property entity.Property
	err := r.db.QueryRow(ctx, query, id).Scan(
		&property.ID,
		&property.Name,
		&property.Slug,
		&property.Address,
		&property.CreatedAt,
		&property.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find property by ID",
			zap.Error(err),
			zap.String("property_id", id.String()),
		)
		return nil, fmt.Errorf("find property by ID %s: %w", id.String(), err)
	}

	return &property, nil
}

func (r *propertyRepository) FindAll(ctx context.Context) ([]*entity.Property, error) {
	query := `
		SELECT id, name, slug, address, created_at, updated_at
		FROM properties
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find properties", zap.Error(err))
		return nil, fmt.Errorf("find properties: %w", err)
	}
	defer rows.Close()

	var properties []*entity.Property
	for rows.Next() {
		var property entity.Property
		err := rows.Scan(
			&property.ID,
			&property.Name,
			&property.Slug,
			&property.Address,
			&property.CreatedAt,
			&property.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan property row", zap.Error(err))
			return nil, fmt.Errorf("scan property row: %w", err)
		}
		properties = append(properties, &property)
	}

	return properties, nil
}
