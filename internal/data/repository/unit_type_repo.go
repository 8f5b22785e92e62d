package repository

import (
	"context"
	"fmt"
	"strings"

	"camp-booking/internal/data/entity"
	"camp-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type UnitTypeRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.UnitType, error)
	FindByNames(ctx context.Context, names []string) ([]*entity.UnitType, error)
	FindAll(ctx context.Context) ([]*entity.UnitType, error)
}

type unitTypeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewUnitTypeRepository(db database.PgxIface, log *zap.Logger) UnitTypeRepository {
	return &unitTypeRepository{
		db:  db,
		log: log.With(zap.String("repository", "unit_type")),
	}
}

func (r *unitTypeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.UnitType, error) {
	query := `
		SELECT id, name, code, created_at, updated_at
		FROM unit_types
		WHERE id = $1
	`

	var unitType entity.UnitType
	err := r.db.QueryRow(ctx, query, id).Scan(
		&unitType.ID,
		&unitType.Name,
		&unitType.Code,
		&unitType.CreatedAt,
		&unitType.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find unit type by ID",
			zap.Error(err),
			zap.String("unit_type_id", id.String()),
		)
		return nil, fmt.Errorf("find unit type by ID %s: %w", id.String(), err)
	}

	return &unitType, nil
}

func (r *unitTypeRepository) FindByNames(ctx context.Context, names []string) ([]*entity.UnitType, error) {
	query := `
		SELECT id, name, code, created_at, updated_at
		FROM unit_types
		WHERE UPPER(name) = ANY($1)
	`

	upper := make([]string, 0, len(names))
	for _, n := range names {
		upper = append(upper, strings.ToUpper(n))
	}

	rows, err := r.db.Query(ctx, query, upper)
	if err != nil {
		r.log.Error("Failed to find unit types by names",
			zap.Error(err),
			zap.Strings("names", names),
		)
		return nil, fmt.Errorf("find unit types by names: %w", err)
	}
	defer rows.Close()

	return scanUnitTypes(rows)
}

func (r *unitTypeRepository) FindAll(ctx context.Context) ([]*entity.UnitType, error) {
	query := `
		SELECT id, name, code, created_at, updated_at
		FROM unit_types
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find unit types", zap.Error(err))
		return nil, fmt.Errorf("find unit types: %w", err)
	}
	defer rows.Close()

	return scanUnitTypes(rows)
}

func scanUnitTypes(rows pgx.Rows) ([]*entity.UnitType, error) {
	var unitTypes []*entity.UnitType
	for rows.Next() {
		var unitType entity.UnitType
		err := rows.Scan(
			&unitType.ID,
			&unitType.Name,
			&unitType.Code,
			&unitType.CreatedAt,
			&unitType.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan unit type row: %w", err)
		}
		unitTypes = append(unitTypes, &unitType)
	}
	return unitTypes, nil
}
