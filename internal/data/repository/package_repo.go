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

type PackageRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Package, error)
	FindActiveByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.Package, error)

	// FindAllowedUnitTypeIDs resolves the package's allowed unit types
	// from the package_unit_types relation.
	FindAllowedUnitTypeIDs(ctx context.Context, packageID uuid.UUID) ([]uuid.UUID, error)
}

type packageRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPackageRepository(db database.PgxIface, log *zap.Logger) PackageRepository {
	return &packageRepository{
		db:  db,
		log: log.With(zap.String("repository", "package")),
	}
}

const packageColumns = `id, event_id, name, slug, description, base_includes, base_price, extra_adult_price,
		child_free_max_age, child_half_max_age, child_half_multiplier, active, created_at, updated_at`

func scanPackage(row pgx.Row) (*entity.Package, error) {
	var p entity.Package
	err := row.Scan(
		&p.ID,
		&p.EventID,
		&p.Name,
		&p.Slug,
		&p.Description,
		&p.BaseIncludes,
		&p.BasePrice,
		&p.ExtraAdultPrice,
		&p.ChildFreeMaxAge,
		&p.ChildHalfMaxAge,
		&p.ChildHalfMultiplier,
		&p.Active,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *packageRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Package, error) {
	query := `SELECT ` + packageColumns + ` FROM packages WHERE id = $1`

	pkg, err := scanPackage(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find package by ID",
			zap.Error(err),
			zap.String("package_id", id.String()),
		)
		return nil, fmt.Errorf("find package by ID %s: %w", id.String(), err)
	}

	return pkg, nil
}

func (r *packageRepository) FindActiveByEventID(ctx context.Context, eventID uuid.UUID) ([]*entity.Package, error) {
	query := `
		SELECT ` + packageColumns + `
		FROM packages
		WHERE event_id = $1 AND active = TRUE
		ORDER BY base_price
	`

	rows, err := r.db.Query(ctx, query, eventID)
	if err != nil {
		r.log.Error("Failed to find packages by event ID",
			zap.Error(err),
			zap.String("event_id", eventID.String()),
		)
		return nil, fmt.Errorf("find packages by event ID %s: %w", eventID.String(), err)
	}
	defer rows.Close()

	var packages []*entity.Package
	for rows.Next() {
		pkg, err := scanPackage(rows)
		if err != nil {
			r.log.Error("Failed to scan package row", zap.Error(err))
			return nil, fmt.Errorf("scan package row: %w", err)
		}
		packages = append(packages, pkg)
	}

	return packages, nil
}

func (r *packageRepository) FindAllowedUnitTypeIDs(ctx context.Context, packageID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT unit_type_id
		FROM package_unit_types
		WHERE package_id = $1
	`

	rows, err := r.db.Query(ctx, query, packageID)
	if err != nil {
		r.log.Error("Failed to find allowed unit types",
			zap.Error(err),
			zap.String("package_id", packageID.String()),
		)
		return nil, fmt.Errorf("find allowed unit types for package %s: %w", packageID.String(), err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			r.log.Error("Failed to scan unit type ID", zap.Error(err))
			return nil, fmt.Errorf("scan unit type ID: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
