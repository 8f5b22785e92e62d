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

type EventRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Event, error)
	FindActive(ctx context.Context) (*entity.Event, error)
}

type eventRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewEventRepository(db database.PgxIface, log *zap.Logger) EventRepository {
	return &eventRepository{
		db:  db,
		log: log.With(zap.String("repository", "event")),
	}
}

const eventColumns = `id, name, slug, year, start_date, end_date, location, description, active, booking_open, created_at, updated_at`

func scanEvent(row pgx.Row) (*entity.Event, error) {
	var e entity.Event
	err := row.Scan(
		&e.ID,
		&e.Name,
		&e.Slug,
		&e.Year,
		&e.StartDate,
		&e.EndDate,
		&e.Location,
		&e.Description,
		&e.Active,
		&e.BookingOpen,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find event by ID",
			zap.Error(err),
			zap.String("event_id", id.String()),
		)
		return nil, fmt.Errorf("find event by ID %s: %w", id.String(), err)
	}

	return event, nil
}

func (r *eventRepository) FindBySlug(ctx context.Context, slug string) (*entity.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE slug = $1`

	event, err := scanEvent(r.db.QueryRow(ctx, query, slug))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find event by slug",
			zap.Error(err),
			zap.String("slug", slug),
		)
		return nil, fmt.Errorf("find event by slug %s: %w", slug, err)
	}

	return event, nil
}

func (r *eventRepository) FindActive(ctx context.Context) (*entity.Event, error) {
	query := `
		SELECT ` + eventColumns + `
		FROM events
		WHERE active = TRUE
		ORDER BY start_date DESC
		LIMIT 1
	`

	event, err := scanEvent(r.db.QueryRow(ctx, query))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find active event", zap.Error(err))
		return nil, fmt.Errorf("find active event: %w", err)
	}

	return event, nil
}
