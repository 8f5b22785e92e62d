package repository

import (
	"context"
	"fmt"

	"camp-booking/internal/data/entity"
	"camp-booking/pkg/database"

	"go.uber.org/zap"
)

type WebhookEventRepository interface {
	Create(ctx context.Context, event *entity.WebhookEvent) error
	UpdateOutcome(ctx context.Context, event *entity.WebhookEvent) error
}

type webhookEventRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWebhookEventRepository(db database.PgxIface, log *zap.Logger) WebhookEventRepository {
	return &webhookEventRepository{
		db:  db,
		log: log.With(zap.String("repository", "webhook_event")),
	}
}

func (r *webhookEventRepository) Create(ctx context.Context, event *entity.WebhookEvent) error {
	query := `
		INSERT INTO webhook_events (id, provider, event, signature, remote_addr, raw_body,
			matched_order_id, processed_ok, error, processed_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.Exec(ctx, query,
		event.ID,
		event.Provider,
		event.Event,
		event.Signature,
		event.RemoteAddr,
		event.RawBody,
		event.MatchedOrderID,
		event.ProcessedOK,
		event.Error,
		event.ProcessedAt,
		event.CreatedAt,
		event.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to persist webhook event",
			zap.Error(err),
			zap.String("webhook_event_id", event.ID.String()),
			zap.String("event", event.Event),
		)
		return fmt.Errorf("persist webhook event %s: %w", event.ID.String(), err)
	}

	return nil
}

func (r *webhookEventRepository) UpdateOutcome(ctx context.Context, event *entity.WebhookEvent) error {
	query := `
		UPDATE webhook_events
		SET matched_order_id = $2, processed_ok = $3, error = $4, processed_at = $5, updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		event.ID,
		event.MatchedOrderID,
		event.ProcessedOK,
		event.Error,
		event.ProcessedAt,
	)

	if err != nil {
		r.log.Error("Failed to update webhook event outcome",
			zap.Error(err),
			zap.String("webhook_event_id", event.ID.String()),
		)
		return fmt.Errorf("update webhook event %s: %w", event.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("webhook event %s not found", event.ID.String())
	}

	return nil
}
