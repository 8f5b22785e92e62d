package entity

import (
	"time"

	"github.com/google/uuid"
)

// WebhookEvent is the verbatim record of one inbound provider
// notification, persisted before any validation runs.
type WebhookEvent struct {
	BaseNoDelete
	Provider       string     `db:"provider"`
	Event          string     `db:"event"`
	Signature      string     `db:"signature"`
	RemoteAddr     string     `db:"remote_addr"`
	RawBody        []byte     `db:"raw_body"`
	MatchedOrderID *uuid.UUID `db:"matched_order_id"`
	ProcessedOK    bool       `db:"processed_ok"`
	Error          string     `db:"error"`
	ProcessedAt    *time.Time `db:"processed_at"`
}
