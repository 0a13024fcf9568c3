// Package audit provides the append-only audit event log. Every mutation in
// the engine records exactly one event here; nothing ever updates or deletes
// a row.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"leadtrack_backend/platform/db"
)

// Event is a persisted audit record.
type Event struct {
	ID         uuid.UUID
	LeadID     uuid.UUID
	ActorType  string
	ActorID    *uuid.UUID
	ActorLabel string
	EventType  string
	Payload    map[string]any
	CreatedAt  time.Time
}

// Repository persists audit events.
type Repository interface {
	Insert(ctx context.Context, event Event) (Event, error)
}

// Repo implements Repository with PostgreSQL.
type Repo struct {
	db db.Querier
}

// New creates a new audit repository.
func New(q db.Querier) *Repo {
	return &Repo{db: q}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// Insert appends one event. There is deliberately no update or delete.
func (r *Repo) Insert(ctx context.Context, event Event) (Event, error) {
	payloadJSON, err := json.Marshal(event.Payload)
	if err != nil {
		return Event{}, fmt.Errorf("marshal audit payload: %w", err)
	}

	query := `
		INSERT INTO audit_events (lead_id, actor_type, actor_id, actor_label, event_type, payload)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err = r.db.QueryRow(ctx, query,
		event.LeadID, event.ActorType, event.ActorID, event.ActorLabel,
		event.EventType, payloadJSON,
	).Scan(&event.ID, &event.CreatedAt)
	if err != nil {
		return Event{}, fmt.Errorf("insert audit event: %w", err)
	}

	return event, nil
}
