package audit

import (
	"context"

	"github.com/google/uuid"

	"leadtrack_backend/internal/leads/domain"
	"leadtrack_backend/platform/logger"
)

// Event type names recorded by the engine.
const (
	EventRepAssigned     = "rep_assigned"
	EventRepAutoAssigned = "rep_auto_assigned"
	EventStatusChanged   = "status_changed"
	EventJobCreated      = "job_created"
	EventStageAdvanced   = "stage_advanced"
)

// Actor type labels stored on audit rows.
const (
	actorTypeHuman  = "human"
	actorTypeSystem = "system"
)

// Entry is what callers hand to Append.
type Entry struct {
	LeadID    uuid.UUID
	Actor     domain.Actor
	EventType string
	Payload   map[string]any
}

// Service appends audit events. Append is fire-and-forget: a failed write is
// logged and swallowed so it can never fail the mutation that produced it.
type Service struct {
	repo Repository
	log  *logger.Logger
}

// NewService creates the audit service.
func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Append records one audit event for a completed mutation.
func (s *Service) Append(ctx context.Context, entry Entry) {
	event := Event{
		LeadID:     entry.LeadID,
		ActorLabel: entry.Actor.Label,
		EventType:  entry.EventType,
		Payload:    entry.Payload,
	}

	if entry.Actor.IsSystem() {
		event.ActorType = actorTypeSystem
	} else {
		event.ActorType = actorTypeHuman
		actorID := entry.Actor.ID
		event.ActorID = &actorID
	}

	if _, err := s.repo.Insert(ctx, event); err != nil {
		s.log.AuditWriteFailed(entry.EventType, entry.LeadID.String(), err)
	}
}
