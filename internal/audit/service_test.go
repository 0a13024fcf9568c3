package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"leadtrack_backend/internal/leads/domain"
	"leadtrack_backend/platform/logger"
)

type fakeAuditRepo struct {
	inserted  []Event
	insertErr error
}

func (f *fakeAuditRepo) Insert(ctx context.Context, event Event) (Event, error) {
	if f.insertErr != nil {
		return Event{}, f.insertErr
	}
	event.ID = uuid.New()
	f.inserted = append(f.inserted, event)
	return event, nil
}

func TestAppendSystemActorPersistsWithoutActorID(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewService(repo, logger.New("test"))

	leadID := uuid.New()
	svc.Append(context.Background(), Entry{
		LeadID:    leadID,
		Actor:     domain.SystemActor(),
		EventType: EventRepAutoAssigned,
		Payload:   map[string]any{"repId": uuid.New().String()},
	})

	if len(repo.inserted) != 1 {
		t.Fatalf("expected 1 persisted event, got %d", len(repo.inserted))
	}
	got := repo.inserted[0]
	if got.ActorType != actorTypeSystem {
		t.Fatalf("actor type = %q, want %q", got.ActorType, actorTypeSystem)
	}
	if got.ActorID != nil {
		t.Fatalf("system actor must not carry an actor id, got %v", got.ActorID)
	}
	if got.ActorLabel != "system" {
		t.Fatalf("actor label = %q, want system", got.ActorLabel)
	}
	if got.LeadID != leadID {
		t.Fatalf("lead id = %v, want %v", got.LeadID, leadID)
	}
}

func TestAppendHumanActorCarriesActorID(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewService(repo, logger.New("test"))

	actorID := uuid.New()
	svc.Append(context.Background(), Entry{
		LeadID:    uuid.New(),
		Actor:     domain.HumanActor(actorID, []string{"rep"}),
		EventType: EventStatusChanged,
	})

	if len(repo.inserted) != 1 {
		t.Fatalf("expected 1 persisted event, got %d", len(repo.inserted))
	}
	got := repo.inserted[0]
	if got.ActorType != actorTypeHuman {
		t.Fatalf("actor type = %q, want %q", got.ActorType, actorTypeHuman)
	}
	if got.ActorID == nil || *got.ActorID != actorID {
		t.Fatalf("actor id = %v, want %v", got.ActorID, actorID)
	}
}

func TestAppendSwallowsRepositoryFailure(t *testing.T) {
	repo := &fakeAuditRepo{insertErr: errors.New("connection reset")}
	svc := NewService(repo, logger.New("test"))

	svc.Append(context.Background(), Entry{
		LeadID:    uuid.New(),
		Actor:     domain.SystemActor(),
		EventType: EventRepAutoAssigned,
	})

	if len(repo.inserted) != 0 {
		t.Fatalf("expected no persisted events, got %d", len(repo.inserted))
	}
}
