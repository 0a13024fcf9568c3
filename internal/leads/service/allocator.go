package service

import (
	"context"

	"github.com/google/uuid"

	"leadtrack_backend/internal/audit"
	"leadtrack_backend/internal/events"
	"leadtrack_backend/internal/leads/domain"
	"leadtrack_backend/internal/leads/ports"
	"leadtrack_backend/internal/leads/repository"
	"leadtrack_backend/platform/apperr"
)

// Assign picks a representative for an unassigned lead. The whole
// read-decide-write sequence runs under the lead's row lock, so two
// concurrent calls serialize and the loser observes the winner's result.
// Re-invoking on an already assigned lead returns the existing representative
// without writing anything, including audit events.
func (s *Service) Assign(ctx context.Context, leadID uuid.UUID, actor domain.Actor) (uuid.UUID, error) {
	if !actor.IsSystem() && !actor.Elevated() {
		return uuid.Nil, apperr.Unauthorized("assigning leads requires an owner or admin role")
	}

	var (
		assigned uuid.UUID
		existing bool
		advanced bool
	)

	err := s.locker.WithLeadLock(ctx, leadID, func(ctx context.Context, lead repository.Lead, ops ports.ConversionOps) error {
		if lead.AssignedRepID != nil {
			assigned = *lead.AssignedRepID
			existing = true
			return nil
		}

		candidates, err := s.reps.ListCandidates(ctx)
		if err != nil {
			return err
		}

		repID, ok := selectCandidate(candidates)
		if !ok {
			return apperr.Unavailable("no representative available for assignment")
		}

		advanced = lead.Status == domain.StatusNew
		if err := ops.SetAssignment(ctx, repID, actor.Label, advanced); err != nil {
			return err
		}

		assigned = repID
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	if existing {
		return assigned, nil
	}

	eventType := audit.EventRepAssigned
	if actor.IsSystem() {
		eventType = audit.EventRepAutoAssigned
	}
	payload := map[string]any{"repId": assigned.String()}
	if advanced {
		payload["statusAdvancedTo"] = domain.StatusAssigned.String()
	}
	s.audit.Append(ctx, audit.Entry{
		LeadID:    leadID,
		Actor:     actor,
		EventType: eventType,
		Payload:   payload,
	})

	s.bus.Publish(ctx, events.LeadAssigned{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
		RepID:     assigned,
		Auto:      actor.IsSystem(),
	})

	return assigned, nil
}

// selectCandidate picks the representative with the fewest active leads,
// breaking ties by earliest creation timestamp so distribution stays
// deterministic and reproducible across input orderings.
func selectCandidate(candidates []ports.RepCandidate) (uuid.UUID, bool) {
	if len(candidates) == 0 {
		return uuid.Nil, false
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.ActiveLeads < best.ActiveLeads {
			best = c
			continue
		}
		if c.ActiveLeads == best.ActiveLeads && c.CreatedAt.Before(best.CreatedAt) {
			best = c
		}
	}

	return best.ID, true
}
