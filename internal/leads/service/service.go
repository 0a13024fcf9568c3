// Package service implements the assignment allocator and the lead status
// transition controller.
package service

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"leadtrack_backend/internal/audit"
	"leadtrack_backend/internal/events"
	"leadtrack_backend/internal/leads/domain"
	"leadtrack_backend/internal/leads/ports"
	"leadtrack_backend/internal/leads/repository"
	"leadtrack_backend/platform/apperr"
	"leadtrack_backend/platform/logger"
	"leadtrack_backend/platform/phone"
)

// Service orchestrates lead assignment, status transitions, and the
// conversion pipeline that runs when a quote is approved.
type Service struct {
	repo   repository.Repository
	locker ports.LeadLocker
	reps   ports.RepDirectory
	issuer ports.CardIssuer
	audit  ports.AuditLog
	bus    events.Bus
	log    *logger.Logger
}

// New creates the leads service.
func New(
	repo repository.Repository,
	locker ports.LeadLocker,
	reps ports.RepDirectory,
	issuer ports.CardIssuer,
	auditLog ports.AuditLog,
	bus events.Bus,
	log *logger.Logger,
) *Service {
	return &Service{
		repo:   repo,
		locker: locker,
		reps:   reps,
		issuer: issuer,
		audit:  auditLog,
		bus:    bus,
		log:    log,
	}
}

// Get returns a lead by ID.
func (s *Service) Get(ctx context.Context, leadID uuid.UUID) (repository.Lead, error) {
	return s.repo.GetByID(ctx, leadID)
}

// IntakeParams are the fields accepted from the public intake endpoint.
type IntakeParams struct {
	Name    string
	Email   string
	Phone   string
	Company *string
	Notes   *string
}

// Intake creates a lead in the initial New status and announces it on the
// event bus, which triggers background auto-assignment.
func (s *Service) Intake(ctx context.Context, params IntakeParams) (repository.Lead, error) {
	lead, err := s.repo.Create(ctx, repository.CreateParams{
		Code:    newLeadCode(),
		Name:    strings.TrimSpace(params.Name),
		Email:   strings.TrimSpace(params.Email),
		Phone:   phone.NormalizeE164(params.Phone),
		Company: params.Company,
		Notes:   params.Notes,
	})
	if err != nil {
		return repository.Lead{}, err
	}

	s.bus.Publish(ctx, events.LeadReceived{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    lead.ID,
		Code:      lead.Code,
	})

	return lead, nil
}

// newLeadCode generates the external business code stamped on a lead at intake.
func newLeadCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "LD-" + strings.ToUpper(raw[:8])
}

// conversionResult records what the conversion pipeline produced while the
// lead lock was held.
type conversionResult struct {
	JobID      uuid.UUID
	Card       domain.CardReference
	Stage      string
	JobCreated bool
}

// ChangeStatus transitions a lead to the target status. Entering
// QuoteApproved additionally runs the conversion pipeline: ensure a job,
// issue one external tracking card, and open the first stage history entry.
// The card pre-check makes re-approval a no-op for conversion while the
// status write still succeeds. If the issuer call fails, the surrounding
// transaction rolls back and the lead is left exactly as it was.
func (s *Service) ChangeStatus(ctx context.Context, leadID uuid.UUID, targetRaw string, actor domain.Actor) error {
	target, ok := domain.ParseStatus(targetRaw)
	if !ok {
		return apperr.Validation("unknown status: " + targetRaw)
	}
	if target.RequiresElevatedRole() && !actor.Elevated() {
		return apperr.Unauthorized("approving a quote requires an owner or admin role")
	}

	var (
		from domain.Status
		conv *conversionResult
	)

	err := s.locker.WithLeadLock(ctx, leadID, func(ctx context.Context, lead repository.Lead, ops ports.ConversionOps) error {
		from = lead.Status

		if target == domain.StatusQuoteApproved && lead.CardID == nil {
			result, err := s.convert(ctx, lead, ops, actor)
			if err != nil {
				return err
			}
			conv = result
		}

		return ops.UpdateStatus(ctx, target)
	})
	if err != nil {
		return err
	}

	s.audit.Append(ctx, audit.Entry{
		LeadID:    leadID,
		Actor:     actor,
		EventType: audit.EventStatusChanged,
		Payload: map[string]any{
			"from": from.String(),
			"to":   target.String(),
		},
	})

	if conv != nil {
		s.audit.Append(ctx, audit.Entry{
			LeadID:    leadID,
			Actor:     actor,
			EventType: audit.EventJobCreated,
			Payload: map[string]any{
				"jobId":  conv.JobID.String(),
				"cardId": conv.Card.CardID,
				"stage":  conv.Stage,
			},
		})
		s.bus.Publish(ctx, events.JobOpened{
			BaseEvent: events.NewBaseEvent(),
			LeadID:    leadID,
			JobID:     conv.JobID,
			CardID:    conv.Card.CardID,
		})
	}

	s.bus.Publish(ctx, events.LeadStatusChanged{
		BaseEvent: events.NewBaseEvent(),
		LeadID:    leadID,
		From:      from.String(),
		To:        target.String(),
	})

	return nil
}

// convert runs the approval conversion pipeline under the lead lock.
func (s *Service) convert(ctx context.Context, lead repository.Lead, ops ports.ConversionOps, actor domain.Actor) (*conversionResult, error) {
	job, created, err := ops.EnsureActiveJob(ctx)
	if err != nil {
		return nil, err
	}
	if job.CardID != nil {
		// A concurrent approval already attached the card; nothing to convert.
		return nil, nil
	}

	card, err := s.issuer.CreateCard(ctx, s.cardContext(lead, job.ID, actor))
	if err != nil {
		if apperr.Is(err, apperr.KindExternal) {
			return nil, err
		}
		return nil, apperr.Wrap(apperr.KindExternal, "card issuer failed", err)
	}

	stage, err := ops.AttachCard(ctx, job.ID, card)
	if err != nil {
		return nil, err
	}

	return &conversionResult{
		JobID:      job.ID,
		Card:       card,
		Stage:      stage,
		JobCreated: created,
	}, nil
}

func (s *Service) cardContext(lead repository.Lead, jobID uuid.UUID, actor domain.Actor) ports.CardContext {
	cc := ports.CardContext{
		LeadCode:      lead.Code,
		JobID:         jobID,
		CustomerName:  lead.Name,
		CustomerEmail: lead.Email,
		CustomerPhone: lead.Phone,
	}
	if lead.Company != nil {
		cc.Company = *lead.Company
	}
	if lead.Notes != nil {
		cc.DesignNotes = *lead.Notes
	}
	cc.ActorLabel = actor.Label
	return cc
}
