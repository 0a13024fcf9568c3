// Package service implements the job and stage history ledger.
package service

import (
	"context"

	"github.com/google/uuid"

	"leadtrack_backend/internal/audit"
	"leadtrack_backend/internal/jobs/repository"
	"leadtrack_backend/internal/leads/domain"
	"leadtrack_backend/platform/apperr"
	"leadtrack_backend/platform/logger"
)

// AuditWriter records audit events for ledger mutations.
type AuditWriter interface {
	Append(ctx context.Context, entry audit.Entry)
}

// Service is the job and stage history ledger.
type Service struct {
	repo  repository.Repository
	audit AuditWriter
	log   *logger.Logger
}

// New creates the ledger service.
func New(repo repository.Repository, auditLog AuditWriter, log *logger.Logger) *Service {
	return &Service{repo: repo, audit: auditLog, log: log}
}

// EnsureActiveJob returns the lead's active job, creating one if absent.
// Concurrent conversions of the same lead serialize on the lead's row lock.
func (s *Service) EnsureActiveJob(ctx context.Context, leadID uuid.UUID) (repository.Job, bool, error) {
	return s.repo.EnsureActiveForLead(ctx, leadID, DefaultStage)
}

// JobWithHistory pairs a job with its full stage timeline.
type JobWithHistory struct {
	Job     repository.Job
	History []repository.StageHistoryEntry
}

// Get returns a job and its stage history.
func (s *Service) Get(ctx context.Context, jobID uuid.UUID) (JobWithHistory, error) {
	job, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return JobWithHistory{}, err
	}

	history, err := s.repo.ListStageHistory(ctx, jobID)
	if err != nil {
		return JobWithHistory{}, err
	}

	return JobWithHistory{Job: job, History: history}, nil
}

// AdvanceStage moves a job to a new production stage. The open history entry
// closes and a new one opens in the same statement, so the timeline stays
// contiguous and non-overlapping.
func (s *Service) AdvanceStage(ctx context.Context, jobID uuid.UUID, stage string, actor domain.Actor) error {
	if !ValidStage(stage) {
		return apperr.Validation("unknown production stage: " + stage)
	}

	job, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return err
	}
	if !job.Active {
		return apperr.Conflict("job is no longer active")
	}
	if job.ProductionStage == stage {
		return apperr.Conflict("job is already in stage " + stage)
	}

	if err := s.repo.AdvanceStage(ctx, jobID, stage); err != nil {
		return err
	}

	s.audit.Append(ctx, audit.Entry{
		LeadID:    job.LeadID,
		Actor:     actor,
		EventType: audit.EventStageAdvanced,
		Payload: map[string]any{
			"jobId": job.ID.String(),
			"from":  job.ProductionStage,
			"to":    stage,
		},
	})

	return nil
}
