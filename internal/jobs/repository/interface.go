package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Job is a production job created when a lead's quote is approved.
// Jobs reference their lead; leads never point into a job's history.
type Job struct {
	ID              uuid.UUID
	LeadID          uuid.UUID
	ProductionStage string
	CardID          *string
	CardURL         *string
	Active          bool
	Archived        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// StageHistoryEntry is one phase of a job's production timeline.
// exited_at is null while the entry is the job's current stage.
type StageHistoryEntry struct {
	ID        uuid.UUID
	JobID     uuid.UUID
	Stage     string
	EnteredAt time.Time
	ExitedAt  *time.Time
}

// Repository provides access to jobs and their stage history.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	// GetActiveByLead returns the lead's active job, or found=false when the
	// lead has never been converted (or the job was archived).
	GetActiveByLead(ctx context.Context, leadID uuid.UUID) (Job, bool, error)
	// CreateForLead inserts a new active job for the lead.
	CreateForLead(ctx context.Context, leadID uuid.UUID, initialStage string) (Job, error)
	// EnsureActiveForLead returns the lead's active job, creating one when
	// absent. created reports whether a new job was inserted. The
	// lookup-before-insert check relies on the caller holding the lead's row
	// lock; the partial unique index on (lead_id) WHERE active backstops it.
	EnsureActiveForLead(ctx context.Context, leadID uuid.UUID, initialStage string) (Job, bool, error)
	// AttachCard stores the authoritative card reference and the initial
	// production stage on the job.
	AttachCard(ctx context.Context, jobID uuid.UUID, cardID, cardURL, stage string) error
	// OpenStage inserts a stage history entry with no exit time.
	OpenStage(ctx context.Context, jobID uuid.UUID, stage string) (StageHistoryEntry, error)
	// AdvanceStage atomically closes the open history entry, opens one for the
	// new stage, and updates the job's current stage.
	AdvanceStage(ctx context.Context, jobID uuid.UUID, stage string) error
	// ListStageHistory returns the job's timeline, oldest first.
	ListStageHistory(ctx context.Context, jobID uuid.UUID) ([]StageHistoryEntry, error)
}
