// Package repository persists jobs and their stage history.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"leadtrack_backend/platform/apperr"
	"leadtrack_backend/platform/db"
)

const jobNotFoundMessage = "job not found"

const jobColumns = `id, lead_id, production_stage, card_id, card_url, active, archived, created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	db db.Querier
}

// New creates a new jobs repository. Pass a pool for standalone use or a
// transaction to join an existing unit of work.
func New(q db.Querier) *Repo {
	return &Repo{db: q}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByID retrieves a job by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	job, err := r.scanJob(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Job{}, apperr.NotFound(jobNotFoundMessage)
		}
		return Job{}, apperr.Wrap(apperr.KindInternal, "could not load job", err).WithOp("jobs.get_by_id")
	}
	return job, nil
}

// GetActiveByLead returns the lead's active job if one exists.
// The partial unique index on (lead_id) WHERE active guarantees at most one row.
func (r *Repo) GetActiveByLead(ctx context.Context, leadID uuid.UUID) (Job, bool, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE lead_id = $1 AND active`

	job, err := r.scanJob(r.db.QueryRow(ctx, query, leadID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Job{}, false, nil
		}
		return Job{}, false, apperr.Wrap(apperr.KindInternal, "could not load active job", err).WithOp("jobs.get_active_by_lead")
	}
	return job, true, nil
}

// EnsureActiveForLead returns the lead's active job, creating one when absent.
func (r *Repo) EnsureActiveForLead(ctx context.Context, leadID uuid.UUID, initialStage string) (Job, bool, error) {
	job, found, err := r.GetActiveByLead(ctx, leadID)
	if err != nil {
		return Job{}, false, err
	}
	if found {
		return job, false, nil
	}

	job, err = r.CreateForLead(ctx, leadID, initialStage)
	if err != nil {
		return Job{}, false, err
	}
	return job, true, nil
}

// CreateForLead inserts a new active job.
func (r *Repo) CreateForLead(ctx context.Context, leadID uuid.UUID, initialStage string) (Job, error) {
	query := `
		INSERT INTO jobs (lead_id, production_stage)
		VALUES ($1, $2)
		RETURNING ` + jobColumns

	job, err := r.scanJob(r.db.QueryRow(ctx, query, leadID, initialStage))
	if err != nil {
		return Job{}, apperr.Wrap(apperr.KindInternal, "could not create job", err).WithOp("jobs.create")
	}
	return job, nil
}

// AttachCard stores the card reference and initial stage on the job.
func (r *Repo) AttachCard(ctx context.Context, jobID uuid.UUID, cardID, cardURL, stage string) error {
	query := `
		UPDATE jobs
		SET card_id = $2, card_url = $3, production_stage = $4, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, jobID, cardID, cardURL, stage)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "could not attach card to job", err).WithOp("jobs.attach_card")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(jobNotFoundMessage)
	}
	return nil
}

// OpenStage inserts a stage history entry with no exit time.
func (r *Repo) OpenStage(ctx context.Context, jobID uuid.UUID, stage string) (StageHistoryEntry, error) {
	query := `
		INSERT INTO stage_history (job_id, stage)
		VALUES ($1, $2)
		RETURNING id, job_id, stage, entered_at, exited_at`

	var entry StageHistoryEntry
	err := r.db.QueryRow(ctx, query, jobID, stage).Scan(
		&entry.ID, &entry.JobID, &entry.Stage, &entry.EnteredAt, &entry.ExitedAt,
	)
	if err != nil {
		return StageHistoryEntry{}, apperr.Wrap(apperr.KindInternal, "could not open stage history entry", err).WithOp("jobs.open_stage")
	}
	return entry, nil
}

// AdvanceStage closes the open history entry, opens one for the new stage, and
// updates the job's current stage. A single statement keeps the timeline
// contiguous without an explicit transaction: the close and the open commit
// together or not at all.
func (r *Repo) AdvanceStage(ctx context.Context, jobID uuid.UUID, stage string) error {
	query := `
		WITH closed AS (
			UPDATE stage_history
			SET exited_at = now()
			WHERE job_id = $1 AND exited_at IS NULL
		), opened AS (
			INSERT INTO stage_history (job_id, stage)
			VALUES ($1, $2)
		)
		UPDATE jobs
		SET production_stage = $2, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, jobID, stage)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "could not advance job stage", err).WithOp("jobs.advance_stage")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(jobNotFoundMessage)
	}
	return nil
}

// ListStageHistory returns the job's timeline, oldest first.
func (r *Repo) ListStageHistory(ctx context.Context, jobID uuid.UUID) ([]StageHistoryEntry, error) {
	query := `
		SELECT id, job_id, stage, entered_at, exited_at
		FROM stage_history
		WHERE job_id = $1
		ORDER BY entered_at ASC`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "could not list stage history", err).WithOp("jobs.list_stage_history")
	}
	defer rows.Close()

	var entries []StageHistoryEntry
	for rows.Next() {
		var entry StageHistoryEntry
		if err := rows.Scan(&entry.ID, &entry.JobID, &entry.Stage, &entry.EnteredAt, &entry.ExitedAt); err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "could not list stage history", err).WithOp("jobs.list_stage_history")
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "could not list stage history", err).WithOp("jobs.list_stage_history")
	}

	return entries, nil
}

func (r *Repo) scanJob(row pgx.Row) (Job, error) {
	var job Job
	err := row.Scan(
		&job.ID, &job.LeadID, &job.ProductionStage,
		&job.CardID, &job.CardURL,
		&job.Active, &job.Archived,
		&job.CreatedAt, &job.UpdatedAt,
	)
	return job, err
}
