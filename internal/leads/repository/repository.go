package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"leadtrack_backend/internal/leads/domain"
	"leadtrack_backend/platform/apperr"
	"leadtrack_backend/platform/db"
)

const leadNotFoundMessage = "lead not found"

const leadColumns = `id, code, name, email, phone, company, status, sales_status,
		assigned_rep_id, assigned_at, assigned_by, card_id, card_url, notes,
		created_at, updated_at`

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	db db.Querier
}

// New creates a new leads repository. Pass a pool for standalone use or a
// transaction to join an existing unit of work.
func New(q db.Querier) *Repo {
	return &Repo{db: q}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByID retrieves a lead by its ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	return r.scanOne(ctx, query, id, "leads.get_by_id")
}

// GetForUpdate retrieves a lead under an exclusive row lock. Concurrent
// callers targeting the same lead serialize here for the duration of the
// enclosing transaction.
func (r *Repo) GetForUpdate(ctx context.Context, id uuid.UUID) (Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1 FOR UPDATE`
	return r.scanOne(ctx, query, id, "leads.lock")
}

func (r *Repo) scanOne(ctx context.Context, query string, id uuid.UUID, op string) (Lead, error) {
	var l Lead
	err := r.db.QueryRow(ctx, query, id).Scan(
		&l.ID, &l.Code, &l.Name, &l.Email, &l.Phone, &l.Company,
		&l.Status, &l.SalesStatus,
		&l.AssignedRepID, &l.AssignedAt, &l.AssignedBy,
		&l.CardID, &l.CardURL, &l.Notes,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Lead{}, apperr.NotFound(leadNotFoundMessage)
		}
		return Lead{}, apperr.Wrap(apperr.KindInternal, "could not load lead", err).WithOp(op)
	}
	return l, nil
}

// Create inserts a lead in the initial New status.
func (r *Repo) Create(ctx context.Context, params CreateParams) (Lead, error) {
	query := `
		INSERT INTO leads (code, name, email, phone, company, status, sales_status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $6, $7)
		RETURNING ` + leadColumns

	var l Lead
	err := r.db.QueryRow(ctx, query,
		params.Code, params.Name, params.Email, params.Phone, params.Company,
		domain.StatusNew, params.Notes,
	).Scan(
		&l.ID, &l.Code, &l.Name, &l.Email, &l.Phone, &l.Company,
		&l.Status, &l.SalesStatus,
		&l.AssignedRepID, &l.AssignedAt, &l.AssignedBy,
		&l.CardID, &l.CardURL, &l.Notes,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return Lead{}, apperr.Wrap(apperr.KindInternal, "could not create lead", err).WithOp("leads.create")
	}
	return l, nil
}

// SetAssignment writes the assignment fields. When advance is true the lead
// also moves from New to Assigned as part of the same write.
func (r *Repo) SetAssignment(ctx context.Context, id uuid.UUID, repID uuid.UUID, actorLabel string, advance bool) error {
	query := `
		UPDATE leads
		SET assigned_rep_id = $2,
			assigned_at = now(),
			assigned_by = $3,
			status = CASE WHEN $4 THEN $5 ELSE status END,
			sales_status = CASE WHEN $4 THEN $5 ELSE sales_status END,
			updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, repID, actorLabel, advance, domain.StatusAssigned)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "could not assign lead", err).WithOp("leads.set_assignment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMessage)
	}
	return nil
}

// UpdateStatus writes status and the mirrored sales_status together.
func (r *Repo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) error {
	query := `
		UPDATE leads
		SET status = $2, sales_status = $2, updated_at = now()
		WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "could not update lead status", err).WithOp("leads.update_status")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMessage)
	}
	return nil
}

// AttachCard caches the external card reference on the lead for display.
// The authoritative copy lives on the job.
func (r *Repo) AttachCard(ctx context.Context, id uuid.UUID, cardID, cardURL string) error {
	query := `
		UPDATE leads
		SET card_id = $2, card_url = $3, updated_at = now()
		WHERE id = $1 AND card_id IS NULL`

	tag, err := r.db.Exec(ctx, query, id, cardID, cardURL)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "could not attach card to lead", err).WithOp("leads.attach_card")
	}
	if tag.RowsAffected() == 0 {
		return apperr.Conflict("lead already carries a card reference")
	}
	return nil
}
