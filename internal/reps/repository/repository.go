// Package repository provides read-only access to the representative
// directory used by the assignment allocator.
package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"leadtrack_backend/platform/apperr"
	"leadtrack_backend/platform/db"
)

const repNotFoundMessage = "representative not found"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	db db.Querier
}

// New creates a new representatives repository.
func New(q db.Querier) *Repo {
	return &Repo{db: q}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// GetByID retrieves a representative by ID.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (Representative, error) {
	query := `
		SELECT id, name, email, role, created_at
		FROM representatives
		WHERE id = $1`

	var rep Representative
	err := r.db.QueryRow(ctx, query, id).Scan(&rep.ID, &rep.Name, &rep.Email, &rep.Role, &rep.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Representative{}, apperr.NotFound(repNotFoundMessage)
		}
		return Representative{}, apperr.Wrap(apperr.KindInternal, "could not load representative", err).WithOp("reps.get_by_id")
	}
	return rep, nil
}

// ListCandidates returns every eligible representative with their active lead
// count. A lead counts toward a representative's load unless its status is in
// the excluded set.
func (r *Repo) ListCandidates(ctx context.Context, excludedStatuses []string) ([]Candidate, error) {
	query := `
		SELECT r.id, r.name, r.email, r.role, r.created_at,
			COUNT(l.id) FILTER (WHERE NOT (l.status = ANY($1))) AS active_leads
		FROM representatives r
		LEFT JOIN leads l ON l.assigned_rep_id = r.id
		WHERE r.role = 'rep'
		GROUP BY r.id, r.name, r.email, r.role, r.created_at
		ORDER BY r.created_at ASC`

	rows, err := r.db.Query(ctx, query, excludedStatuses)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "could not list assignment candidates", err).WithOp("reps.list_candidates")
	}
	defer rows.Close()

	var candidates []Candidate
	for rows.Next() {
		var c Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Role, &c.CreatedAt, &c.ActiveLeads); err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, "could not list assignment candidates", err).WithOp("reps.list_candidates")
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "could not list assignment candidates", err).WithOp("reps.list_candidates")
	}

	return candidates, nil
}
