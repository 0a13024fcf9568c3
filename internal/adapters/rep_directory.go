package adapters

import (
	"context"

	"leadtrack_backend/internal/leads/ports"
	repsrepo "leadtrack_backend/internal/reps/repository"
	"leadtrack_backend/platform/config"
)

// RepDirectory adapts the representatives repository for the allocator,
// folding in the configured set of statuses excluded from the active count.
type RepDirectory struct {
	repo     repsrepo.Repository
	excluded []string
}

func NewRepDirectory(repo repsrepo.Repository, cfg config.AssignmentConfig) *RepDirectory {
	return &RepDirectory{repo: repo, excluded: cfg.GetExcludedStatuses()}
}

func (d *RepDirectory) ListCandidates(ctx context.Context) ([]ports.RepCandidate, error) {
	rows, err := d.repo.ListCandidates(ctx, d.excluded)
	if err != nil {
		return nil, err
	}
	candidates := make([]ports.RepCandidate, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, ports.RepCandidate{
			ID:          row.ID,
			CreatedAt:   row.CreatedAt,
			ActiveLeads: row.ActiveLeads,
		})
	}
	return candidates, nil
}

var _ ports.RepDirectory = (*RepDirectory)(nil)
