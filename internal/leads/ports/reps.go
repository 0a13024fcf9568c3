package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RepCandidate is a representative eligible for assignment, with the load and
// seniority data the allocator decides on.
type RepCandidate struct {
	ID          uuid.UUID
	CreatedAt   time.Time
	ActiveLeads int
}

// RepDirectory exposes the representative directory to the allocator.
type RepDirectory interface {
	// ListCandidates returns every eligible representative with their
	// current active lead count.
	ListCandidates(ctx context.Context) ([]RepCandidate, error)
}
