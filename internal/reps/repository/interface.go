package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Representative is a row of the representatives table. The engine never
// writes to it; staff management is an external collaborator.
type Representative struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Role      string
	CreatedAt time.Time
}

// Candidate pairs a representative with their current active lead count.
type Candidate struct {
	Representative
	ActiveLeads int
}

// Repository provides read-only access to the representative directory.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (Representative, error)
	// ListCandidates returns every representative eligible for assignment
	// together with their active lead count. Leads in one of the excluded
	// statuses do not count toward the load.
	ListCandidates(ctx context.Context, excludedStatuses []string) ([]Candidate, error)
}
