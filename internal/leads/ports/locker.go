// Package ports declares the interfaces the assignment and conversion engine
// consumes. Concrete implementations live in internal/adapters and are wired
// at the composition root.
package ports

import (
	"context"

	"github.com/google/uuid"

	"leadtrack_backend/internal/leads/domain"
	"leadtrack_backend/internal/leads/repository"
)

// ConversionOps are the writes available while a lead's row lock is held.
// Every call joins the same transaction; if the callback passed to
// WithLeadLock returns an error, none of them persist.
type ConversionOps interface {
	// UpdateStatus writes status and sales_status together.
	UpdateStatus(ctx context.Context, to domain.Status) error
	// SetAssignment writes the assignment fields; advance moves a New lead
	// to Assigned in the same write.
	SetAssignment(ctx context.Context, repID uuid.UUID, actorLabel string, advance bool) error
	// EnsureActiveJob returns the lead's active job, creating one if absent.
	// created reports whether a new row was inserted.
	EnsureActiveJob(ctx context.Context) (job JobRecord, created bool, err error)
	// AttachCard persists the card reference on both job and lead, resolves
	// the initial production stage from the card's external list, and opens
	// the first stage history entry. Returns the resolved stage.
	AttachCard(ctx context.Context, jobID uuid.UUID, card domain.CardReference) (stage string, err error)
}

// JobRecord is the slice of a job the controller needs while converting.
type JobRecord struct {
	ID     uuid.UUID
	CardID *string
}

// LeadLocker serializes operations on a single lead. WithLeadLock acquires an
// exclusive lock scoped to the lead's row, invokes fn with the current row
// state and the transactional write operations, and releases the lock when fn
// returns. An error from fn discards every write made through ops.
type LeadLocker interface {
	WithLeadLock(ctx context.Context, leadID uuid.UUID, fn func(ctx context.Context, lead repository.Lead, ops ConversionOps) error) error
}
