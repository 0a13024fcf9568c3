package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"leadtrack_backend/internal/leads/domain"
)

// Lead is a row of the leads table.
type Lead struct {
	ID            uuid.UUID
	Code          string
	Name          string
	Email         string
	Phone         string
	Company       *string
	Status        domain.Status
	SalesStatus   domain.Status
	AssignedRepID *uuid.UUID
	AssignedAt    *time.Time
	AssignedBy    *string
	CardID        *string
	CardURL       *string
	Notes         *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateParams contains parameters for creating a lead at intake.
type CreateParams struct {
	Code    string
	Name    string
	Email   string
	Phone   string
	Company *string
	Notes   *string
}

// LeadReader provides read operations for leads.
type LeadReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (Lead, error)
	// GetForUpdate reads a lead under an exclusive row lock. Only meaningful
	// when the repository runs inside a transaction.
	GetForUpdate(ctx context.Context, id uuid.UUID) (Lead, error)
}

// LeadWriter provides write operations for leads.
type LeadWriter interface {
	Create(ctx context.Context, params CreateParams) (Lead, error)
	// SetAssignment writes the assignment fields and, when advance is true,
	// moves status and sales_status to Assigned in the same statement.
	SetAssignment(ctx context.Context, id uuid.UUID, repID uuid.UUID, actorLabel string, advance bool) error
	// UpdateStatus writes status and sales_status together.
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.Status) error
	// AttachCard caches the card reference on the lead.
	AttachCard(ctx context.Context, id uuid.UUID, cardID, cardURL string) error
}

// Repository combines all lead repository operations.
type Repository interface {
	LeadReader
	LeadWriter
}
