package ports

import (
	"context"
	"time"

	"github.com/google/uuid"

	"leadtrack_backend/internal/leads/domain"
)

// CardContext carries everything the issuer needs to render and create one
// tracking card. Optional fields render as human-readable placeholders, never
// as blanks.
type CardContext struct {
	LeadCode      string
	JobID         uuid.UUID
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Company       string
	PaymentStatus string
	Quantity      string
	Deadline      *time.Time
	Products      []string
	DesignNotes   string
	ActorLabel    string
}

// CardIssuer mints a work-tracking card in the external system. It never
// deduplicates; callers are responsible for invoking it at most once per job.
type CardIssuer interface {
	CreateCard(ctx context.Context, cc CardContext) (domain.CardReference, error)
}
