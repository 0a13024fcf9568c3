// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"leadtrack_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Leads Domain Events
// =============================================================================

// LeadReceived is published when a new lead arrives through intake.
// Subscribers schedule automatic assignment from it.
type LeadReceived struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
	Code   string    `json:"code"`
}

func (e LeadReceived) EventName() string { return "leads.lead.received" }

// LeadAssigned is published when a lead is assigned to a representative.
type LeadAssigned struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
	RepID  uuid.UUID `json:"repId"`
	Auto   bool      `json:"auto"`
}

func (e LeadAssigned) EventName() string { return "leads.lead.assigned" }

// LeadStatusChanged is published after every successful status transition.
type LeadStatusChanged struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
	From   string    `json:"from"`
	To     string    `json:"to"`
}

func (e LeadStatusChanged) EventName() string { return "leads.status.changed" }

// =============================================================================
// Jobs Domain Events
// =============================================================================

// JobOpened is published when quote approval converts a lead into a
// production job with an external tracking card.
type JobOpened struct {
	BaseEvent
	LeadID uuid.UUID `json:"leadId"`
	JobID  uuid.UUID `json:"jobId"`
	CardID string    `json:"cardId"`
}

func (e JobOpened) EventName() string { return "jobs.job.opened" }
