package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"leadtrack_backend/internal/audit"
	"leadtrack_backend/internal/leads/domain"
	"leadtrack_backend/internal/leads/ports"
	"leadtrack_backend/platform/apperr"
)

func TestChangeStatusApprovalConvertsLead(t *testing.T) {
	h := newHarness(newLead(domain.StatusQuoteSent))

	err := h.svc.ChangeStatus(context.Background(), h.store.lead.ID, "QuoteApproved", ownerActor())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if h.store.lead.Status != domain.StatusQuoteApproved {
		t.Fatalf("expected QuoteApproved, got %s", h.store.lead.Status)
	}
	if h.store.jobsCreated != 1 {
		t.Fatalf("expected one job created, got %d", h.store.jobsCreated)
	}
	if h.store.lead.CardID == nil || *h.store.lead.CardID != "abc123" {
		t.Fatalf("expected lead card abc123, got %v", h.store.lead.CardID)
	}
	if h.store.job == nil || h.store.job.CardID == nil || *h.store.job.CardID != "abc123" {
		t.Fatal("expected card attached to job")
	}
	if h.store.stageOpened == "" {
		t.Fatal("expected an open stage history entry")
	}
	if h.issuer.calls != 1 {
		t.Fatalf("expected one issuer call, got %d", h.issuer.calls)
	}

	if len(h.audit.entries) != 2 {
		t.Fatalf("expected status_changed and job_created events, got %#v", h.audit.entries)
	}
	if h.audit.entries[0].EventType != audit.EventStatusChanged {
		t.Fatalf("expected status_changed first, got %s", h.audit.entries[0].EventType)
	}
	payload := h.audit.entries[0].Payload
	if payload["from"] != "QuoteSent" || payload["to"] != "QuoteApproved" {
		t.Fatalf("unexpected status_changed payload: %#v", payload)
	}
	if h.audit.entries[1].EventType != audit.EventJobCreated {
		t.Fatalf("expected job_created second, got %s", h.audit.entries[1].EventType)
	}
	if h.audit.entries[1].Payload["cardId"] != "abc123" {
		t.Fatalf("unexpected job_created payload: %#v", h.audit.entries[1].Payload)
	}
}

func TestChangeStatusReapprovalSkipsConversion(t *testing.T) {
	lead := newLead(domain.StatusQuoteApproved)
	cardID := "abc123"
	lead.CardID = &cardID
	h := newHarness(lead)
	h.store.job = &ports.JobRecord{ID: uuid.New(), CardID: &cardID}

	err := h.svc.ChangeStatus(context.Background(), lead.ID, "QuoteApproved", ownerActor())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if h.issuer.calls != 0 {
		t.Fatal("expected no issuer call on re-approval")
	}
	if h.store.jobsCreated != 0 {
		t.Fatal("expected no new job row on re-approval")
	}
	if len(h.audit.entries) != 1 || h.audit.entries[0].EventType != audit.EventStatusChanged {
		t.Fatalf("expected exactly one status_changed event, got %#v", h.audit.entries)
	}
}

func TestChangeStatusApprovalRequiresElevatedRole(t *testing.T) {
	h := newHarness(newLead(domain.StatusQuoteSent))
	rep := domain.HumanActor(uuid.New(), []string{domain.RoleRep})

	err := h.svc.ChangeStatus(context.Background(), h.store.lead.ID, "QuoteApproved", rep)
	if !apperr.Is(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if h.store.lead.Status != domain.StatusQuoteSent {
		t.Fatalf("expected status unchanged, got %s", h.store.lead.Status)
	}
	if h.locker.lockCalls != 0 {
		t.Fatal("expected role check to reject before taking the lock")
	}
	if len(h.audit.entries) != 0 {
		t.Fatalf("expected no audit events, got %#v", h.audit.entries)
	}
}

func TestChangeStatusIssuerFailureRollsBack(t *testing.T) {
	h := newHarness(newLead(domain.StatusQuoteSent))
	h.issuer.err = apperr.New(apperr.KindExternal, "tracker down")

	err := h.svc.ChangeStatus(context.Background(), h.store.lead.ID, "QuoteApproved", ownerActor())
	if !apperr.Is(err, apperr.KindExternal) {
		t.Fatalf("expected external error, got %v", err)
	}

	if h.store.lead.Status != domain.StatusQuoteSent {
		t.Fatalf("expected status unchanged after rollback, got %s", h.store.lead.Status)
	}
	if h.store.job != nil {
		t.Fatal("expected no job row after rollback")
	}
	if h.store.lead.CardID != nil {
		t.Fatal("expected no card reference after rollback")
	}
	if len(h.audit.entries) != 0 {
		t.Fatalf("expected no audit events after rollback, got %#v", h.audit.entries)
	}
}

func TestChangeStatusWrapsNonTypedIssuerError(t *testing.T) {
	h := newHarness(newLead(domain.StatusQuoteSent))
	h.issuer.err = errors.New("connection reset")

	err := h.svc.ChangeStatus(context.Background(), h.store.lead.ID, "QuoteApproved", ownerActor())
	if !apperr.Is(err, apperr.KindExternal) {
		t.Fatalf("expected issuer error surfaced as external, got %v", err)
	}
}

func TestChangeStatusInvalidStatus(t *testing.T) {
	h := newHarness(newLead(domain.StatusNew))

	err := h.svc.ChangeStatus(context.Background(), h.store.lead.ID, "Approved", ownerActor())
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestChangeStatusPlainTransition(t *testing.T) {
	h := newHarness(newLead(domain.StatusAssigned))
	rep := domain.HumanActor(uuid.New(), []string{domain.RoleRep})

	err := h.svc.ChangeStatus(context.Background(), h.store.lead.ID, "Contacted", rep)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.store.lead.Status != domain.StatusContacted || h.store.lead.SalesStatus != domain.StatusContacted {
		t.Fatalf("expected both status columns Contacted, got %s/%s", h.store.lead.Status, h.store.lead.SalesStatus)
	}
	if h.issuer.calls != 0 {
		t.Fatal("expected no issuer call for a plain transition")
	}
	if len(h.audit.entries) != 1 || h.audit.entries[0].EventType != audit.EventStatusChanged {
		t.Fatalf("expected one status_changed event, got %#v", h.audit.entries)
	}
}

func TestIntakeGeneratesCodeAndPublishes(t *testing.T) {
	h := newHarness(newLead(domain.StatusNew))

	lead, err := h.svc.Intake(context.Background(), IntakeParams{
		Name:  "  Jane Visser  ",
		Email: "jane@example.com",
		Phone: "06 12 34 56 78",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(lead.Code, "LD-") || len(lead.Code) != 11 {
		t.Fatalf("unexpected lead code %q", lead.Code)
	}
	if lead.Name != "Jane Visser" {
		t.Fatalf("expected trimmed name, got %q", lead.Name)
	}
	if !strings.HasPrefix(lead.Phone, "+31") {
		t.Fatalf("expected normalized phone, got %q", lead.Phone)
	}
	if lead.Status != domain.StatusNew {
		t.Fatalf("expected New status, got %s", lead.Status)
	}
	if len(h.bus.published) != 1 {
		t.Fatalf("expected one published event, got %#v", h.bus.published)
	}
}

func TestCardContextCarriesActorLabel(t *testing.T) {
	h := newHarness(newLead(domain.StatusQuoteSent))
	actor := ownerActor()

	if err := h.svc.ChangeStatus(context.Background(), h.store.lead.ID, "QuoteApproved", actor); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if h.issuer.last.ActorLabel != actor.Label {
		t.Fatalf("expected actor label %q, got %q", actor.Label, h.issuer.last.ActorLabel)
	}
	if h.issuer.last.LeadCode != h.store.lead.Code {
		t.Fatalf("expected lead code %q, got %q", h.store.lead.Code, h.issuer.last.LeadCode)
	}
}
