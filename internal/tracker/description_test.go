package tracker

import (
	"strings"
	"testing"
	"time"

	"leadtrack_backend/internal/leads/ports"
)

func TestRenderDescriptionFillsPlaceholders(t *testing.T) {
	desc := renderDescription(testContext())

	for _, want := range []string{
		placeholderInvoice,
		placeholderPayment,
		placeholderQuantity,
		placeholderDeadline,
		placeholderProducts,
		placeholderNotes,
		"Jane Visser",
		"jane@example.com",
		"+31612345678",
		"LD-0AF31B2C",
	} {
		if !strings.Contains(desc, want) {
			t.Fatalf("description missing %q:\n%s", want, desc)
		}
	}
	for _, forbidden := range []string{"undefined", "null", "<nil>"} {
		if strings.Contains(desc, forbidden) {
			t.Fatalf("description leaks %q:\n%s", forbidden, desc)
		}
	}
}

func TestRenderDescriptionUsesProvidedFields(t *testing.T) {
	deadline := time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC)
	cc := testContext()
	cc.PaymentStatus = "paid"
	cc.Quantity = "250"
	cc.Deadline = &deadline
	cc.Products = []string{"Business cards 85x55", "Letterhead A4"}
	cc.DesignNotes = "Logo top-left, PMS 485"
	cc.Company = "Visser Drukwerk BV"

	desc := renderDescription(cc)

	for _, want := range []string{"paid", "250", "15-10-2026", "- Business cards 85x55", "- Letterhead A4", "Logo top-left, PMS 485", "Visser Drukwerk BV"} {
		if !strings.Contains(desc, want) {
			t.Fatalf("description missing %q:\n%s", want, desc)
		}
	}
	for _, stale := range []string{placeholderPayment, placeholderQuantity, placeholderDeadline, placeholderProducts, placeholderNotes} {
		if strings.Contains(desc, stale) {
			t.Fatalf("description still shows placeholder %q:\n%s", stale, desc)
		}
	}
}

func TestCardTitle(t *testing.T) {
	if got := cardTitle(testContext()); got != "LD-0AF31B2C | Jane Visser" {
		t.Fatalf("unexpected title %q", got)
	}

	anon := ports.CardContext{LeadCode: "LD-00000000"}
	if got := cardTitle(anon); got != "LD-00000000 | "+placeholderContact {
		t.Fatalf("unexpected title %q", got)
	}
}
