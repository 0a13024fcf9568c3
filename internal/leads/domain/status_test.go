package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestParseStatusAcceptsAllKnownValues(t *testing.T) {
	for _, s := range AllStatuses {
		parsed, ok := ParseStatus(s.String())
		if !ok || parsed != s {
			t.Fatalf("expected %q to parse, got %q ok=%v", s, parsed, ok)
		}
	}
}

func TestParseStatusRejectsUnknownValues(t *testing.T) {
	for _, raw := range []string{"", "new", "Approved", "QUOTEAPPROVED", "Won"} {
		if _, ok := ParseStatus(raw); ok {
			t.Fatalf("expected %q to be rejected", raw)
		}
	}
}

func TestRequiresElevatedRole(t *testing.T) {
	for _, s := range AllStatuses {
		want := s == StatusQuoteApproved
		if s.RequiresElevatedRole() != want {
			t.Fatalf("RequiresElevatedRole(%s) = %v, want %v", s, !want, want)
		}
	}
}

func TestSystemActorHoldsEveryRole(t *testing.T) {
	sys := SystemActor()
	if !sys.IsSystem() {
		t.Fatal("expected system actor")
	}
	if sys.Label != SystemLabel {
		t.Fatalf("expected label %q, got %q", SystemLabel, sys.Label)
	}
	if !sys.HasRole(RoleOwner) || !sys.HasRole(RoleRep) {
		t.Fatal("expected system actor to hold every role")
	}
}

func TestHumanActorRoles(t *testing.T) {
	id := uuid.New()
	rep := HumanActor(id, []string{RoleRep})
	if rep.IsSystem() {
		t.Fatal("expected human actor")
	}
	if rep.Label != id.String() {
		t.Fatalf("expected label %q, got %q", id.String(), rep.Label)
	}
	if rep.Elevated() {
		t.Fatal("rep must not be elevated")
	}

	admin := HumanActor(uuid.New(), []string{RoleAdmin})
	if !admin.Elevated() {
		t.Fatal("admin must be elevated")
	}
	owner := HumanActor(uuid.New(), []string{RoleOwner, RoleRep})
	if !owner.Elevated() {
		t.Fatal("owner must be elevated")
	}
}
