package domain

import "github.com/google/uuid"

// ActorKind discriminates the Actor variant.
type ActorKind int

const (
	// ActorHuman is an authenticated user acting through the API.
	ActorHuman ActorKind = iota
	// ActorSystem is the engine itself, acting without a caller identity.
	ActorSystem
)

// SystemLabel identifies the pseudo-actor used by automatic assignment.
const SystemLabel = "system"

// Actor is a tagged variant: either a human user with an ID and roles, or a
// labelled system actor. Comparison sites branch on Kind rather than on a
// magic string.
type Actor struct {
	Kind  ActorKind
	ID    uuid.UUID
	Label string
	roles []string
}

// HumanActor builds an Actor for an authenticated user.
func HumanActor(id uuid.UUID, roles []string) Actor {
	return Actor{Kind: ActorHuman, ID: id, Label: id.String(), roles: roles}
}

// SystemActor builds the system pseudo-actor.
func SystemActor() Actor {
	return Actor{Kind: ActorSystem, Label: SystemLabel}
}

// IsSystem reports whether the actor is the system pseudo-actor.
func (a Actor) IsSystem() bool {
	return a.Kind == ActorSystem
}

// HasRole checks a human actor's roles. The system actor holds every role.
func (a Actor) HasRole(role string) bool {
	if a.Kind == ActorSystem {
		return true
	}
	for _, r := range a.roles {
		if r == role {
			return true
		}
	}
	return false
}

// Elevated reports whether the actor may perform owner/admin operations.
func (a Actor) Elevated() bool {
	return a.HasRole(RoleOwner) || a.HasRole(RoleAdmin)
}

// Role names used by the guards in this engine.
const (
	RoleOwner = "owner"
	RoleAdmin = "admin"
	RoleRep   = "rep"
)
