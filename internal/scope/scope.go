// Package scope carries the authorization window an admin operates under.
// It is resolved once per request by an external collaborator and passed
// explicitly to every query; nothing here reads ambient state.
package scope

import (
	"github.com/google/uuid"
)

// AccessScope describes which user rows an admin may read.
//
// FullAccess bypasses all membership filtering. When FullAccess is false,
// AccessibleIDs is the exhaustive set of user IDs the admin may see; an
// empty set means the admin may see nothing and queries must short-circuit
// without touching the database.
type AccessScope struct {
	ActorID       *uuid.UUID
	FullAccess    bool
	AccessibleIDs []uuid.UUID
	Resolving     bool
}

// Ready reports whether scope resolution has completed. Queries must not
// run against an unresolved scope.
func (s AccessScope) Ready() bool {
	return !s.Resolving
}

// Empty reports whether the scope grants visibility over zero users.
func (s AccessScope) Empty() bool {
	return !s.FullAccess && len(s.AccessibleIDs) == 0
}

// ActorKnown reports whether the acting admin's identity is available.
func (s AccessScope) ActorKnown() bool {
	return s.ActorID != nil && *s.ActorID != uuid.Nil
}

// FullAccessScope returns a resolved scope with unrestricted visibility.
func FullAccessScope(actorID uuid.UUID) AccessScope {
	return AccessScope{ActorID: &actorID, FullAccess: true}
}

// RestrictedScope returns a resolved scope limited to the given user IDs.
func RestrictedScope(actorID uuid.UUID, accessibleIDs []uuid.UUID) AccessScope {
	return AccessScope{ActorID: &actorID, AccessibleIDs: accessibleIDs}
}

// PendingScope returns a scope whose resolution is still in progress.
// Cached query hooks treat it as disabled.
func PendingScope(actorID *uuid.UUID) AccessScope {
	return AccessScope{ActorID: actorID, Resolving: true}
}
