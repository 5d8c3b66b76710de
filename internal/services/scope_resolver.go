package services

import (
	"context"
	"fmt"

	"trading-admin-backend/internal/repositories"
	"trading-admin-backend/internal/scope"

	"github.com/google/uuid"
)

// Admin roles carried in JWT claims
const (
	RoleSuperAdmin = "super_admin"
	RoleAdmin      = "admin"
)

// ScopeResolver turns an authenticated admin identity into an access
// scope. Super admins get full access; other admins are limited to their
// assigned user set.
type ScopeResolver struct {
	access repositories.AdminAccessRepository
}

// NewScopeResolver creates a new scope resolver
func NewScopeResolver(access repositories.AdminAccessRepository) *ScopeResolver {
	return &ScopeResolver{access: access}
}

// Resolve returns the access scope for the given admin and role. The
// returned scope is always resolved; resolution failures are returned as
// errors, not as pending scopes.
func (r *ScopeResolver) Resolve(ctx context.Context, adminID uuid.UUID, role string) (scope.AccessScope, error) {
	if role == RoleSuperAdmin {
		return scope.FullAccessScope(adminID), nil
	}

	ids, err := r.access.AccessibleUserIDs(ctx, adminID)
	if err != nil {
		return scope.AccessScope{}, fmt.Errorf("failed to resolve access scope: %w", err)
	}
	return scope.RestrictedScope(adminID, ids), nil
}
