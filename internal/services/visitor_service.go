package services

import (
	"context"
	"log"

	"trading-admin-backend/internal/repositories"
	"trading-admin-backend/internal/tracking"

	"github.com/google/uuid"
)

// VisitorService records sign-ins: it drives the tracking state machine
// and, on a successful transition, stamps the actor's row with the
// observed network metadata.
type VisitorService struct {
	tracker *tracking.Tracker
	users   repositories.UserRepository
}

// NewVisitorService creates a new visitor service
func NewVisitorService(tracker *tracking.Tracker, users repositories.UserRepository) *VisitorService {
	return &VisitorService{tracker: tracker, users: users}
}

// Status returns the current tracking state.
func (s *VisitorService) Status() tracking.Status {
	return s.tracker.Status()
}

// RecordSignIn forwards the visit to the tracker. When the visit is the
// one that flips the state to tracked, the actor's last-login metadata is
// updated as well; a failed update is logged and otherwise ignored.
func (s *VisitorService) RecordSignIn(ctx context.Context, actorID *uuid.UUID, visit tracking.Visit) tracking.Status {
	before := s.tracker.Status()
	after := s.tracker.RecordVisit(ctx, visit)

	if before == tracking.StatusUntracked && after == tracking.StatusTracked && actorID != nil {
		if err := s.users.RecordLogin(ctx, *actorID, visit.IP, visit.UserAgent); err != nil {
			log.Printf("failed to record login metadata for %s: %v", actorID, err)
		}
	}
	return after
}
