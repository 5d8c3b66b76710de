// Package tracking reports admin sign-ins to an external visitor-tracking
// endpoint. A tracker is a two-state machine: it stays untracked until one
// tracking call succeeds for a valid session, then never fires again for
// its lifetime.
package tracking

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"trading-admin-backend/internal/config"
	"trading-admin-backend/internal/metrics"
)

// Status is the tracker state.
type Status int

const (
	StatusUntracked Status = iota
	StatusTracked
)

func (s Status) String() string {
	if s == StatusTracked {
		return "tracked"
	}
	return "untracked"
}

// Session carries the bearer credential of the active admin session.
type Session struct {
	Token string
}

// Valid reports whether the session can authenticate a tracking call.
func (s *Session) Valid() bool {
	return s != nil && s.Token != ""
}

// Visit describes one sign-in observation.
type Visit struct {
	Session   *Session
	IP        string
	UserAgent string
}

// Publisher receives successful visit notifications. Implementations must
// tolerate being called concurrently.
type Publisher interface {
	VisitorTracked(ctx context.Context, ip, userAgent string) error
}

// Tracker posts sign-ins to the tracking endpoint at most once per
// lifetime. Failures are logged and leave the state untracked so a later
// sign-in event can retry; there is no retry loop of its own.
type Tracker struct {
	mu        sync.Mutex
	status    Status
	endpoint  string
	client    *http.Client
	metrics   *metrics.Metrics
	publisher Publisher
}

// NewTracker creates a tracker for the configured endpoint. Metrics and
// publisher may be nil.
func NewTracker(cfg config.TrackingConfig, m *metrics.Metrics, publisher Publisher) *Tracker {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if cfg.Timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Tracker{
		status:    StatusUntracked,
		endpoint:  cfg.Endpoint,
		client:    &http.Client{Timeout: timeout},
		metrics:   m,
		publisher: publisher,
	}
}

// Status returns the current tracker state.
func (t *Tracker) Status() Status {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status
}

// RecordVisit attempts the untracked → tracked transition and returns the
// resulting state. Without a valid session no request is sent and the
// state is unchanged. Request failures are logged, never returned.
func (t *Tracker) RecordVisit(ctx context.Context, visit Visit) Status {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.status == StatusTracked {
		return t.status
	}

	if !visit.Session.Valid() {
		log.Println("visitor tracking skipped: no active session")
		t.countOutcome("no_session")
		return t.status
	}

	if err := t.send(ctx, visit.Session.Token); err != nil {
		log.Printf("visitor tracking failed: %v", err)
		t.countOutcome("error")
		return t.status
	}

	t.status = StatusTracked
	t.countOutcome("success")

	if t.publisher != nil {
		if err := t.publisher.VisitorTracked(ctx, visit.IP, visit.UserAgent); err != nil {
			log.Printf("failed to publish visitor tracked event: %v", err)
		}
	}
	return t.status
}

// send issues the bodyless tracking request with the session bearer.
func (t *Tracker) send(ctx context.Context, token string) error {
	if t.endpoint == "" {
		return fmt.Errorf("tracking endpoint not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build tracking request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("tracking request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("tracking endpoint returned status %d", resp.StatusCode)
	}
	return nil
}

func (t *Tracker) countOutcome(outcome string) {
	if t.metrics != nil {
		t.metrics.TrackingRequestsTotal.WithLabelValues(outcome).Inc()
	}
}
