package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"trading-admin-backend/internal/metrics"

	"github.com/google/uuid"
)

// EventType represents the type of admin dashboard event
type EventType string

const (
	// Visitor events
	EventVisitorTracked EventType = "admin.visitors.tracked"

	// Cache events
	EventCacheWarmed EventType = "admin.cache.warmed"
)

// BaseEvent represents the common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType EventType `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
	Source    string    `json:"source"`
	Version   string    `json:"version"`
}

// VisitorTrackedEvent is published after a sign-in is reported to the
// tracking endpoint.
type VisitorTrackedEvent struct {
	BaseEvent
	IP        string `json:"ip"`
	UserAgent string `json:"user_agent"`
}

// CacheWarmedEvent is published after a prefetch run completes.
type CacheWarmedEvent struct {
	BaseEvent
	ActorID   uuid.UUID `json:"actor_id"`
	Resources []string  `json:"resources"`
	Failed    int       `json:"failed"`
}

// Publisher publishes admin dashboard events to JetStream. A nil Publisher
// is safe to call; every method becomes a no-op so the server can run with
// NATS disabled.
type Publisher struct {
	client  *Client
	metrics *metrics.Metrics
}

// NewPublisher creates an event publisher over the given client
func NewPublisher(client *Client, m *metrics.Metrics) *Publisher {
	return &Publisher{client: client, metrics: m}
}

func (p *Publisher) publish(subject string, event interface{}) error {
	if p == nil || p.client == nil {
		return nil
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.client.Publish(subject, data); err != nil {
		return err
	}
	if p.metrics != nil {
		p.metrics.NATSMessagesPublished.WithLabelValues(subject).Inc()
	}
	return nil
}

func newBaseEvent(eventType EventType) BaseEvent {
	return BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now().UTC(),
		Source:    "trading-admin-backend",
		Version:   "1.0",
	}
}

// VisitorTracked publishes a visitor tracked event
func (p *Publisher) VisitorTracked(ctx context.Context, ip, userAgent string) error {
	event := VisitorTrackedEvent{
		BaseEvent: newBaseEvent(EventVisitorTracked),
		IP:        ip,
		UserAgent: userAgent,
	}
	return p.publish(string(EventVisitorTracked), event)
}

// CacheWarmed publishes a cache warmed event after a prefetch run
func (p *Publisher) CacheWarmed(ctx context.Context, actorID uuid.UUID, resources []string, failed int) error {
	event := CacheWarmedEvent{
		BaseEvent: newBaseEvent(EventCacheWarmed),
		ActorID:   actorID,
		Resources: resources,
		Failed:    failed,
	}
	return p.publish(string(EventCacheWarmed), event)
}
