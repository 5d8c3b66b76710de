package nats

import (
	"fmt"
	"log"
	"time"

	"trading-admin-backend/internal/config"

	"github.com/nats-io/nats.go"
)

// StreamName is the JetStream stream holding admin dashboard events.
const StreamName = "ADMIN"

// Client represents a NATS JetStream client
type Client struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	cfg  config.NATSConfig
}

// NewClient creates a new NATS JetStream client
func NewClient(cfg config.NATSConfig) (*Client, error) {
	opts := []nats.Option{
		nats.Name(cfg.ClientID),
		nats.ReconnectWait(2 * time.Second),
		nats.MaxReconnects(-1), // Reconnect indefinitely
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				log.Printf("NATS disconnected: %v", err)
			} else {
				log.Println("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("NATS reconnected to %v", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Println("NATS connection closed")
		}),
	}

	conn, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	client := &Client{
		conn: conn,
		js:   js,
		cfg:  cfg,
	}

	if err := client.ensureStream(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to initialize stream: %w", err)
	}

	log.Println("NATS JetStream client initialized successfully")
	return client, nil
}

// ensureStream creates the admin event stream if it does not exist yet
func (c *Client) ensureStream() error {
	_, err := c.js.StreamInfo(StreamName)
	if err == nil {
		return nil
	}

	_, err = c.js.AddStream(&nats.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{"admin.>"},
		Retention: nats.LimitsPolicy,
		MaxAge:    7 * 24 * time.Hour,
		Storage:   nats.FileStorage,
	})
	if err != nil {
		return fmt.Errorf("failed to create stream %s: %w", StreamName, err)
	}
	return nil
}

// Close closes the NATS connection
func (c *Client) Close() {
	if c.conn != nil {
		c.conn.Close()
		log.Println("NATS connection closed")
	}
}

// HealthCheck reports whether the NATS connection is usable
func (c *Client) HealthCheck() error {
	if c == nil || c.conn == nil {
		return fmt.Errorf("NATS client not initialized")
	}
	if !c.conn.IsConnected() {
		return fmt.Errorf("NATS connection lost: %s", c.conn.Status())
	}
	return nil
}

// Publish publishes a message to a subject
func (c *Client) Publish(subject string, data []byte) error {
	_, err := c.js.Publish(subject, data)
	if err != nil {
		return fmt.Errorf("failed to publish message to %s: %w", subject, err)
	}
	return nil
}

// Subscribe creates a durable subscription to a subject
func (c *Client) Subscribe(subject string, handler nats.MsgHandler) (*nats.Subscription, error) {
	sub, err := c.js.Subscribe(subject, handler, nats.Durable(c.cfg.DurableName))
	if err != nil {
		return nil, fmt.Errorf("failed to subscribe to %s: %w", subject, err)
	}
	return sub, nil
}
