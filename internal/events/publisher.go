// internal/events/publisher.go
package events

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"
)

// Publisher fans events out to whatever is listening.
type Publisher interface {
	Publish(event Event) error
}

// NATSPublisher publishes events as JSON messages on NATS subjects derived
// from the event type.
type NATSPublisher struct {
	conn          *nats.Conn
	subjectPrefix string
	logger        *slog.Logger
}

// NewNATSPublisher connects to the given NATS URL and returns a publisher.
func NewNATSPublisher(url, subjectPrefix string, logger *slog.Logger) (*NATSPublisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	return &NATSPublisher{
		conn:          conn,
		subjectPrefix: subjectPrefix,
		logger:        logger,
	}, nil
}

// Publish serializes the event and publishes it on "<prefix>.<event type>".
func (p *NATSPublisher) Publish(event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", event.Type(), err)
	}

	subject := p.subjectPrefix + "." + event.Type()
	if err := p.conn.Publish(subject, payload); err != nil {
		return fmt.Errorf("failed to publish event to %s: %w", subject, err)
	}

	p.logger.Debug("Event published", "subject", subject)
	return nil
}

// Close drains and closes the underlying NATS connection.
func (p *NATSPublisher) Close() error {
	return p.conn.Drain()
}

// NoopPublisher is an event publisher that does nothing. Used when no NATS
// URL is configured and in tests.
type NoopPublisher struct{}

// NewNoopPublisher creates a new no-op event publisher.
func NewNoopPublisher() *NoopPublisher {
	return &NoopPublisher{}
}

// Publish does nothing with the event.
func (*NoopPublisher) Publish(event Event) error {
	return nil
}
