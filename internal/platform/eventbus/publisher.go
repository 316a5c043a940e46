// Package eventbus implements the EventPublisher contract and its
// config-routed transports (NATS, Kafka, outbound webhook).
package eventbus

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nielsbergsma/blimpco/internal/platform/logging"
	"go.uber.org/zap"
)

// Event is anything publishable: a stable name plus a JSON-serializable
// payload.
type Event struct {
	Name    string
	Payload interface{}
}

// Destination is one transport an event can be routed to.
type Destination interface {
	Name() string
	Send(ctx context.Context, event Event) error
}

// Publisher fans an event out to every destination configured for its name.
type Publisher struct {
	destinations map[string][]Destination
	all          []Destination
	logger       *logging.Logger
}

// NewPublisher builds a Publisher. routes maps event name to the names of
// the destinations (already present in destinations) it should be sent to;
// an event name absent from routes is sent to every destination.
func NewPublisher(destinations []Destination, routes map[string][]string, logger *logging.Logger) *Publisher {
	byName := make(map[string]Destination, len(destinations))
	for _, d := range destinations {
		byName[d.Name()] = d
	}
	resolved := make(map[string][]Destination, len(routes))
	for event, names := range routes {
		for _, n := range names {
			if d, ok := byName[n]; ok {
				resolved[event] = append(resolved[event], d)
			}
		}
	}
	return &Publisher{destinations: resolved, all: destinations, logger: logger}
}

// Send publishes event to every destination routed for its name (or all
// destinations if unrouted), returning the first error encountered.
func (p *Publisher) Send(ctx context.Context, event Event) error {
	targets, ok := p.destinations[event.Name]
	if !ok {
		targets = p.all
	}

	envelope := struct {
		Name        string      `json:"event_name"`
		Payload     interface{} `json:"payload"`
		PublishedAt time.Time   `json:"published_at"`
	}{Name: event.Name, Payload: event.Payload, PublishedAt: time.Now()}

	body, err := json.Marshal(envelope)
	if err != nil {
		return err
	}

	for _, dest := range targets {
		if err := dest.Send(ctx, Event{Name: event.Name, Payload: json.RawMessage(body)}); err != nil {
			if p.logger != nil {
				p.logger.WithError(err).Error("failed to publish event", zap.String("destination", dest.Name()), zap.String("event", event.Name))
			}
			return err
		}
	}
	return nil
}
