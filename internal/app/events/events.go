package events

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"
)

// DomainEvent is implemented by every event emitted after a successful write.
type DomainEvent interface {
	EventName() string
	AggregateID() string
	OccurredAt() time.Time
}

// Publisher delivers encoded events to the broker. Implementations must be
// safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload []byte, headers map[string]string) error
}

// NoopPublisher drops every event; used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, string, string, []byte, map[string]string) error {
	return nil
}

// Emitter JSON-encodes domain events and hands them to the publisher. Publish
// failures are logged, never surfaced: a lost event must not fail the write
// that produced it.
type Emitter struct {
	Publisher   Publisher
	TopicPrefix string
	Logger      *slog.Logger
}

func (e Emitter) Emit(ctx context.Context, ev DomainEvent) {
	if e.Publisher == nil || ev == nil {
		return
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		if e.Logger != nil {
			e.Logger.Error("event encode failed", "event", ev.EventName(), "error", err)
		}
		return
	}
	topic := e.TopicPrefix + ev.EventName()
	headers := map[string]string{"occurred_at": ev.OccurredAt().UTC().Format(time.RFC3339)}
	if err := e.Publisher.Publish(ctx, topic, ev.AggregateID(), payload, headers); err != nil {
		if e.Logger != nil {
			e.Logger.Error("event publish failed", "topic", topic, "key", ev.AggregateID(), "error", err)
		}
	}
}

var _ Publisher = NoopPublisher{}
