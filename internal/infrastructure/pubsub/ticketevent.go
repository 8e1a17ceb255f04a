// Package pubsub relays ticket lifecycle events between instances over Redis.
package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hotline-inc/hotline/internal/domain/shared/events"
	"github.com/hotline-inc/hotline/internal/shared/logger"
)

// TicketEventsChannel is the Redis channel ticket events are published on.
const TicketEventsChannel = "hotline:tickets:events"

// TicketEventMessage is the wire form of a relayed event.
type TicketEventMessage struct {
	Type       string          `json:"type"`
	TicketID   string          `json:"ticket_id"`
	OccurredAt int64           `json:"occurred_at"`
	Origin     string          `json:"origin"`
	Payload    json.RawMessage `json:"payload"`
}

// TicketEventHandler handles events received from other instances.
type TicketEventHandler func(ctx context.Context, msg TicketEventMessage)

// RedisTicketEventRelay publishes local ticket events to Redis and delivers
// events published by other instances to a handler. It implements
// events.EventHandler so it can subscribe to the local dispatcher.
type RedisTicketEventRelay struct {
	client *redis.Client
	origin string
	logger logger.Interface
}

func NewRedisTicketEventRelay(client *redis.Client, log logger.Interface) *RedisTicketEventRelay {
	return &RedisTicketEventRelay{
		client: client,
		origin: uuid.NewString(),
		logger: log,
	}
}

// Origin identifies this instance in relayed messages.
func (r *RedisTicketEventRelay) Origin() string {
	return r.origin
}

func (r *RedisTicketEventRelay) CanHandle(eventType string) bool {
	return strings.HasPrefix(eventType, "ticket.")
}

// Handle publishes event on TicketEventsChannel.
func (r *RedisTicketEventRelay) Handle(ctx context.Context, event events.DomainEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event payload: %w", err)
	}

	data, err := json.Marshal(TicketEventMessage{
		Type:       event.GetEventType(),
		TicketID:   event.GetAggregateID(),
		OccurredAt: event.GetOccurredAt().UnixMilli(),
		Origin:     r.origin,
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := r.client.Publish(ctx, TicketEventsChannel, data).Err(); err != nil {
		r.logger.Errorw("failed to publish ticket event",
			"event_type", event.GetEventType(),
			"ticket_id", event.GetAggregateID(),
			"error", err,
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	r.logger.Debugw("ticket event published",
		"event_type", event.GetEventType(),
		"ticket_id", event.GetAggregateID(),
	)
	return nil
}

// Subscribe blocks delivering events from other instances to handler until
// ctx is cancelled. Messages published by this instance are skipped.
func (r *RedisTicketEventRelay) Subscribe(ctx context.Context, handler TicketEventHandler) error {
	sub := r.client.Subscribe(ctx, TicketEventsChannel)
	defer sub.Close()

	// Wait for subscription confirmation
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("failed to subscribe to channel: %w", err)
	}

	r.logger.Infow("subscribed to ticket events", "channel", TicketEventsChannel)

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			r.logger.Infow("ticket event subscriber stopped", "reason", ctx.Err())
			return ctx.Err()

		case msg, ok := <-ch:
			if !ok {
				r.logger.Warnw("ticket event channel closed")
				return nil
			}

			var event TicketEventMessage
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				r.logger.Warnw("failed to unmarshal ticket event",
					"payload", msg.Payload,
					"error", err,
				)
				continue
			}
			if event.Origin == r.origin {
				continue
			}

			handler(ctx, event)
		}
	}
}
