package events

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/hotline-inc/hotline/internal/shared/logger"
)

// SyncEventDispatcher delivers each event to its handlers on the caller's
// goroutine, in subscription order. A failing or panicking handler is logged
// and does not stop delivery to the remaining handlers.
type SyncEventDispatcher struct {
	handlers map[string][]EventHandler
	mu       sync.RWMutex
	logger   logger.Interface
}

// NewSyncEventDispatcher creates a new synchronous event dispatcher
func NewSyncEventDispatcher(log logger.Interface) *SyncEventDispatcher {
	return &SyncEventDispatcher{
		handlers: make(map[string][]EventHandler),
		logger:   log,
	}
}

// Publish delivers a single event. The returned error joins every handler
// failure; callers treat it as advisory since the state change is already committed.
func (d *SyncEventDispatcher) Publish(ctx context.Context, event DomainEvent) error {
	d.mu.RLock()
	handlers := append([]EventHandler(nil), d.handlers[event.GetEventType()]...)
	d.mu.RUnlock()

	var errs []error
	for _, h := range handlers {
		if !h.CanHandle(event.GetEventType()) {
			continue
		}
		if err := d.deliver(ctx, h, event); err != nil {
			d.logger.Warnw("event handler failed",
				"event_type", event.GetEventType(),
				"aggregate_id", event.GetAggregateID(),
				"error", err,
			)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// PublishAll publishes multiple events
func (d *SyncEventDispatcher) PublishAll(ctx context.Context, events []DomainEvent) error {
	var errs []error
	for _, event := range events {
		if err := d.Publish(ctx, event); err != nil {
			errs = append(errs, fmt.Errorf("event %s: %w", event.GetEventType(), err))
		}
	}
	return errors.Join(errs...)
}

func (d *SyncEventDispatcher) deliver(ctx context.Context, h EventHandler, event DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Errorw("event handler panicked",
				"event_type", event.GetEventType(),
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return h.Handle(ctx, event)
}

// Subscribe registers a handler for specific event types
func (d *SyncEventDispatcher) Subscribe(eventType string, handler EventHandler) error {
	if eventType == "" {
		return fmt.Errorf("event type cannot be empty")
	}
	if handler == nil {
		return fmt.Errorf("handler cannot be nil")
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
	return nil
}

// Unsubscribe removes a handler for specific event types
func (d *SyncEventDispatcher) Unsubscribe(eventType string, handler EventHandler) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	handlers, exists := d.handlers[eventType]
	if !exists {
		return nil
	}

	kept := make([]EventHandler, 0, len(handlers))
	for _, h := range handlers {
		if h != handler {
			kept = append(kept, h)
		}
	}

	if len(kept) == 0 {
		delete(d.handlers, eventType)
	} else {
		d.handlers[eventType] = kept
	}
	return nil
}

// FuncHandler adapts a function to EventHandler for a fixed set of event types.
type FuncHandler struct {
	eventTypes map[string]bool
	fn         func(context.Context, DomainEvent) error
}

// NewFuncHandler creates a handler that accepts the listed event types.
func NewFuncHandler(fn func(context.Context, DomainEvent) error, eventTypes ...string) *FuncHandler {
	types := make(map[string]bool, len(eventTypes))
	for _, t := range eventTypes {
		types[t] = true
	}
	return &FuncHandler{eventTypes: types, fn: fn}
}

func (h *FuncHandler) Handle(ctx context.Context, event DomainEvent) error {
	if h.fn == nil {
		return nil
	}
	return h.fn(ctx, event)
}

func (h *FuncHandler) CanHandle(eventType string) bool {
	return h.eventTypes[eventType]
}
