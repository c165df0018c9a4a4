// Package lifecycle dispatches account lifecycle events to the components that
// keep per-account records in step with the account itself.
package lifecycle

import (
	"context"
	"fmt"
	"sync"
	"time"
)

type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

type Event struct {
	Type       EventType `json:"type"`
	AccountID  uint      `json:"account_id"`
	Username   string    `json:"username"`
	// PostIDs lists the posts removed with the account on deleted events.
	PostIDs    []uint    `json:"post_ids,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Handler reacts to an account event. A returned error is reported back to the
// component that raised the event.
type Handler interface {
	HandleAccountEvent(ctx context.Context, event Event) error
}

type HandlerFunc func(ctx context.Context, event Event) error

func (f HandlerFunc) HandleAccountEvent(ctx context.Context, event Event) error {
	return f(ctx, event)
}

// Notifier fans events out to its subscribers synchronously, in subscription
// order.
type Notifier struct {
	mu       sync.RWMutex
	handlers []namedHandler
}

type namedHandler struct {
	name    string
	handler Handler
}

func NewNotifier() *Notifier {
	return &Notifier{}
}

func (n *Notifier) Subscribe(name string, handler Handler) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.handlers = append(n.handlers, namedHandler{name: name, handler: handler})
}

// Notify stops at the first failing handler.
func (n *Notifier) Notify(ctx context.Context, event Event) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	n.mu.RLock()
	handlers := make([]namedHandler, len(n.handlers))
	copy(handlers, n.handlers)
	n.mu.RUnlock()

	for _, h := range handlers {
		if err := h.handler.HandleAccountEvent(ctx, event); err != nil {
			return fmt.Errorf("%s handler failed on account %s event: %w", h.name, event.Type, err)
		}
	}
	return nil
}
