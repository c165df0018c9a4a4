package queue

import (
	"context"

	"postboard/pkg/lifecycle"
	"postboard/pkg/logger"
)

// EventPublisher is the publishing half of Client.
type EventPublisher interface {
	PublishAccountEvent(ctx context.Context, event lifecycle.Event) error
}

var _ EventPublisher = (*Client)(nil)

// Forwarder relays account lifecycle events to the message broker. Broker
// failures are logged and swallowed so they never fail the account operation.
type Forwarder struct {
	publisher EventPublisher
	logger    *logger.Logger
}

func NewForwarder(publisher EventPublisher, log *logger.Logger) *Forwarder {
	return &Forwarder{publisher: publisher, logger: log}
}

func (f *Forwarder) HandleAccountEvent(ctx context.Context, event lifecycle.Event) error {
	if err := f.publisher.PublishAccountEvent(ctx, event); err != nil {
		f.logger.Error("[RABBITMQ] Failed to forward account event: %v (type=%s, account_id=%d)", err, event.Type, event.AccountID)
	}
	return nil
}
