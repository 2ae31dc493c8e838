package events

import "context"

// Publisher sends events to the bus.
type Publisher interface {
	// Publish delivers the event using its Type as routing key.
	Publish(ctx context.Context, event *Event) error
	// Close releases the underlying connection.
	Close() error
}

// Handler processes one delivered event. Returning an error requeues the delivery.
type Handler func(ctx context.Context, event *Event) error

// Consumer delivers events from a queue to a Handler until ctx is done.
type Consumer interface {
	Run(ctx context.Context, handler Handler) error
	Close() error
}
