package shared

import "context"

// EventHandler handles domain events
type EventHandler interface {
	// Handle processes a domain event. A non-nil error aborts the
	// operation that published the event.
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes returns the event types this handler is interested in.
	// An empty slice means the handler receives all events.
	EventTypes() []string
}

// EventPublisher publishes domain events. Publication is synchronous:
// every subscribed handler runs before Publish returns, and the first
// handler error fails the whole call. Bulk mutations rely on this so a
// failing subscriber rolls back the enclosing transaction.
type EventPublisher interface {
	// Publish delivers the events in order, each to all of its handlers.
	Publish(ctx context.Context, events ...DomainEvent) error
	// PublishAll delivers the events concurrently and waits for every
	// handler of every event to finish before returning. Used for batch
	// fan-out where event order within the batch does not matter.
	PublishAll(ctx context.Context, events []DomainEvent) error
}

// EventSubscriber subscribes to domain events
type EventSubscriber interface {
	// Subscribe registers a handler for specific event types.
	// If no event types are provided, the handler's own EventTypes are used.
	Subscribe(handler EventHandler, eventTypes ...string)
	// Unsubscribe removes a handler from the subscription list
	Unsubscribe(handler EventHandler)
}

// EventBus combines publisher and subscriber capabilities
type EventBus interface {
	EventPublisher
	EventSubscriber
}
