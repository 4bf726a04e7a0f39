package event

import (
	"context"
	"fmt"
	"sync"

	"github.com/bigledger/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// InMemoryEventBus implements the synchronous in-process event bus. Bulk
// mutations publish inside their storage transaction, so a handler error
// must propagate to the publisher: the first failure aborts the call and
// with it the enclosing transaction.
type InMemoryEventBus struct {
	registry *HandlerRegistry
	logger   *zap.Logger
}

// NewInMemoryEventBus creates a new in-memory event bus
func NewInMemoryEventBus(logger *zap.Logger) *InMemoryEventBus {
	return &InMemoryEventBus{
		registry: NewHandlerRegistry(),
		logger:   logger,
	}
}

// Publish delivers the events in order, each to all of its handlers.
// The first handler error fails the whole call.
func (b *InMemoryEventBus) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	for _, evt := range events {
		for _, handler := range b.registry.GetHandlers(evt.EventType()) {
			if err := b.dispatch(ctx, handler, evt); err != nil {
				b.logger.Error("event handler failed",
					zap.String("event_type", evt.EventType()),
					zap.String("event_id", evt.EventID().String()),
					zap.Error(err),
				)
				return err
			}
		}
	}
	return nil
}

// PublishAll fans the batch out concurrently and joins on every handler of
// every event. The first handler error is returned after all deliveries
// finished, so the caller never advances past a half-delivered batch.
func (b *InMemoryEventBus) PublishAll(ctx context.Context, events []shared.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, evt := range events {
		wg.Add(1)
		go func(evt shared.DomainEvent) {
			defer wg.Done()
			for _, handler := range b.registry.GetHandlers(evt.EventType()) {
				if err := b.dispatch(ctx, handler, evt); err != nil {
					b.logger.Error("event handler failed",
						zap.String("event_type", evt.EventType()),
						zap.String("event_id", evt.EventID().String()),
						zap.Error(err),
					)
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					return
				}
			}
		}(evt)
	}
	wg.Wait()
	return firstErr
}

// Subscribe registers a handler for specific event types
func (b *InMemoryEventBus) Subscribe(handler shared.EventHandler, eventTypes ...string) {
	if len(eventTypes) == 0 {
		eventTypes = handler.EventTypes()
	}
	b.registry.Register(handler, eventTypes...)
	b.logger.Debug("handler subscribed", zap.Strings("event_types", eventTypes))
}

// Unsubscribe removes a handler
func (b *InMemoryEventBus) Unsubscribe(handler shared.EventHandler) {
	b.registry.Unregister(handler)
	b.logger.Debug("handler unsubscribed")
}

// dispatch invokes one handler, converting a panic into an error so a
// misbehaving subscriber aborts the operation instead of the process.
func (b *InMemoryEventBus) dispatch(ctx context.Context, handler shared.EventHandler, evt shared.DomainEvent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				zap.String("event_type", evt.EventType()),
				zap.Any("panic", r),
			)
			err = fmt.Errorf("event handler panicked on %s: %v", evt.EventType(), r)
		}
	}()
	return handler.Handle(ctx, evt)
}

// Ensure InMemoryEventBus implements EventBus
var _ shared.EventBus = (*InMemoryEventBus)(nil)
