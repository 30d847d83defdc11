package bus

import (
	"sync"

	"github.com/google/uuid"
)

// Handler is the callback invoked for each published event.
//
// Handlers run synchronously on the publisher's goroutine: Publish does
// not return until every handler subscribed at emission time has been
// invoked. Handlers must not block for extended periods and must not
// call Subscribe/Unsubscribe/Publish on the same bus (deadlock).
type Handler[T any] func(event T)

// Bus is a typed in-process publish/subscribe channel.
//
// It decouples a single producer from an open-ended number of consumers
// without the producer holding references to them. Delivery is
// synchronous and guaranteed for every listener subscribed at the time
// of emission; ordering between listeners is unspecified.
//
// All methods are safe for concurrent use.
type Bus[T any] struct {
	mu       sync.RWMutex
	handlers map[string]Handler[T]
}

// New creates an empty bus.
func New[T any]() *Bus[T] {
	return &Bus[T]{
		handlers: make(map[string]Handler[T]),
	}
}

// Subscribe registers a handler and returns its subscription ID.
//
// Every Subscribe must be paired with an Unsubscribe when the consumer
// is torn down, otherwise the handler leaks and keeps firing.
func (b *Bus[T]) Subscribe(handler Handler[T]) string {
	id := uuid.NewString()

	b.mu.Lock()
	b.handlers[id] = handler
	b.mu.Unlock()

	return id
}

// Unsubscribe removes the handler registered under id.
// Unsubscribing an unknown ID is a no-op.
func (b *Bus[T]) Unsubscribe(id string) {
	b.mu.Lock()
	delete(b.handlers, id)
	b.mu.Unlock()
}

// Publish delivers event to every currently subscribed handler before
// returning.
func (b *Bus[T]) Publish(event T) {
	// Snapshot under the read lock so a handler unsubscribing another
	// handler mid-delivery cannot mutate the map we iterate.
	b.mu.RLock()
	handlers := make([]Handler[T], 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}

// SubscriberCount returns the number of active subscriptions.
// Useful for verifying symmetric subscribe/unsubscribe in tests.
func (b *Bus[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers)
}
