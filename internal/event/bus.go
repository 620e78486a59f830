package event

import (
	"log"
	"runtime/debug"
	"sync"

	"go.uber.org/atomic"
)

// Handler is a function that handles an event.
type Handler func(Event)

// Subscription is a cancellable handle for a registered handler.
// Cancel removes the handler from the bus; cancelling twice is a no-op.
type Subscription struct {
	bus       *Bus
	id        uint64
	eventType string
	once      sync.Once
}

// Cancel removes the subscription from the bus.
func (s *Subscription) Cancel() {
	if s == nil || s.bus == nil {
		return
	}
	s.once.Do(func() {
		s.bus.remove(s.eventType, s.id)
	})
}

// subscriber pairs a handler with its subscription ID.
type subscriber struct {
	id      uint64
	handler Handler
}

// Bus is a simple synchronous pub-sub event bus.
// It allows components to communicate without direct dependencies.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[string][]subscriber // eventType -> subscribers
	nextID      atomic.Uint64
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[string][]subscriber),
	}
}

// Subscribe registers a handler for a specific event type.
// The returned Subscription removes the handler when cancelled.
func (b *Bus) Subscribe(eventType string, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID.Inc()
	b.subscribers[eventType] = append(b.subscribers[eventType], subscriber{
		id:      id,
		handler: handler,
	})

	return &Subscription{bus: b, id: id, eventType: eventType}
}

// SubscribeAll registers a handler for all event types.
// The handler will be called for every published event.
func (b *Bus) SubscribeAll(handler Handler) *Subscription {
	return b.Subscribe("*", handler)
}

// remove deletes a subscriber by type and ID.
func (b *Bus) remove(eventType string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subscribers[eventType]
	for i, sub := range subs {
		if sub.id == id {
			b.subscribers[eventType] = append(subs[:i], subs[i+1:]...)
			return
		}
	}
}

// Publish dispatches an event to all registered handlers.
// Specific handlers (subscribed to this event type) are called first,
// followed by wildcard handlers (subscribed via SubscribeAll).
// Within each group, handlers are called in registration order.
// If a handler panics, the panic is logged, recovered, and publishing
// continues to remaining handlers.
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	eventType := event.EventType()

	specific := make([]subscriber, len(b.subscribers[eventType]))
	copy(specific, b.subscribers[eventType])

	wildcard := make([]subscriber, len(b.subscribers["*"]))
	copy(wildcard, b.subscribers["*"])

	b.mu.RUnlock()

	for _, sub := range specific {
		b.safeCall(sub.handler, event)
	}
	for _, sub := range wildcard {
		b.safeCall(sub.handler, event)
	}
}

// safeCall invokes a handler and recovers from any panics.
// Panics are logged with stack traces so one misbehaving handler cannot
// block event delivery to the others.
func (b *Bus) safeCall(handler Handler, event Event) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: event handler panicked for event %s: %v\n%s",
				event.EventType(), r, debug.Stack())
		}
	}()
	handler(event)
}

// SubscriberCount returns the total number of active subscriptions.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	count := 0
	for _, subs := range b.subscribers {
		count += len(subs)
	}
	return count
}
