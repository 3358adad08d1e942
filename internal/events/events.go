// Package events provides the in-process event bus used to broadcast
// catalog and selection events to subscribers (websocket stream, jobs).
package events

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// EventType identifies a category of system event
type EventType string

const (
	// CatalogReloaded is emitted after a successful atomic snapshot swap
	CatalogReloaded EventType = "catalog_reloaded"
	// CatalogReloadFailed is emitted when a reload fails and the previous
	// snapshot is kept in place
	CatalogReloadFailed EventType = "catalog_reload_failed"
	// SelectionCompleted is emitted after every selection call
	SelectionCompleted EventType = "selection_completed"
	// PricesStale is emitted by the staleness sweep when valuations exceed
	// the configured window
	PricesStale EventType = "prices_stale"
)

// Event is a single emitted event
type Event struct {
	Type      EventType              `json:"type"`
	Module    string                 `json:"module"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Handler receives emitted events. Handlers must not block: slow consumers
// should buffer on their own channel.
type Handler func(event *Event)

// Bus is a minimal publish/subscribe event bus. Subscriptions are
// process-lifetime; there is no unsubscribe on the hot path.
type Bus struct {
	mu       sync.RWMutex
	handlers map[int]Handler
	nextID   int
	log      zerolog.Logger
}

// NewBus creates a new event bus
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{
		handlers: make(map[int]Handler),
		log:      log.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe registers a handler for all events and returns an
// unsubscribe function.
func (b *Bus) Subscribe(handler Handler) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = handler
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.handlers, id)
		b.mu.Unlock()
	}
}

// Emit dispatches an event to all subscribers synchronously.
func (b *Bus) Emit(eventType EventType, module string, data map[string]interface{}) {
	event := &Event{
		Type:      eventType,
		Module:    module,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()

	for _, h := range handlers {
		h(event)
	}

	b.log.Debug().
		Str("type", string(eventType)).
		Str("module", module).
		Int("subscribers", len(handlers)).
		Msg("Event emitted")
}
