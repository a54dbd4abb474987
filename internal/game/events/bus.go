package events

import (
	"sync"

	"github.com/rs/zerolog"
)

// EventBus delivers each published event to every interested subscriber and
// to the handlers registered for its type, in the publishing goroutine.
type EventBus struct {
	mu          sync.RWMutex
	subscribers map[string]Subscriber
	handlers    map[string][]EventHandler
	logger      zerolog.Logger
}

var _ Bus = (*EventBus)(nil)

// NewEventBus creates an empty bus
func NewEventBus(logger zerolog.Logger) *EventBus {
	return &EventBus{
		subscribers: make(map[string]Subscriber),
		handlers:    make(map[string][]EventHandler),
		logger:      logger.With().Str("component", "EventBus").Logger(),
	}
}

// Subscribe registers s under its ID, replacing any subscriber with that ID
func (eb *EventBus) Subscribe(s Subscriber) {
	eb.mu.Lock()
	eb.subscribers[s.ID()] = s
	eb.mu.Unlock()

	eb.logger.Debug().Str("subscriber_id", s.ID()).Msg("Subscriber added")
}

// SubscribeFunc calls handler for every event of the given type
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) {
	eb.mu.Lock()
	eb.handlers[eventType] = append(eb.handlers[eventType], handler)
	eb.mu.Unlock()

	eb.logger.Debug().Str("event_type", eventType).Msg("Handler added")
}

// Publish delivers e synchronously. A panicking receiver is logged and
// skipped.
func (eb *EventBus) Publish(e Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	eventType := e.Type()
	for id, s := range eb.subscribers {
		if s.InterestedIn(eventType) {
			eb.deliver(e, id, s.HandleEvent)
		}
	}
	for _, h := range eb.handlers[eventType] {
		eb.deliver(e, "func", h)
	}
}

func (eb *EventBus) deliver(e Event, receiver string, handle EventHandler) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("receiver", receiver).
				Str("event_type", e.Type()).
				Str("match_id", e.MatchID()).
				Interface("panic", r).
				Msg("Event receiver panicked")
		}
	}()
	handle(e)
}
