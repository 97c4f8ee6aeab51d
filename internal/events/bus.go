package events

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"sync"
)

// EventListener processes events
type EventListener interface {
	HandleEvent(event Event) error
	Priority() int
	ID() string
}

// ListenerFunc adapts a function to EventListener
type ListenerFunc struct {
	ListenerID       string
	ListenerPriority int
	Handle           func(Event) error
}

func (l *ListenerFunc) HandleEvent(event Event) error { return l.Handle(event) }
func (l *ListenerFunc) Priority() int                 { return l.ListenerPriority }
func (l *ListenerFunc) ID() string                    { return l.ListenerID }

// Bus manages event distribution
type Bus struct {
	listeners map[EventType][]EventListener
	mu        sync.RWMutex
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[EventType][]EventListener),
	}
}

// Subscribe adds a listener for specific event types
func (b *Bus) Subscribe(listener EventListener, eventTypes ...EventType) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, eventType := range eventTypes {
		b.listeners[eventType] = append(b.listeners[eventType], listener)

		// Stable so listeners of equal priority keep subscription order
		sort.SliceStable(b.listeners[eventType], func(i, j int) bool {
			return b.listeners[eventType][i].Priority() < b.listeners[eventType][j].Priority()
		})
	}

	log.Printf("EventBus: Subscribed listener %s to %d event types with priority %d",
		listener.ID(), len(eventTypes), listener.Priority())
}

// Unsubscribe removes a listener from every event type
func (b *Bus) Unsubscribe(listenerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	removed := false
	for eventType, listeners := range b.listeners {
		kept := listeners[:0:0]
		for _, l := range listeners {
			if l.ID() == listenerID {
				removed = true
				continue
			}
			kept = append(kept, l)
		}
		b.listeners[eventType] = kept
	}

	if removed {
		log.Printf("EventBus: Unsubscribed listener %s", listenerID)
	}
}

// Emit sends an event to all registered listeners. Every listener runs even if
// an earlier one fails; the failures are joined.
func (b *Bus) Emit(event Event) error {
	b.mu.RLock()
	listeners := make([]EventListener, len(b.listeners[event.Type]))
	copy(listeners, b.listeners[event.Type])
	b.mu.RUnlock()

	var failures []error
	for _, listener := range listeners {
		if err := listener.HandleEvent(event); err != nil {
			log.Printf("EventBus: Listener %s failed on %s: %v", listener.ID(), event.Type, err)
			failures = append(failures, fmt.Errorf("listener %s failed: %w", listener.ID(), err))
		}
	}

	if len(failures) > 0 {
		return errors.Join(failures...)
	}
	return nil
}

// ListenerCount returns how many listeners receive eventType
func (b *Bus) ListenerCount(eventType EventType) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.listeners[eventType])
}

// Clear removes all listeners
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = make(map[EventType][]EventListener)
	log.Printf("EventBus: Cleared all listeners")
}
