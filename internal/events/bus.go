package events

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
)

// EventListener processes events
type EventListener interface {
	HandleEvent(ctx context.Context, event Event) error
	Priority() int
	ID() string
}

// Bus manages event distribution. It stands in for the host's hook
// registration facility.
type Bus struct {
	listeners map[EventType][]registration
	mu        sync.RWMutex
}

type registration struct {
	listener EventListener
	once     bool
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		listeners: make(map[EventType][]registration),
	}
}

// Subscribe adds a listener for a specific event type
func (b *Bus) Subscribe(eventType EventType, listener EventListener) {
	b.subscribe(eventType, listener, false)
}

// SubscribeOnce adds a listener that is removed after its first delivery.
// Startup and ready hooks register this way.
func (b *Bus) SubscribeOnce(eventType EventType, listener EventListener) {
	b.subscribe(eventType, listener, true)
}

func (b *Bus) subscribe(eventType EventType, listener EventListener, once bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners[eventType] = append(b.listeners[eventType], registration{listener: listener, once: once})

	// Sort by priority
	sort.SliceStable(b.listeners[eventType], func(i, j int) bool {
		return b.listeners[eventType][i].listener.Priority() < b.listeners[eventType][j].listener.Priority()
	})

	log.Printf("HookBus: Subscribed listener %s to event %s with priority %d",
		listener.ID(), eventType, listener.Priority())
}

// Unsubscribe removes a listener
func (b *Bus) Unsubscribe(eventType EventType, listenerID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.listeners[eventType]
	for i, reg := range regs {
		if reg.listener.ID() != listenerID {
			continue
		}
		b.listeners[eventType] = append(regs[:i], regs[i+1:]...)
		log.Printf("HookBus: Unsubscribed listener %s from event %s", listenerID, eventType)
		return
	}
}

// Emit sends an event to all registered listeners in priority order
func (b *Bus) Emit(ctx context.Context, event Event) error {
	b.mu.Lock()
	regs := make([]registration, len(b.listeners[event.GetType()]))
	copy(regs, b.listeners[event.GetType()])

	// Drop once-listeners before delivery so a re-entrant Emit cannot
	// deliver to them twice
	kept := b.listeners[event.GetType()][:0]
	for _, reg := range b.listeners[event.GetType()] {
		if !reg.once {
			kept = append(kept, reg)
		}
	}
	b.listeners[event.GetType()] = kept
	b.mu.Unlock()

	log.Printf("HookBus: Emitting event %s with %d listeners", event.GetType(), len(regs))

	for _, reg := range regs {
		if err := reg.listener.HandleEvent(ctx, event); err != nil {
			return fmt.Errorf("listener %s failed: %w", reg.listener.ID(), err)
		}
	}

	return nil
}

// Clear removes all listeners
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.listeners = make(map[EventType][]registration)
	log.Printf("HookBus: Cleared all listeners")
}

// ListenerFunc adapts a function to the EventListener interface
type ListenerFunc struct {
	ListenerID       string
	ListenerPriority int
	Handler          func(ctx context.Context, event Event) error
}

// HandleEvent implements EventListener
func (f *ListenerFunc) HandleEvent(ctx context.Context, event Event) error {
	return f.Handler(ctx, event)
}

// Priority implements EventListener
func (f *ListenerFunc) Priority() int {
	return f.ListenerPriority
}

// ID implements EventListener
func (f *ListenerFunc) ID() string {
	return f.ListenerID
}
