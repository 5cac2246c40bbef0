package events

import (
	"github.com/hearthglen/vtt-tokenroll/internal/entities"
)

// EventType identifies a host lifecycle or document event
type EventType string

const (
	// EventInit fires once while the host is starting up
	EventInit EventType = "init"

	// EventReady fires once when the host environment is fully available
	EventReady EventType = "ready"

	// EventTokenCreated fires every time a token is placed on a map
	EventTokenCreated EventType = "token_created"
)

// Event is something the host announces to subscribers
type Event interface {
	GetType() EventType
}

// InitEvent is the startup announcement
type InitEvent struct{}

// GetType implements Event
func (e *InitEvent) GetType() EventType {
	return EventInit
}

// ReadyEvent is the environment-ready announcement
type ReadyEvent struct{}

// GetType implements Event
func (e *ReadyEvent) GetType() EventType {
	return EventReady
}

// TokenCreatedEvent carries the token that was just placed
type TokenCreatedEvent struct {
	Token *entities.Token
}

// GetType implements Event
func (e *TokenCreatedEvent) GetType() EventType {
	return EventTokenCreated
}
