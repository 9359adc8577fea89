// Package pubsub provides the typed event plumbing between background
// services and the TUI event loop.
package pubsub

import "context"

// EventType identifies the type of event.
type EventType string

const (
	// CreatedEvent is an event for when an item is created.
	CreatedEvent EventType = "created"
	// UpdatedEvent is an event for when an item is updated.
	UpdatedEvent EventType = "updated"
	// DeletedEvent is an event for when an item is deleted.
	DeletedEvent EventType = "deleted"
)

// Event is a typed event carrying a payload.
type Event[T any] struct {
	Type    EventType
	Payload T
}

// UpdateAvailableMsg is sent to the TUI when a newer release of the
// application was found on startup.
type UpdateAvailableMsg struct {
	CurrentVersion string
	LatestVersion  string
	IsDevelopment  bool
}

// Subscriber is the interface for types that can be subscribed to.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher is the interface for types that can publish events.
type Publisher[T any] interface {
	Publish(t EventType, payload T)
}
