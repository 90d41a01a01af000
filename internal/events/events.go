// Package events publishes change events for user documents so downstream
// consumers can follow profile and goal mutations without polling the store.
package events

import (
	"context"
	"time"
)

// Event describes one mutation of a user document.
type Event struct {
	Action       string    `json:"action"`
	UserID       string    `json:"user_id"`
	ResourceType string    `json:"resource_type"`
	ResourceID   string    `json:"resource_id"`
	Changes      string    `json:"changes,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Publisher delivers events. Publish must not block on broker round trips.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close()
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

// Publish implements Publisher.
func (Nop) Publish(context.Context, Event) error { return nil }

// Close implements Publisher.
func (Nop) Close() {}
