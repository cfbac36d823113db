// Package events defines the notification surface of the sync layer.
// Engines and the orchestrator emit lifecycle events through a Sink so that
// embedding applications can observe sync progress without polling.
package events

import (
	"context"
	"time"
)

// Event names emitted by the sync layer.
const (
	SyncStarted      = "sync.started"
	SyncCompleted    = "sync.completed"
	SyncFailed       = "sync.failed"
	ConflictDetected = "sync.conflict.detected"
	ConflictResolved = "sync.conflict.resolved"
	UpdatesAvailable = "updates.available"
)

// Event is a single lifecycle notification.
type Event struct {
	Name       string         `json:"name"`
	OccurredAt time.Time      `json:"occurred_at"`
	Fields     map[string]any `json:"fields,omitempty"`
}

// Sink receives lifecycle events. Implementations must be safe for
// concurrent use and must not block the caller for long; slow consumers
// should buffer or drop.
type Sink interface {
	Emit(ctx context.Context, event Event)
}

// NewEvent constructs an Event stamped with the current time.
func NewEvent(name string, fields map[string]any) Event {
	return Event{
		Name:       name,
		OccurredAt: time.Now().UTC(),
		Fields:     fields,
	}
}
