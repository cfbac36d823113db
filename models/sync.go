package models

import "time"

// PushRequest submits a batch of pending changes grouped by entity type.
type PushRequest struct {
	DeviceID  string                     `json:"device_id"`
	Changes   map[string][]PendingChange `json:"changes"`
	Timestamp time.Time                  `json:"timestamp"`
}

// FailedChange is a permanent per-change rejection (validation and the like);
// failed changes are reported and never retried.
type FailedChange struct {
	IdempotencyKey string `json:"idempotency_key"`
	EntityType     string `json:"entity_type"`
	Reason         string `json:"reason"`
}

// PushResponse partitions the submitted batch into applied, permanently
// rejected and conflicting changes.
type PushResponse struct {
	Successful []string       `json:"successful"`
	Failed     []FailedChange `json:"failed"`
	Conflicts  []Conflict     `json:"conflicts"`
}

// PullRequest asks for full entity payloads of the given types, optionally
// restricted to records modified since Since.
type PullRequest struct {
	DeviceID  string     `json:"device_id"`
	Models    []string   `json:"models,omitempty"`
	Since     *time.Time `json:"since,omitempty"`
	BatchSize int        `json:"batch_size,omitempty"`
}

// PullResponse carries full entity payloads grouped by entity type.
type PullResponse struct {
	Data         map[string][]ValueMap `json:"data"`
	TotalRecords int                   `json:"total_records"`
	SyncedAt     time.Time             `json:"synced_at"`
}

// Event is one entry of the server's change log. IDs are assigned by the
// server and strictly increase.
type Event struct {
	ID         int64     `json:"id"`
	EntityType string    `json:"entity_type"`
	EntityID   int64     `json:"entity_id"`
	Action     string    `json:"action"`
	Payload    ValueMap  `json:"payload,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// SmartPullRequest asks only for change-log events past the device's
// acknowledged cursor.
type SmartPullRequest struct {
	UserID   int64    `json:"user_id"`
	DeviceID string   `json:"device_id"`
	AppType  string   `json:"app_type,omitempty"`
	Models   []string `json:"models,omitempty"`
	Limit    int      `json:"limit,omitempty"`
}

// SmartPullResponse reports new events since the cursor. NextSyncToken is an
// opaque cursor token to acknowledge once events have been applied durably.
type SmartPullResponse struct {
	HasUpdates     bool      `json:"has_updates"`
	NewEventsCount int       `json:"new_events_count"`
	Events         []Event   `json:"events"`
	NextSyncToken  string    `json:"next_sync_token"`
	LastSyncTime   time.Time `json:"last_sync_time"`
}

// CheckUpdatesResponse is the lightweight polling answer used by the periodic
// checker.
type CheckUpdatesResponse struct {
	HasUpdates    bool  `json:"has_updates"`
	PendingEvents int   `json:"pending_events"`
	LastEventID   int64 `json:"last_event_id"`
}

// ResolveConflictsRequest submits resolution decisions for server-reported
// conflicts.
type ResolveConflictsRequest struct {
	DeviceID    string       `json:"device_id"`
	Resolutions []Resolution `json:"resolutions"`
}

// ResolveConflictsResponse partitions resolutions into applied and failed.
type ResolveConflictsResponse struct {
	Resolved []string       `json:"resolved"`
	Failed   []FailedChange `json:"failed"`
}

// SyncStateResponse is the server's view of a device's sync state.
type SyncStateResponse struct {
	DeviceID       string    `json:"device_id"`
	LastSyncAt     time.Time `json:"last_sync_at"`
	PendingChanges int       `json:"pending_changes"`
	Metadata       ValueMap  `json:"metadata,omitempty"`
}

// ResetResponse acknowledges a server-side cursor reset.
type ResetResponse struct {
	Success bool `json:"success"`
}

// AckRequest acknowledges that events up to LastEventID have been applied
// durably on the device.
type AckRequest struct {
	DeviceID    string `json:"device_id"`
	LastEventID int64  `json:"last_event_id"`
	SyncToken   string `json:"sync_token,omitempty"`
}
