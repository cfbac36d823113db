package models

import "time"

// SyncCursor identifies the synchronization position of one (user, device)
// pair. LastEventID is nil until the first acknowledged smart pull and never
// decreases afterwards; an explicit reset zeroes the whole cursor.
type SyncCursor struct {
	UserID         int64      `json:"user_id"`
	DeviceID       string     `json:"device_id"`
	LastEventID    *int64     `json:"last_event_id,omitempty"`
	LastSyncAt     time.Time  `json:"last_sync_at"`
	PendingChanges int        `json:"pending_changes"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`
}

// EventID returns the cursor position, or 0 when no event has been
// acknowledged yet.
func (c SyncCursor) EventID() int64 {
	if c.LastEventID == nil {
		return 0
	}
	return *c.LastEventID
}
