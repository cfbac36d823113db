package store

import (
	"context"
	"time"

	"github.com/adaptsync/adaptsync/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/sync_state_repository_mock.go -package=mock

// OutboxFilter narrows ListPending results. Zero values mean "no filter".
type OutboxFilter struct {
	EntityType string
	Limit      int
}

// ConflictFilter narrows ListConflicts results. Zero values mean "no filter".
type ConflictFilter struct {
	EntityType string
	EntityID   int64
	Limit      int
}

// SyncStateRepository persists, per (user, device) pair, the last
// acknowledged server cursor, the outbox of pending local changes, and
// unresolved conflict records.
//
// The cursor's last_event_id is monotonic: writes that would move it
// backwards fail with ErrCursorRegression. The pending-changes count
// reported on the cursor is always derived from the outbox, so it cannot
// drift.
type SyncStateRepository interface {
	// EnsureCursor returns the cursor for the pair, creating a zero cursor
	// on first use.
	EnsureCursor(ctx context.Context, userID int64, deviceID string) (models.SyncCursor, error)

	// GetCursor returns the cursor for the pair, or ErrCursorNotFound.
	GetCursor(ctx context.Context, userID int64, deviceID string) (models.SyncCursor, error)

	// AdvanceCursor moves the cursor's last_event_id forward to eventID and
	// stamps last_sync_at. Returns ErrCursorRegression if eventID is behind
	// the stored position.
	AdvanceCursor(ctx context.Context, userID int64, deviceID string, eventID int64, at time.Time) error

	// TouchCursor stamps last_sync_at without moving last_event_id. Used by
	// pulls that found no new data.
	TouchCursor(ctx context.Context, userID int64, deviceID string, at time.Time) error

	// ResetCursor zeroes the cursor and discards the conflict history for
	// the pair. The outbox is left untouched.
	ResetCursor(ctx context.Context, userID int64, deviceID string) error

	// Enqueue stages a pending change in the outbox. Returns
	// ErrDuplicateChange when the idempotency key is already staged.
	Enqueue(ctx context.Context, change models.PendingChange) error

	// ListPending returns staged changes in staging order, optionally
	// filtered.
	ListPending(ctx context.Context, filter OutboxFilter) ([]models.PendingChange, error)

	// RemovePending removes the changes with the given idempotency keys.
	// Unknown keys are ignored.
	RemovePending(ctx context.Context, idempotencyKeys ...string) error

	// PendingCount returns the number of staged changes.
	PendingCount(ctx context.Context) (int, error)

	// SaveConflicts records server-reported conflicts. Saving an existing
	// conflict id overwrites the stored record.
	SaveConflicts(ctx context.Context, conflicts ...models.Conflict) error

	// ListConflicts returns unresolved conflicts, optionally filtered.
	ListConflicts(ctx context.Context, filter ConflictFilter) ([]models.Conflict, error)

	// DeleteConflict removes a resolved conflict. Returns
	// ErrConflictNotFound when the id has no stored record.
	DeleteConflict(ctx context.Context, conflictID string) error
}
