// Package service implements the sync engines that sit between the local
// sync state store and the server adapter: the push engine, the pull engine,
// the conflict resolver, the adaptive query service and the orchestrator
// that drives them as one cycle.
package service

import (
	"context"

	"github.com/adaptsync/adaptsync/models"
)

// PushEngine delivers staged outbox changes to the server in one batch.
type PushEngine interface {
	// Push submits every staged change and returns the server's partition.
	// Applied and permanently rejected changes are removed from the outbox;
	// conflicting changes stay staged and their conflict records are saved.
	// A transport failure leaves the outbox exactly as it was.
	Push(ctx context.Context) (models.PushResponse, error)
}

// PullEngine fetches remote state, either as full payloads or as change-log
// events past the device's cursor. Neither mode advances the local cursor;
// callers acknowledge applied events explicitly via Ack.
type PullEngine interface {
	// PullBatch requests full entity payloads, used for initial sync and
	// after resets.
	PullBatch(ctx context.Context, req models.PullRequest) (models.PullResponse, error)

	// SmartPull requests change-log events past the acknowledged cursor.
	// When the server reports no updates, only last_sync_at is stamped.
	SmartPull(ctx context.Context, limit int) (models.SmartPullResponse, error)

	// Ack reports that events up to lastEventID have been applied durably,
	// advancing the server cursor and then the local one.
	Ack(ctx context.Context, lastEventID int64, syncToken string) error
}

// ConflictResolver submits resolution decisions for stored conflicts.
type ConflictResolver interface {
	// Resolve applies the given decisions. Each conflict is resolved
	// independently; one failure never blocks the others. Confirmed
	// resolutions remove both the conflict record and the staged change.
	Resolve(ctx context.Context, resolutions []models.Resolution) (models.ResolutionOutcome, error)
}

// QueryService issues reads with automatic field-level degradation.
type QueryService interface {
	// Query runs req against the backend, transparently narrowing the
	// projection when the backend rejects individual fields.
	Query(ctx context.Context, req models.QueryRequest) (models.QueryResponse, error)
}

// SyncOrchestrator runs complete sync cycles.
type SyncOrchestrator interface {
	// SyncNow runs one push/pull/resolve cycle, or joins the cycle already
	// in flight for this device and returns its result.
	SyncNow(ctx context.Context) (CycleResult, error)

	// State reports the current position in the cycle state machine.
	State() SyncState
}
