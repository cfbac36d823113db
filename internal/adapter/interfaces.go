// Package adapter provides transport-layer abstractions for communicating
// with the adaptsync backend.
//
// The primary abstraction is [ServerAdapter], which decouples the service
// layer from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]) built on resty.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic
// error handling (e.g. [ErrConflict] for 409, [ErrUnauthorized] for 401).
// Request-level failures (timeouts, refused connections) wrap [ErrTransport].
//
// Atomic delivery: every method decodes the complete response body before
// returning. A call either yields the server's full answer or an error with
// no observable answer at all; callers may therefore treat any returned
// response as fully delivered, which the push engine relies on for
// cancellation safety.
package adapter

import (
	"context"

	"github.com/adaptsync/adaptsync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the adaptsync
// backend. Implementations are responsible for serialisation, authentication
// header management, and mapping transport-level errors to the sentinel
// values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all
	// subsequent authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Push submits a batch of pending changes in one request and returns the
	// server's successful/failed/conflicts partition. A request-level failure
	// (wrapping ErrTransport) guarantees the server either applied the whole
	// batch or none of it was observed; retries with the same idempotency
	// keys are safe.
	Push(ctx context.Context, req models.PushRequest) (models.PushResponse, error)

	// Pull requests full entity payloads of the given entity types, bounded
	// by req.BatchSize and optionally restricted to records modified since
	// req.Since. Used for initial sync and resets.
	Pull(ctx context.Context, req models.PullRequest) (models.PullResponse, error)

	// SmartPull requests only change-log events past the device's cursor.
	// Safe to call with no new data: the response reports HasUpdates=false
	// and carries no events.
	SmartPull(ctx context.Context, req models.SmartPullRequest) (models.SmartPullResponse, error)

	// CheckUpdates is the lightweight polling call used by the periodic
	// checker to learn whether a full cycle is worthwhile.
	CheckUpdates(ctx context.Context, userID int64, deviceID, appType string) (models.CheckUpdatesResponse, error)

	// ResolveConflicts submits resolution decisions and returns the
	// per-conflict resolved/failed partition.
	ResolveConflicts(ctx context.Context, req models.ResolveConflictsRequest) (models.ResolveConflictsResponse, error)

	// SyncState fetches the server's view of the device's sync state.
	SyncState(ctx context.Context, deviceID string) (models.SyncStateResponse, error)

	// Reset asks the server to discard the device's cursor so the next pull
	// starts from scratch.
	Reset(ctx context.Context, deviceID string) error

	// Ack acknowledges that the device has durably applied events up to
	// req.LastEventID. The server advances its cursor for the device only on
	// this call, never on SmartPull itself.
	Ack(ctx context.Context, req models.AckRequest) error

	// Query is the generic read call against an arbitrary entity type. The
	// backend rejects unknown projection fields with a 400 whose body names
	// the field ("Invalid field '<name>' ..."); the field-fallback strategy
	// parses that text out of the returned error.
	Query(ctx context.Context, req models.QueryRequest) (models.QueryResponse, error)

	// DescribeFields fetches the authoritative field schema of an entity
	// type, used by the last fallback level.
	DescribeFields(ctx context.Context, entityType string) (models.FieldSchema, error)
}
