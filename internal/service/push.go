package service

import (
	"context"
	"fmt"
	"time"

	"github.com/adaptsync/adaptsync/internal/adapter"
	"github.com/adaptsync/adaptsync/internal/config"
	"github.com/adaptsync/adaptsync/internal/logger"
	"github.com/adaptsync/adaptsync/internal/store"
	"github.com/adaptsync/adaptsync/models"
)

type pushEngine struct {
	adapter adapter.ServerAdapter
	state   store.SyncStateRepository
	app     config.ClientApp
	logger  *logger.Logger
}

// NewPushEngine returns the outbox-draining [PushEngine].
func NewPushEngine(serverAdapter adapter.ServerAdapter, state store.SyncStateRepository, app config.ClientApp, logger *logger.Logger) PushEngine {
	return &pushEngine{
		adapter: serverAdapter,
		state:   state,
		app:     app,
		logger:  logger,
	}
}

// Push submits the whole outbox in one request. The adapter delivers
// responses atomically, so either the server's full partition is applied to
// the outbox or nothing is touched; retries reuse the same idempotency keys.
func (e *pushEngine) Push(ctx context.Context) (models.PushResponse, error) {
	log := logger.FromContext(ctx)

	pending, err := e.state.ListPending(ctx, store.OutboxFilter{})
	if err != nil {
		return models.PushResponse{}, fmt.Errorf("load outbox: %w", err)
	}
	if len(pending) == 0 {
		log.Debug().Msg("outbox empty, nothing to push")
		return models.PushResponse{}, nil
	}

	changes := make(map[string][]models.PendingChange)
	for _, change := range pending {
		changes[change.EntityType] = append(changes[change.EntityType], change)
	}

	resp, err := e.adapter.Push(ctx, models.PushRequest{
		DeviceID:  e.app.DeviceID,
		Changes:   changes,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		log.Err(err).Int("staged", len(pending)).Msg("push request failed, outbox untouched")
		return models.PushResponse{}, fmt.Errorf("push %d changes: %w", len(pending), err)
	}

	// Applied and permanently rejected changes both leave the outbox.
	// Conflicting changes stay staged until the resolver confirms a decision.
	settled := make([]string, 0, len(resp.Successful)+len(resp.Failed))
	settled = append(settled, resp.Successful...)
	for _, failure := range resp.Failed {
		settled = append(settled, failure.IdempotencyKey)
		log.Warn().
			Str("idempotency_key", failure.IdempotencyKey).
			Str("entity_type", failure.EntityType).
			Str("reason", failure.Reason).
			Msg("change permanently rejected")
	}
	if len(settled) > 0 {
		if err = e.state.RemovePending(ctx, settled...); err != nil {
			return resp, fmt.Errorf("settle pushed changes: %w", err)
		}
	}

	if len(resp.Conflicts) > 0 {
		if err = e.state.SaveConflicts(ctx, resp.Conflicts...); err != nil {
			return resp, fmt.Errorf("record push conflicts: %w", err)
		}
	}

	log.Info().
		Int("successful", len(resp.Successful)).
		Int("failed", len(resp.Failed)).
		Int("conflicts", len(resp.Conflicts)).
		Msg("push cycle finished")

	return resp, nil
}
