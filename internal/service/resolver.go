package service

import (
	"context"
	"fmt"
	"sync"

	"dario.cat/mergo"

	"github.com/adaptsync/adaptsync/internal/adapter"
	"github.com/adaptsync/adaptsync/internal/config"
	"github.com/adaptsync/adaptsync/internal/logger"
	"github.com/adaptsync/adaptsync/internal/store"
	"github.com/adaptsync/adaptsync/models"
)

// maxParallelResolutions bounds the number of concurrent resolution
// submissions. Distinct conflicts target independent entities, so they may
// run in parallel; store updates still funnel through one mutex.
const maxParallelResolutions = 4

type conflictResolver struct {
	adapter adapter.ServerAdapter
	state   store.SyncStateRepository
	app     config.ClientApp
	logger  *logger.Logger
}

// NewConflictResolver returns the per-conflict [ConflictResolver].
func NewConflictResolver(serverAdapter adapter.ServerAdapter, state store.SyncStateRepository, app config.ClientApp, logger *logger.Logger) ConflictResolver {
	return &conflictResolver{
		adapter: serverAdapter,
		state:   state,
		app:     app,
		logger:  logger,
	}
}

func (r *conflictResolver) Resolve(ctx context.Context, resolutions []models.Resolution) (models.ResolutionOutcome, error) {
	log := logger.FromContext(ctx)

	outcome := models.ResolutionOutcome{Failed: make(map[string]string)}
	if len(resolutions) == 0 {
		return outcome, nil
	}

	var (
		mu        sync.Mutex
		wg        sync.WaitGroup
		semaphore = make(chan struct{}, maxParallelResolutions)
	)

	for _, resolution := range resolutions {
		wg.Add(1)
		go func(resolution models.Resolution) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			err := r.resolveOne(ctx, resolution, &mu)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Err(err).Str("conflict_id", resolution.ConflictID).Msg("conflict resolution failed")
				outcome.Failed[resolution.ConflictID] = err.Error()
				return
			}
			outcome.Resolved = append(outcome.Resolved, resolution.ConflictID)
		}(resolution)
	}
	wg.Wait()

	if len(outcome.Failed) == 0 {
		outcome.Failed = nil
	}

	return outcome, nil
}

// resolveOne submits a single decision and, on confirmation, removes the
// conflict record and the staged change it blocked. Store mutations are
// serialized by mu.
func (r *conflictResolver) resolveOne(ctx context.Context, resolution models.Resolution, mu *sync.Mutex) error {
	mu.Lock()
	conflicts, err := r.state.ListConflicts(ctx, store.ConflictFilter{})
	mu.Unlock()
	if err != nil {
		return fmt.Errorf("load conflicts: %w", err)
	}

	var conflict *models.Conflict
	for i := range conflicts {
		if conflicts[i].ID == resolution.ConflictID {
			conflict = &conflicts[i]
			break
		}
	}
	if conflict == nil {
		return fmt.Errorf("conflict %s: %w", resolution.ConflictID, store.ErrConflictNotFound)
	}

	if resolution.Choice == models.Merge && resolution.Merged == nil {
		if resolution.Merged, err = MergePayloads(conflict.Local, conflict.Remote); err != nil {
			return fmt.Errorf("merge conflict %s payloads: %w", resolution.ConflictID, err)
		}
	}

	resp, err := r.adapter.ResolveConflicts(ctx, models.ResolveConflictsRequest{
		DeviceID:    r.app.DeviceID,
		Resolutions: []models.Resolution{resolution},
	})
	if err != nil {
		return fmt.Errorf("submit resolution: %w", err)
	}
	if len(resp.Resolved) == 0 {
		reason := "rejected by server"
		if len(resp.Failed) > 0 {
			reason = resp.Failed[0].Reason
		}
		return fmt.Errorf("resolution of conflict %s rejected: %s", resolution.ConflictID, reason)
	}

	mu.Lock()
	defer mu.Unlock()
	if err = r.state.DeleteConflict(ctx, conflict.ID); err != nil {
		return fmt.Errorf("drop resolved conflict: %w", err)
	}
	if conflict.IdempotencyKey != "" {
		if err = r.state.RemovePending(ctx, conflict.IdempotencyKey); err != nil {
			return fmt.Errorf("unstage resolved change: %w", err)
		}
	}

	return nil
}

// MergePayloads combines a conflict's two sides field-wise. Local values win
// on overlap; remote-only fields are preserved.
func MergePayloads(local, remote models.ValueMap) (models.ValueMap, error) {
	merged := local.Any()
	if err := mergo.Merge(&merged, remote.Any()); err != nil {
		return nil, err
	}
	return models.FromAnyMap(merged)
}
