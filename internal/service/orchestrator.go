package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/adaptsync/adaptsync/internal/adapter"
	"github.com/adaptsync/adaptsync/internal/events"
	"github.com/adaptsync/adaptsync/internal/logger"
	"github.com/adaptsync/adaptsync/models"
)

// SyncState is the orchestrator's position in the cycle state machine.
type SyncState string

const (
	StateIdle      SyncState = "idle"
	StatePushing   SyncState = "pushing"
	StatePulling   SyncState = "pulling"
	StateResolving SyncState = "resolving"
	StateFailed    SyncState = "failed"
)

// ResolutionPolicy decides a conflict automatically during a cycle. Returning
// false leaves the conflict stored for manual resolution.
type ResolutionPolicy func(conflict models.Conflict) (models.Resolution, bool)

// KeepRemotePolicy accepts the server's version for every conflict.
func KeepRemotePolicy(conflict models.Conflict) (models.Resolution, bool) {
	return models.Resolution{ConflictID: conflict.ID, Choice: models.KeepRemote}, true
}

// CycleResult summarizes one completed sync cycle.
type CycleResult struct {
	Push     models.PushResponse
	Pull     models.SmartPullResponse
	Resolved models.ResolutionOutcome
}

// inflightCycle lets concurrent SyncNow callers join a running cycle.
type inflightCycle struct {
	done   chan struct{}
	result CycleResult
	err    error
}

type syncOrchestrator struct {
	push     PushEngine
	pull     PullEngine
	resolver ConflictResolver
	sink     events.Sink
	policy   ResolutionPolicy
	logger   *logger.Logger

	pullLimit int

	mu       sync.Mutex
	state    SyncState
	inflight *inflightCycle
}

// NewSyncOrchestrator wires the engines into a [SyncOrchestrator]. policy may
// be nil, in which case detected conflicts are stored and reported but not
// auto-resolved.
func NewSyncOrchestrator(push PushEngine, pull PullEngine, resolver ConflictResolver, sink events.Sink, policy ResolutionPolicy, pullLimit int, logger *logger.Logger) SyncOrchestrator {
	if pullLimit <= 0 {
		pullLimit = 100
	}
	return &syncOrchestrator{
		push:      push,
		pull:      pull,
		resolver:  resolver,
		sink:      sink,
		policy:    policy,
		pullLimit: pullLimit,
		logger:    logger,
		state:     StateIdle,
	}
}

func (o *syncOrchestrator) State() SyncState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// SyncNow runs one cycle. At most one cycle is in flight at a time; a caller
// arriving while one runs blocks until it finishes and shares its outcome.
func (o *syncOrchestrator) SyncNow(ctx context.Context) (CycleResult, error) {
	o.mu.Lock()
	if cycle := o.inflight; cycle != nil {
		o.mu.Unlock()
		select {
		case <-cycle.done:
			return cycle.result, cycle.err
		case <-ctx.Done():
			return CycleResult{}, ctx.Err()
		}
	}
	cycle := &inflightCycle{done: make(chan struct{})}
	o.inflight = cycle
	o.mu.Unlock()

	cycle.result, cycle.err = o.runCycle(ctx)

	o.mu.Lock()
	o.inflight = nil
	o.state = StateIdle
	o.mu.Unlock()
	close(cycle.done)

	return cycle.result, cycle.err
}

func (o *syncOrchestrator) runCycle(ctx context.Context) (CycleResult, error) {
	ctx = o.logger.WithContext(ctx)
	log := logger.FromContext(ctx)

	var result CycleResult

	o.sink.Emit(ctx, events.NewEvent(events.SyncStarted, nil))
	log.Info().Msg("sync cycle started")

	o.setState(StatePushing)
	pushResp, err := o.push.Push(ctx)
	if err != nil {
		return result, o.fail(ctx, "push", err)
	}
	result.Push = pushResp
	if err = ctx.Err(); err != nil {
		// Cancelled mid-cycle. Outbox adjustments already committed by the
		// push engine stand; no further transition happens.
		return result, o.fail(ctx, "push", err)
	}

	for _, conflict := range pushResp.Conflicts {
		o.sink.Emit(ctx, events.NewEvent(events.ConflictDetected, map[string]any{
			"conflict_id": conflict.ID,
			"entity_type": conflict.EntityType,
			"kind":        string(conflict.Kind),
		}))
	}

	o.setState(StatePulling)
	pullResp, err := o.pull.SmartPull(ctx, o.pullLimit)
	if err != nil {
		return result, o.fail(ctx, "pull", err)
	}
	result.Pull = pullResp
	if err = ctx.Err(); err != nil {
		return result, o.fail(ctx, "pull", err)
	}

	if pullResp.HasUpdates && len(pullResp.Events) > 0 {
		o.sink.Emit(ctx, events.NewEvent(events.UpdatesAvailable, map[string]any{
			"new_events": pullResp.NewEventsCount,
		}))
		lastEventID := pullResp.Events[len(pullResp.Events)-1].ID
		if err = o.pull.Ack(ctx, lastEventID, pullResp.NextSyncToken); err != nil {
			return result, o.fail(ctx, "pull", err)
		}
	}

	if o.policy != nil && len(pushResp.Conflicts) > 0 {
		o.setState(StateResolving)
		resolutions := make([]models.Resolution, 0, len(pushResp.Conflicts))
		for _, conflict := range pushResp.Conflicts {
			if resolution, ok := o.policy(conflict); ok {
				resolutions = append(resolutions, resolution)
			}
		}
		if result.Resolved, err = o.resolver.Resolve(ctx, resolutions); err != nil {
			return result, o.fail(ctx, "resolve", err)
		}
		for _, conflictID := range result.Resolved.Resolved {
			o.sink.Emit(ctx, events.NewEvent(events.ConflictResolved, map[string]any{
				"conflict_id": conflictID,
			}))
		}
	}

	o.sink.Emit(ctx, events.NewEvent(events.SyncCompleted, map[string]any{
		"pushed":    len(result.Push.Successful),
		"pulled":    result.Pull.NewEventsCount,
		"conflicts": len(result.Push.Conflicts),
	}))
	log.Info().Msg("sync cycle completed")

	return result, nil
}

// fail records the failed state for the remainder of the cycle and emits the
// failure event. The orchestrator returns to idle when SyncNow unwinds; the
// periodic checker retries later under the backoff policy.
func (o *syncOrchestrator) fail(ctx context.Context, phase string, err error) error {
	o.setState(StateFailed)
	o.sink.Emit(ctx, events.NewEvent(events.SyncFailed, map[string]any{
		"phase": phase,
		"error": err.Error(),
	}))
	logger.FromContext(ctx).Err(err).Str("phase", phase).Msg("sync cycle failed")

	if errors.Is(err, adapter.ErrUnauthorized) {
		return fmt.Errorf("sync cycle aborted during %s, re-authentication required: %w", phase, err)
	}
	return fmt.Errorf("sync cycle failed during %s: %w", phase, err)
}

func (o *syncOrchestrator) setState(state SyncState) {
	o.mu.Lock()
	o.state = state
	o.mu.Unlock()
}
