package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/adaptsync/adaptsync/internal/adapter"
	"github.com/adaptsync/adaptsync/internal/backoff"
	"github.com/adaptsync/adaptsync/internal/config"
	"github.com/adaptsync/adaptsync/internal/events"
	"github.com/adaptsync/adaptsync/internal/logger"
)

// SyncJob is the periodic scheduler that drives update checks and full sync
// cycles in the background.
type SyncJob struct {
	adapter      adapter.ServerAdapter
	orchestrator SyncOrchestrator
	sink         events.Sink
	app          config.ClientApp
	workers      config.ClientWorkers
	policy       backoff.Policy
	logger       *logger.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// NewSyncJob returns a stopped job; call Start to begin polling.
func NewSyncJob(serverAdapter adapter.ServerAdapter, orchestrator SyncOrchestrator, sink events.Sink, app config.ClientApp, workers config.ClientWorkers, logger *logger.Logger) *SyncJob {
	return &SyncJob{
		adapter:      serverAdapter,
		orchestrator: orchestrator,
		sink:         sink,
		app:          app,
		workers:      workers,
		policy:       backoff.NewPolicy(workers.BackoffBase, workers.BackoffMaxAttempts),
		logger:       logger,
	}
}

// Start launches the polling goroutine. Calling Start on a running job is a
// no-op.
func (j *SyncJob) Start(ctx context.Context) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.started {
		return
	}

	ctx, j.cancel = context.WithCancel(ctx)
	j.started = true

	j.wg.Add(1)
	go j.run(ctx)

	j.logger.Info().
		Dur("check_interval", j.workers.CheckInterval).
		Dur("sync_interval", j.workers.SyncInterval).
		Msg("sync job started")
}

// Stop cancels the polling goroutine and waits for it to exit.
func (j *SyncJob) Stop() {
	j.mu.Lock()
	if !j.started {
		j.mu.Unlock()
		return
	}
	j.cancel()
	j.started = false
	j.mu.Unlock()

	j.wg.Wait()
	j.logger.Info().Msg("sync job stopped")
}

func (j *SyncJob) run(ctx context.Context) {
	defer j.wg.Done()

	ctx = j.logger.WithContext(ctx)
	retrier := j.policy.NewRetrier()
	timer := time.NewTimer(j.workers.CheckInterval)
	defer timer.Stop()

	lastCycle := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		wait := j.tick(ctx, retrier, &lastCycle)
		timer.Reset(wait)
	}
}

// tick runs one poll iteration and returns the wait before the next one.
// Transient failures stretch the wait via the shared backoff policy; any
// success resets the attempt counter.
func (j *SyncJob) tick(ctx context.Context, retrier *backoff.Retrier, lastCycle *time.Time) time.Duration {
	log := logger.FromContext(ctx)

	check, err := j.adapter.CheckUpdates(ctx, j.app.UserID, j.app.DeviceID, j.app.AppType)
	if err != nil {
		if errors.Is(err, adapter.ErrUnauthorized) {
			// Not transient. Keep polling at the base cadence so recovery is
			// picked up once the embedding app refreshes the token.
			log.Warn().Err(err).Msg("update check unauthorized")
			return j.workers.CheckInterval
		}

		delay, backoffErr := retrier.Next()
		if backoffErr != nil {
			log.Warn().Err(err).Msg("update check kept failing, restarting backoff")
			retrier.Reset()
			return j.workers.CheckInterval
		}
		log.Debug().Err(err).Int("attempt", retrier.Attempt()).Dur("retry_in", delay).Msg("update check failed")
		return delay
	}
	retrier.Reset()

	due := time.Since(*lastCycle) >= j.workers.SyncInterval
	if !check.HasUpdates && !due {
		return j.workers.CheckInterval
	}

	if check.HasUpdates {
		j.sink.Emit(ctx, events.NewEvent(events.UpdatesAvailable, map[string]any{
			"pending_events": check.PendingEvents,
			"last_event_id":  check.LastEventID,
		}))
	}

	if _, err = j.orchestrator.SyncNow(ctx); err != nil {
		log.Err(err).Msg("scheduled sync cycle failed")
		if delay, backoffErr := retrier.Next(); backoffErr == nil {
			return delay
		}
		retrier.Reset()
		return j.workers.CheckInterval
	}

	*lastCycle = time.Now()
	return j.workers.CheckInterval
}
