package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/adaptsync/adaptsync/internal/adapter"
	"github.com/adaptsync/adaptsync/internal/backoff"
	"github.com/adaptsync/adaptsync/internal/config"
	"github.com/adaptsync/adaptsync/internal/events"
	"github.com/adaptsync/adaptsync/internal/logger"
	"github.com/adaptsync/adaptsync/internal/mock"
	"github.com/adaptsync/adaptsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type stubOrchestrator struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (s *stubOrchestrator) SyncNow(_ context.Context) (CycleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return CycleResult{}, s.err
}

func (s *stubOrchestrator) State() SyncState { return StateIdle }

func (s *stubOrchestrator) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

var testWorkers = config.ClientWorkers{
	CheckInterval:      30 * time.Second,
	SyncInterval:       5 * time.Minute,
	BackoffBase:        2 * time.Second,
	BackoffMaxAttempts: 3,
}

func newTestJob(t *testing.T, ctrl *gomock.Controller, orch SyncOrchestrator) (*SyncJob, *mock.MockServerAdapter) {
	t.Helper()
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	job := NewSyncJob(mockAdapter, orch, events.NopSink{}, testApp, testWorkers, logger.Nop())
	return job, mockAdapter
}

// ── tick ────────────────────────────────────────────────────────────────────

func TestSyncJob_TickNoUpdates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orch := &stubOrchestrator{}
	job, mockAdapter := newTestJob(t, ctrl, orch)

	mockAdapter.EXPECT().CheckUpdates(gomock.Any(), int64(1), "device-1", "desktop").
		Return(models.CheckUpdatesResponse{HasUpdates: false}, nil)

	lastCycle := time.Now()
	wait := job.tick(context.Background(), job.policy.NewRetrier(), &lastCycle)

	assert.Equal(t, testWorkers.CheckInterval, wait)
	assert.Zero(t, orch.callCount())
}

func TestSyncJob_TickUpdatesTriggerCycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orch := &stubOrchestrator{}
	job, mockAdapter := newTestJob(t, ctrl, orch)

	mockAdapter.EXPECT().CheckUpdates(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.CheckUpdatesResponse{HasUpdates: true, PendingEvents: 3}, nil)

	lastCycle := time.Now()
	wait := job.tick(context.Background(), job.policy.NewRetrier(), &lastCycle)

	assert.Equal(t, testWorkers.CheckInterval, wait)
	assert.Equal(t, 1, orch.callCount())
}

func TestSyncJob_TickFullCycleWhenOverdue(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orch := &stubOrchestrator{}
	job, mockAdapter := newTestJob(t, ctrl, orch)

	mockAdapter.EXPECT().CheckUpdates(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.CheckUpdatesResponse{HasUpdates: false}, nil)

	// last full cycle was longer ago than SyncInterval
	lastCycle := time.Now().Add(-10 * time.Minute)
	job.tick(context.Background(), job.policy.NewRetrier(), &lastCycle)

	assert.Equal(t, 1, orch.callCount())
	assert.WithinDuration(t, time.Now(), lastCycle, time.Second)
}

func TestSyncJob_TickTransientErrorBacksOff(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orch := &stubOrchestrator{}
	job, mockAdapter := newTestJob(t, ctrl, orch)

	mockAdapter.EXPECT().CheckUpdates(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.CheckUpdatesResponse{}, adapter.ErrTransport).Times(2)

	retrier := job.policy.NewRetrier()
	lastCycle := time.Now()

	first := job.tick(context.Background(), retrier, &lastCycle)
	second := job.tick(context.Background(), retrier, &lastCycle)

	assert.Equal(t, testWorkers.BackoffBase, first)
	assert.Equal(t, 2*testWorkers.BackoffBase, second)
	assert.Zero(t, orch.callCount())
}

func TestSyncJob_TickSuccessResetsBackoff(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orch := &stubOrchestrator{}
	job, mockAdapter := newTestJob(t, ctrl, orch)

	fail := mockAdapter.EXPECT().CheckUpdates(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.CheckUpdatesResponse{}, adapter.ErrTransport)
	mockAdapter.EXPECT().CheckUpdates(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		After(fail).
		Return(models.CheckUpdatesResponse{HasUpdates: false}, nil)

	retrier := job.policy.NewRetrier()
	lastCycle := time.Now()

	job.tick(context.Background(), retrier, &lastCycle)
	job.tick(context.Background(), retrier, &lastCycle)

	assert.Zero(t, retrier.Attempt())
}

func TestSyncJob_TickExhaustedBackoffRestartsAtBaseCadence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orch := &stubOrchestrator{}
	job, mockAdapter := newTestJob(t, ctrl, orch)

	mockAdapter.EXPECT().CheckUpdates(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.CheckUpdatesResponse{}, adapter.ErrTransport).
		Times(testWorkers.BackoffMaxAttempts + 1)

	retrier := job.policy.NewRetrier()
	lastCycle := time.Now()

	for i := 0; i < testWorkers.BackoffMaxAttempts; i++ {
		job.tick(context.Background(), retrier, &lastCycle)
	}
	wait := job.tick(context.Background(), retrier, &lastCycle)

	assert.Equal(t, testWorkers.CheckInterval, wait)
	assert.Zero(t, retrier.Attempt())
}

func TestSyncJob_TickUnauthorizedKeepsBaseCadence(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orch := &stubOrchestrator{}
	job, mockAdapter := newTestJob(t, ctrl, orch)

	mockAdapter.EXPECT().CheckUpdates(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.CheckUpdatesResponse{}, adapter.ErrUnauthorized)

	lastCycle := time.Now()
	wait := job.tick(context.Background(), job.policy.NewRetrier(), &lastCycle)

	assert.Equal(t, testWorkers.CheckInterval, wait)
	assert.Zero(t, orch.callCount())
}

// ── lifecycle ───────────────────────────────────────────────────────────────

func TestSyncJob_StartStop(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	orch := &stubOrchestrator{}
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	mockAdapter.EXPECT().CheckUpdates(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(models.CheckUpdatesResponse{HasUpdates: false}, nil).
		AnyTimes()

	workers := testWorkers
	workers.CheckInterval = 10 * time.Millisecond
	job := NewSyncJob(mockAdapter, orch, events.NopSink{}, testApp, workers, logger.Nop())

	job.Start(context.Background())
	job.Start(context.Background()) // second Start is a no-op
	time.Sleep(35 * time.Millisecond)
	job.Stop()
	job.Stop() // second Stop is a no-op
}

func TestSyncJob_BackoffPolicyFromWorkerConfig(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	job, _ := newTestJob(t, ctrl, &stubOrchestrator{})

	require.Equal(t, backoff.NewPolicy(testWorkers.BackoffBase, testWorkers.BackoffMaxAttempts), job.policy)
}
