package service

import (
	"context"
	"testing"
	"time"

	"github.com/adaptsync/adaptsync/internal/adapter"
	"github.com/adaptsync/adaptsync/internal/config"
	"github.com/adaptsync/adaptsync/internal/logger"
	"github.com/adaptsync/adaptsync/internal/mock"
	"github.com/adaptsync/adaptsync/internal/store"
	"github.com/adaptsync/adaptsync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var testApp = config.ClientApp{
	UserID:   1,
	DeviceID: "device-1",
	AppType:  "desktop",
}

func newTestPushEngine(t *testing.T, ctrl *gomock.Controller) (PushEngine, *mock.MockServerAdapter, *mock.MockSyncStateRepository) {
	t.Helper()
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	mockState := mock.NewMockSyncStateRepository(ctrl)
	engine := NewPushEngine(mockAdapter, mockState, testApp, logger.Nop())
	return engine, mockAdapter, mockState
}

func stagedChange(key, entityType string, id int64) models.PendingChange {
	return models.PendingChange{
		EntityType:     entityType,
		EntityID:       id,
		Op:             models.OpUpdate,
		Fields:         models.ValueMap{"name": models.String("n")},
		IdempotencyKey: key,
		StagedAt:       time.Now().UTC(),
	}
}

// ── Push ────────────────────────────────────────────────────────────────────

func TestPushEngine_EmptyOutboxSkipsNetwork(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, _, mockState := newTestPushEngine(t, ctrl)
	ctx := context.Background()

	mockState.EXPECT().ListPending(ctx, store.OutboxFilter{}).Return(nil, nil)

	resp, err := engine.Push(ctx)

	require.NoError(t, err)
	assert.Empty(t, resp.Successful)
}

func TestPushEngine_PartitionsResponse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, mockAdapter, mockState := newTestPushEngine(t, ctrl)
	ctx := context.Background()

	pending := []models.PendingChange{
		stagedChange("k1", "task", 1),
		stagedChange("k2", "task", 2),
		stagedChange("k3", "note", 3),
	}
	conflict := models.Conflict{ID: "c1", EntityType: "task", EntityID: 2, IdempotencyKey: "k2"}

	mockState.EXPECT().ListPending(ctx, store.OutboxFilter{}).Return(pending, nil)
	mockAdapter.EXPECT().Push(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.PushRequest) (models.PushResponse, error) {
			assert.Equal(t, "device-1", req.DeviceID)
			assert.Len(t, req.Changes["task"], 2)
			assert.Len(t, req.Changes["note"], 1)
			return models.PushResponse{
				Successful: []string{"k1"},
				Failed:     []models.FailedChange{{IdempotencyKey: "k3", EntityType: "note", Reason: "validation"}},
				Conflicts:  []models.Conflict{conflict},
			}, nil
		})
	mockState.EXPECT().RemovePending(ctx, "k1", "k3").Return(nil)
	mockState.EXPECT().SaveConflicts(ctx, conflict).Return(nil)

	resp, err := engine.Push(ctx)

	require.NoError(t, err)
	assert.Equal(t, []string{"k1"}, resp.Successful)
	require.Len(t, resp.Failed, 1)
	assert.Equal(t, "k3", resp.Failed[0].IdempotencyKey)
	require.Len(t, resp.Conflicts, 1)
}

func TestPushEngine_TransportErrorLeavesOutboxUntouched(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, mockAdapter, mockState := newTestPushEngine(t, ctrl)
	ctx := context.Background()

	pending := []models.PendingChange{stagedChange("k1", "task", 1)}
	mockState.EXPECT().ListPending(ctx, store.OutboxFilter{}).Return(pending, nil)
	mockAdapter.EXPECT().Push(ctx, gomock.Any()).Return(models.PushResponse{}, adapter.ErrTransport)
	// no RemovePending, no SaveConflicts

	_, err := engine.Push(ctx)

	assert.ErrorIs(t, err, adapter.ErrTransport)
}

func TestPushEngine_RetryAfterTransportErrorReusesKeys(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, mockAdapter, mockState := newTestPushEngine(t, ctrl)
	ctx := context.Background()

	pending := []models.PendingChange{stagedChange("k1", "task", 1)}

	mockState.EXPECT().ListPending(ctx, store.OutboxFilter{}).Return(pending, nil).Times(2)

	var keys []string
	first := mockAdapter.EXPECT().Push(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, req models.PushRequest) (models.PushResponse, error) {
			keys = append(keys, req.Changes["task"][0].IdempotencyKey)
			return models.PushResponse{}, adapter.ErrTransport
		})
	mockAdapter.EXPECT().Push(ctx, gomock.Any()).After(first).DoAndReturn(
		func(_ context.Context, req models.PushRequest) (models.PushResponse, error) {
			keys = append(keys, req.Changes["task"][0].IdempotencyKey)
			return models.PushResponse{Successful: []string{"k1"}}, nil
		})
	mockState.EXPECT().RemovePending(ctx, "k1").Return(nil)

	_, err := engine.Push(ctx)
	require.Error(t, err)

	_, err = engine.Push(ctx)
	require.NoError(t, err)

	assert.Equal(t, []string{"k1", "k1"}, keys)
}

func TestPushEngine_ConflictsStayStaged(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	engine, mockAdapter, mockState := newTestPushEngine(t, ctrl)
	ctx := context.Background()

	pending := []models.PendingChange{stagedChange("k1", "task", 1)}
	conflict := models.Conflict{ID: "c1", IdempotencyKey: "k1"}

	mockState.EXPECT().ListPending(ctx, store.OutboxFilter{}).Return(pending, nil)
	mockAdapter.EXPECT().Push(ctx, gomock.Any()).
		Return(models.PushResponse{Conflicts: []models.Conflict{conflict}}, nil)
	mockState.EXPECT().SaveConflicts(ctx, conflict).Return(nil)
	// the conflicting change is not removed from the outbox

	resp, err := engine.Push(ctx)

	require.NoError(t, err)
	require.Len(t, resp.Conflicts, 1)
}
