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

type pullEngine struct {
	adapter adapter.ServerAdapter
	state   store.SyncStateRepository
	app     config.ClientApp
	logger  *logger.Logger
}

// NewPullEngine returns the cursor-driven [PullEngine].
func NewPullEngine(serverAdapter adapter.ServerAdapter, state store.SyncStateRepository, app config.ClientApp, logger *logger.Logger) PullEngine {
	return &pullEngine{
		adapter: serverAdapter,
		state:   state,
		app:     app,
		logger:  logger,
	}
}

func (e *pullEngine) PullBatch(ctx context.Context, req models.PullRequest) (models.PullResponse, error) {
	log := logger.FromContext(ctx)

	if req.DeviceID == "" {
		req.DeviceID = e.app.DeviceID
	}

	resp, err := e.adapter.Pull(ctx, req)
	if err != nil {
		return models.PullResponse{}, fmt.Errorf("batch pull: %w", err)
	}

	log.Info().
		Int("total_records", resp.TotalRecords).
		Int("entity_types", len(resp.Data)).
		Msg("batch pull finished")

	return resp, nil
}

func (e *pullEngine) SmartPull(ctx context.Context, limit int) (models.SmartPullResponse, error) {
	log := logger.FromContext(ctx)

	resp, err := e.adapter.SmartPull(ctx, models.SmartPullRequest{
		UserID:   e.app.UserID,
		DeviceID: e.app.DeviceID,
		AppType:  e.app.AppType,
		Limit:    limit,
	})
	if err != nil {
		return models.SmartPullResponse{}, fmt.Errorf("smart pull: %w", err)
	}

	if !resp.HasUpdates {
		// No new events. The cursor position is left alone; only the
		// last-contact timestamp moves.
		if err = e.state.TouchCursor(ctx, e.app.UserID, e.app.DeviceID, time.Now().UTC()); err != nil {
			return resp, fmt.Errorf("stamp last sync time: %w", err)
		}
		log.Debug().Msg("smart pull found no updates")
		return resp, nil
	}

	log.Info().
		Int("new_events", resp.NewEventsCount).
		Str("next_sync_token", resp.NextSyncToken).
		Msg("smart pull returned events")

	return resp, nil
}

// Ack confirms durable application of events up to lastEventID. The server
// cursor moves first; the local cursor follows only after the server has
// confirmed, so a crash between the two re-delivers events instead of
// losing them.
func (e *pullEngine) Ack(ctx context.Context, lastEventID int64, syncToken string) error {
	err := e.adapter.Ack(ctx, models.AckRequest{
		DeviceID:    e.app.DeviceID,
		LastEventID: lastEventID,
		SyncToken:   syncToken,
	})
	if err != nil {
		return fmt.Errorf("acknowledge events up to %d: %w", lastEventID, err)
	}

	if err = e.state.AdvanceCursor(ctx, e.app.UserID, e.app.DeviceID, lastEventID, time.Now().UTC()); err != nil {
		return fmt.Errorf("advance local cursor to %d: %w", lastEventID, err)
	}

	return nil
}
