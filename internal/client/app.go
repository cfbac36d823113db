// Package client assembles the sync layer into a runnable application:
// device identity, initial sync, the periodic sync job and the live event
// stream.
package client

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/adaptsync/adaptsync/internal/adapter"
	"github.com/adaptsync/adaptsync/internal/backoff"
	"github.com/adaptsync/adaptsync/internal/config"
	"github.com/adaptsync/adaptsync/internal/events"
	"github.com/adaptsync/adaptsync/internal/logger"
	"github.com/adaptsync/adaptsync/internal/service"
	"github.com/adaptsync/adaptsync/internal/store"
	"github.com/adaptsync/adaptsync/internal/stream"
	"github.com/adaptsync/adaptsync/internal/utils"
	"github.com/adaptsync/adaptsync/internal/workers"
)

// App owns the running pieces of the sync client.
type App struct {
	cfg      *config.ClientConfig
	services *service.ClientServices
	storages *store.ClientStorages
	stream   workers.Worker
	logger   *logger.Logger
}

// NewApp wires the application together. The device identity is restored
// from disk (or generated and persisted on first run) before any engine is
// constructed, so every component sees the same device id.
func NewApp(cfg *config.ClientConfig, serverAdapter adapter.ServerAdapter, storages *store.ClientStorages, log *logger.Logger) (*App, error) {
	if cfg.App.DeviceID == "" {
		deviceID, err := ensureDeviceID(deviceIDPath(cfg.Storage.DB.DSN))
		if err != nil {
			return nil, fmt.Errorf("restore device identity: %w", err)
		}
		cfg.App.DeviceID = deviceID
	}

	if cfg.App.Token != "" {
		serverAdapter.SetToken(cfg.App.Token)
	}

	sink := events.MultiSink{events.NewLogSink(log)}
	services := service.NewClientServices(cfg, storages, serverAdapter, sink, log)

	var subscriber workers.Worker
	if cfg.Adapter.StreamAddress != "" {
		policy := backoff.NewPolicy(cfg.Workers.BackoffBase, cfg.Workers.BackoffMaxAttempts)
		// The adapter owns the token, so stream redials pick up refreshes.
		subscriber = stream.NewSubscriber(cfg.Adapter.StreamAddress, serverAdapter.Token, policy, sink, log)
	}

	return &App{
		cfg:      cfg,
		services: services,
		storages: storages,
		stream:   subscriber,
		logger:   log,
	}, nil
}

// Services exposes the wired sync services to embedding code.
func (a *App) Services() *service.ClientServices {
	return a.services
}

// Run performs the initial sync and keeps the background workers going until
// ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = a.logger.WithContext(ctx)

	if _, err := a.storages.SyncState.EnsureCursor(ctx, a.cfg.App.UserID, a.cfg.App.DeviceID); err != nil {
		return fmt.Errorf("prepare sync cursor: %w", err)
	}

	if _, err := a.services.Orchestrator.SyncNow(ctx); err != nil {
		// Initial sync is best effort; the periodic job retries later.
		a.logger.Warn().Err(err).Msg("initial sync failed")
	}

	background := workers.NewGroup(a.services.Job, a.stream)
	background.Start(ctx)
	defer background.Stop()

	<-ctx.Done()
	a.logger.Info().Msg("shutting down")

	return nil
}

func deviceIDPath(dsn string) string {
	base := dsn
	if i := strings.IndexByte(base, '?'); i >= 0 {
		base = base[:i]
	}
	return base + ".device"
}

// ensureDeviceID reads the persisted device id, generating and writing a new
// one on first run.
func ensureDeviceID(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err == nil {
		if id := strings.TrimSpace(string(raw)); id != "" {
			return id, nil
		}
	} else if !os.IsNotExist(err) {
		return "", err
	}

	generator := utils.NewUUIDGenerator()
	id := generator.Generate()
	if err = os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("persist device id: %w", err)
	}

	return id, nil
}
