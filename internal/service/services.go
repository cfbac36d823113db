package service

import (
	"github.com/adaptsync/adaptsync/internal/adapter"
	"github.com/adaptsync/adaptsync/internal/config"
	"github.com/adaptsync/adaptsync/internal/events"
	"github.com/adaptsync/adaptsync/internal/fallback"
	"github.com/adaptsync/adaptsync/internal/logger"
	"github.com/adaptsync/adaptsync/internal/store"
)

// ClientServices groups every sync-layer service behind one value.
type ClientServices struct {
	Push         PushEngine
	Pull         PullEngine
	Resolver     ConflictResolver
	Query        QueryService
	Orchestrator SyncOrchestrator
	Job          *SyncJob
}

// NewClientServices wires the engines together from their dependencies.
// sink may be nil, in which case lifecycle events go to the log.
func NewClientServices(cfg *config.ClientConfig, storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, sink events.Sink, log *logger.Logger) *ClientServices {
	if sink == nil {
		sink = events.NewLogSink(log)
	}

	push := NewPushEngine(serverAdapter, storages.SyncState, cfg.App, log)
	pull := NewPullEngine(serverAdapter, storages.SyncState, cfg.App, log)
	resolver := NewConflictResolver(serverAdapter, storages.SyncState, cfg.App, log)

	strategy := fallback.NewStrategy(
		fallback.NewMemoryBadFieldCache(),
		fallback.NewQuotedFieldParser(),
	)
	query := NewQueryService(serverAdapter, strategy, log)

	orchestrator := NewSyncOrchestrator(push, pull, resolver, sink, nil, 0, log)
	job := NewSyncJob(serverAdapter, orchestrator, sink, cfg.App, cfg.Workers, log)

	return &ClientServices{
		Push:         push,
		Pull:         pull,
		Resolver:     resolver,
		Query:        query,
		Orchestrator: orchestrator,
		Job:          job,
	}
}
