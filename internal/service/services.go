package service

import (
	"context"

	"github.com/kevindrums92/baselineapp/internal/adapter"
	"github.com/kevindrums92/baselineapp/internal/config"
	"github.com/kevindrums92/baselineapp/internal/lock"
	"github.com/kevindrums92/baselineapp/internal/logger"
	"github.com/kevindrums92/baselineapp/internal/netcheck"
	"github.com/kevindrums92/baselineapp/internal/store"
)

// Services bundles the client service layer behind its interfaces.
type Services struct {
	Resolver  SessionResolver
	Engine    SyncEngine
	Lifecycle Lifecycle
	Retry     RetryJob
}

// NewServices wires the full service layer: the session resolver feeding the
// sync engine, the lifecycle handler translating auth events into engine
// operations, and the background retry job draining buffered changes.
func NewServices(
	ctx context.Context,
	storages *store.Storages,
	adapters *adapter.Adapters,
	advisory *lock.Advisory,
	checker *netcheck.Checker,
	cfg *config.Config,
	log *logger.Logger,
) *Services {
	resolver := NewSessionResolver(adapters.Auth, storages, checker, cfg.Session, log)
	engine := NewSyncEngine(ctx, storages, adapters, resolver, advisory, checker, cfg.Sync, log)

	return &Services{
		Resolver:  resolver,
		Engine:    engine,
		Lifecycle: NewLifecycle(engine, adapters, storages, cfg.Session, log),
		Retry:     NewRetryJob(engine, storages, log),
	}
}
