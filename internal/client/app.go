package client

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/kevindrums92/baselineapp/internal/adapter"
	"github.com/kevindrums92/baselineapp/internal/config"
	"github.com/kevindrums92/baselineapp/internal/crypto"
	"github.com/kevindrums92/baselineapp/internal/lock"
	"github.com/kevindrums92/baselineapp/internal/logger"
	"github.com/kevindrums92/baselineapp/internal/netcheck"
	"github.com/kevindrums92/baselineapp/internal/service"
	"github.com/kevindrums92/baselineapp/internal/store"
	"github.com/kevindrums92/baselineapp/internal/workers"
	"github.com/kevindrums92/baselineapp/models"
)

// App is the headless client runtime: the sync service layer, the
// connectivity prober and the retry job, bound to one process lifecycle.
type App struct {
	cfg      *config.Config
	logger   *logger.Logger
	adapters *adapter.Adapters
	checker  *netcheck.Checker
	services *service.Services
	workers  *workers.Workers
}

var _ Client = (*App)(nil)

// NewApp composes the client runtime on top of the already-opened storages
// and backend adapters.
func NewApp(
	ctx context.Context,
	cfg *config.Config,
	storages *store.Storages,
	adapters *adapter.Adapters,
	log *logger.Logger,
) (*App, error) {
	probeClient, probeURL, err := adapter.NewProbeClient(cfg.Adapter, cfg.Netcheck)
	if err != nil {
		return nil, fmt.Errorf("probe client: %w", err)
	}
	checker := netcheck.New(probeClient, probeURL, cfg.Netcheck.ProbeInterval, log)

	advisory := lock.NewAdvisory(storages.Locker, lock.PushLockName, cfg.Sync.LockTTL, log)
	services := service.NewServices(ctx, storages, adapters, advisory, checker, cfg, log)

	return &App{
		cfg:      cfg,
		logger:   log,
		adapters: adapters,
		checker:  checker,
		services: services,
		workers: workers.New(
			workers.Func(checker.Start),
			workers.Func(func(ctx context.Context) {
				services.Retry.Start(ctx, cfg.Sync.RetryInterval)
			}),
		),
	}, nil
}

// Run subscribes the engine to connectivity and auth events, performs the
// initial reconciliation, starts the background workers and blocks until
// ctx is cancelled. Event subscriptions come first: the initial reconcile
// may itself establish an anonymous session, and that sign-in must not be
// lost.
func (a *App) Run(ctx context.Context) error {
	unsubscribeNet := a.checker.Subscribe(func(online bool) {
		if online {
			go a.services.Engine.HandleOnline(ctx)
		} else {
			go a.services.Engine.HandleOffline(ctx)
		}
	})
	defer unsubscribeNet()

	// The provider publishes synchronously from inside engine operations,
	// so the handler runs on its own goroutine.
	unsubscribeAuth := a.adapters.Auth.Subscribe(func(event models.AuthEvent) {
		go a.services.Lifecycle.HandleAuthEvent(ctx, event)
	})
	defer unsubscribeAuth()

	a.services.Engine.Reconcile(ctx)
	a.workers.Run(ctx)

	a.logger.Info().Str("func", "Run").Msg("client started")
	<-ctx.Done()

	a.logger.Info().Str("func", "Run").Msg("shutting down")
	a.shutdown()
	return nil
}

// shutdown stops the background components in dependency order. Storages
// are closed by the caller that opened them.
func (a *App) shutdown() {
	a.services.Retry.Stop()
	a.checker.Stop()
	a.services.Engine.Close()
}

// NewKeychain selects the device keychain for the configured store: a key
// file beside the store file, or ephemeral in-memory material when nothing
// is persisted to disk.
func NewKeychain(cfg config.Storage) (crypto.Keychain, error) {
	if cfg.Driver == "memory" || cfg.Path == "" {
		return crypto.NewEphemeralKeychain()
	}
	return crypto.NewKeychain(keyFilePath(cfg.Path))
}

// keyFilePath places the device key beside the store file: baseline.db
// becomes baseline.key.
func keyFilePath(storePath string) string {
	ext := filepath.Ext(storePath)
	return strings.TrimSuffix(storePath, ext) + ".key"
}
