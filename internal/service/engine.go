package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kevindrums92/baselineapp/internal/adapter"
	"github.com/kevindrums92/baselineapp/internal/config"
	"github.com/kevindrums92/baselineapp/internal/lock"
	"github.com/kevindrums92/baselineapp/internal/logger"
	"github.com/kevindrums92/baselineapp/internal/netcheck"
	"github.com/kevindrums92/baselineapp/internal/store"
	"github.com/kevindrums92/baselineapp/internal/utils"
	"github.com/kevindrums92/baselineapp/models"
)

// syncEngine drives the offline-first reconciliation loop. Its heart is
// the pure transition function in machine.go; this type supplies the
// impure half: storage, transport, the advisory lock, and timers.
//
// Sync operations (reconcile, push, connectivity and sign-out handling)
// serialize on opMu. Local mutations update the container and the durable
// snapshot without waiting for opMu, so the UI write path never blocks
// behind a network round trip; only their sync reaction queues.
type syncEngine struct {
	container *StateContainer
	storages  *store.Storages
	resolver  SessionResolver
	auth      adapter.AuthProvider
	authority adapter.StateAuthority
	entitle   adapter.SubscriptionService
	lock      *lock.Advisory
	checker   *netcheck.Checker
	cfg       config.Sync
	logger    *logger.Logger

	opMu sync.Mutex

	debounce *debouncer

	recheckMu    sync.Mutex
	recheckTimer *time.Timer

	now func() time.Time
}

// NewSyncEngine builds the engine and loads the durable snapshot into the
// container so local data is visible before the first reconciliation.
func NewSyncEngine(
	ctx context.Context,
	storages *store.Storages,
	adapters *adapter.Adapters,
	resolver SessionResolver,
	advisory *lock.Advisory,
	checker *netcheck.Checker,
	cfg config.Sync,
	log *logger.Logger,
) SyncEngine {
	e := &syncEngine{
		container: NewStateContainer(),
		storages:  storages,
		resolver:  resolver,
		auth:      adapters.Auth,
		authority: adapters.State,
		entitle:   adapters.Subscription,
		lock:      advisory,
		checker:   checker,
		cfg:       cfg,
		logger:    log,
		now:       time.Now,
	}
	e.debounce = newDebouncer(cfg.Debounce, func() {
		e.Push(context.Background(), e.Snapshot())
	})

	if snap, err := storages.Snapshot.Load(ctx); err == nil {
		doc := snap.Clone()
		e.container.update(func(s *containerState) { s.snapshot = doc })
	} else if !errors.Is(err, store.ErrSnapshotNotFound) {
		log.Warn().Err(err).Str("func", "NewSyncEngine").Msg("durable snapshot unreadable, starting from defaults")
	}

	return e
}

// ── Read side ────────────────────────────────────────────────────────────────

func (e *syncEngine) Snapshot() models.Snapshot             { return e.container.Snapshot() }
func (e *syncEngine) Status() models.SyncStatus             { return e.container.Status() }
func (e *syncEngine) Mode() models.CloudMode                { return e.container.Mode() }
func (e *syncEngine) Identity() models.Identity             { return e.container.Identity() }
func (e *syncEngine) Entitlement() models.SubscriptionState { return e.container.Subscription() }
func (e *syncEngine) SessionExpired() bool                  { return e.container.SessionExpired() }
func (e *syncEngine) Initialized() bool                     { return e.container.Initialized() }
func (e *syncEngine) Subscribe(fn func(StateChange)) func() { return e.container.Subscribe(fn) }

func (e *syncEngine) SetSessionExpired(expired bool) {
	e.container.update(func(s *containerState) { s.sessionExpired = expired })
}

func (e *syncEngine) Invalidate() {
	e.container.update(func(s *containerState) { s.initialized = false })
}

// ── Local mutations ──────────────────────────────────────────────────────────

func (e *syncEngine) SetOnboardingSeen(ctx context.Context, seen bool) {
	e.mutate(ctx, true, func(s *models.Snapshot) {
		s.OnboardingSeen = models.Bool(seen)
	})
	if err := e.storages.Flags.SetOnboardingSeen(ctx, seen); err != nil {
		e.logger.Warn().Err(err).Str("func", "SetOnboardingSeen").Msg("flag not persisted")
	}
}

func (e *syncEngine) UpdateSecurity(ctx context.Context, mutate func(*models.SecuritySettings)) {
	e.mutate(ctx, true, func(s *models.Snapshot) {
		if s.Security == nil {
			s.Security = &models.SecuritySettings{}
		}
		mutate(s.Security)
	})
}

// AppendEntry persists the record locally only. History rides along with
// the next push or reconcile instead of triggering one. An entry without
// an id gets one minted here.
func (e *syncEngine) AppendEntry(ctx context.Context, entry models.HistoryEntry) {
	if entry.ID == "" {
		entry.ID = utils.NewID()
	}
	e.mutate(ctx, false, func(s *models.Snapshot) {
		s.Entries = append(s.Entries, entry)
	})
}

func (e *syncEngine) ReplaceAllData(ctx context.Context, snapshot models.Snapshot) {
	doc := snapshot.Clone()
	if doc.SchemaVersion == 0 {
		doc.SchemaVersion = models.SchemaVersion
	}
	e.mutate(ctx, true, func(s *models.Snapshot) { *s = doc })
}

// mutate applies fn to a copy of the current snapshot, stamps it, stores
// it durably, and, when observed is set, lets the machine react to the
// write. The container and durable updates happen before any sync
// reaction so the write is never lost to a slow network operation.
func (e *syncEngine) mutate(ctx context.Context, observed bool, fn func(*models.Snapshot)) {
	var updated models.Snapshot
	e.container.update(func(s *containerState) {
		doc := s.snapshot.Clone()
		fn(&doc)
		doc.UpdatedAt = e.now()
		s.snapshot = doc
		updated = doc
	})
	if err := e.storages.Snapshot.Save(ctx, &updated); err != nil {
		e.logger.Error().Err(err).Str("func", "mutate").Msg("durable snapshot save failed")
	}

	if !observed {
		return
	}
	e.opMu.Lock()
	defer e.opMu.Unlock()
	e.dispatch(ctx, eventLocalMutation{}, updated)
}

// ── Sync operations ──────────────────────────────────────────────────────────

// Reconcile resolves the session and runs one reconciliation pass.
func (e *syncEngine) Reconcile(ctx context.Context) {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	identity, outcome, err := e.resolver.Resolve(ctx, e.container.Identity())
	if err != nil {
		e.logger.Debug().Err(err).Str("func", "Reconcile").Msg("session resolution cancelled")
		return
	}

	if outcome.ForceSignOut {
		e.logger.Info().Str("func", "Reconcile").Msg("verification window expired, revoking session")
		if err := e.auth.SignOut(ctx); err != nil {
			e.logger.Warn().Err(err).Str("func", "Reconcile").Msg("revocation failed, will retry on next reconcile")
		}
		return
	}

	wasAuth := false
	if identity.None() && outcome.Confirmed {
		if w, err := e.storages.Flags.WasAuthenticated(ctx); err == nil {
			wasAuth = w
		}
	}

	e.dispatch(ctx, eventSessionResolved{
		identity:         identity,
		wasAuthenticated: wasAuth,
		degraded:         outcome.FromCache,
	}, e.container.Snapshot())
}

// Push delivers snapshot to the remote authority under the advisory lock.
func (e *syncEngine) Push(ctx context.Context, snapshot models.Snapshot) {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	if e.container.Mode() != models.ModeCloud || !e.container.Initialized() {
		return
	}
	if !e.checker.Online() {
		e.dispatch(ctx, eventPushDeferred{}, snapshot)
		return
	}

	acquired, err := e.lock.Acquire(ctx)
	if err != nil || !acquired {
		if err != nil {
			e.logger.Warn().Err(err).Str("func", "Push").Msg("lock acquisition failed, deferring push")
		}
		e.dispatch(ctx, eventLockContended{fromPush: true}, snapshot)
		return
	}
	defer e.releaseLock(ctx)

	e.performPush(ctx, snapshot)
}

func (e *syncEngine) HandleOnline(ctx context.Context) {
	e.opMu.Lock()
	defer e.opMu.Unlock()
	e.dispatch(ctx, eventWentOnline{}, e.container.Snapshot())
}

func (e *syncEngine) HandleOffline(ctx context.Context) {
	e.opMu.Lock()
	defer e.opMu.Unlock()
	e.dispatch(ctx, eventWentOffline{}, e.container.Snapshot())
}

// HandleSignedOut runs the confirmed-sign-out sequence. Safe to call more
// than once; repeat deliveries of the same sign-out are ignored.
func (e *syncEngine) HandleSignedOut(ctx context.Context) {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	if e.container.Identity().None() && e.container.Initialized() {
		return
	}
	e.dispatch(ctx, eventSignedOut{}, e.container.Snapshot())
}

func (e *syncEngine) Close() {
	e.debounce.Stop()
	e.cancelRecheck()
}

// ── Machine plumbing ─────────────────────────────────────────────────────────

// machineView projects the current engine state for the transition
// function. hasPending reflects the durable buffer, not a cached flag, so
// the view survives restarts.
func (e *syncEngine) machineView(ctx context.Context) machineState {
	hasPending, _ := e.storages.Pending.Has(ctx) // read failure degrades to "no pending"
	return machineState{
		mode:        e.container.Mode(),
		status:      e.container.Status(),
		initialized: e.container.Initialized(),
		online:      e.checker.Online(),
		hasPending:  hasPending,
		identity:    e.container.Identity(),
	}
}

func (e *syncEngine) applyMachineState(next machineState) {
	e.container.update(func(s *containerState) {
		s.mode = next.mode
		s.status = next.status
		s.identity = next.identity
		s.initialized = next.initialized
	})
}

// dispatch feeds one event through the machine and runs the returned
// effects. subject is the snapshot buffer/push effects operate on; pass
// the current snapshot when no specific document is in flight.
func (e *syncEngine) dispatch(ctx context.Context, ev machineEvent, subject models.Snapshot) {
	next, effects := transition(e.machineView(ctx), ev)
	e.applyMachineState(next)
	e.runEffects(ctx, effects, subject)
}

func (e *syncEngine) runEffects(ctx context.Context, effects []machineEffect, subject models.Snapshot) {
	for _, effect := range effects {
		e.logger.Debug().Str("func", "runEffects").Str("effect", effect.String()).Msg("running effect")
		switch effect {
		case effectWipeLocal:
			e.wipeLocal(ctx)
		case effectSignInAnonymously:
			e.signInAnonymously(ctx)
		case effectBuffer:
			e.buffer(ctx, subject)
		case effectAttemptSync:
			e.attemptSync(ctx)
		case effectPush:
			e.performPush(ctx, subject)
		case effectPull:
			e.performPull(ctx)
		case effectSeedRemote:
			e.performPush(ctx, subject)
			e.fetchEntitlement(ctx)
		case effectClearBuffer:
			e.clearBuffer(ctx)
		case effectFetchEntitlement:
			e.fetchEntitlement(ctx)
		case effectDebouncePush:
			e.debounce.Trigger()
		case effectRecheck:
			e.scheduleRecheck()
		}
	}
}

// ── Effect implementations ───────────────────────────────────────────────────

// attemptSync is one reconciliation attempt under the advisory lock:
// pending changes push first, otherwise remote state is pulled.
func (e *syncEngine) attemptSync(ctx context.Context) {
	acquired, err := e.lock.Acquire(ctx)
	if err != nil || !acquired {
		if err != nil {
			e.logger.Warn().Err(err).Str("func", "attemptSync").Msg("lock acquisition failed, deferring")
		} else {
			e.logger.Debug().Str("func", "attemptSync").Msg("push lock held elsewhere, deferring")
		}
		e.dispatch(ctx, eventLockContended{}, e.container.Snapshot())
		return
	}
	defer e.releaseLock(ctx)

	if pending, err := e.storages.Pending.Get(ctx); err == nil {
		e.dispatch(ctx, eventLockAcquired{}, *pending)
		return
	}
	e.dispatch(ctx, eventLockAcquired{}, e.container.Snapshot())
}

func (e *syncEngine) performPush(ctx context.Context, snapshot models.Snapshot) {
	userID := e.container.Identity().UserID
	if userID == "" {
		return
	}
	e.dispatch(ctx, eventPushStarted{}, snapshot)

	if err := e.authority.UpsertState(ctx, userID, snapshot); err != nil {
		transient := isTransientFailure(err) || !e.checker.Online()
		e.logger.Warn().Err(err).Str("func", "performPush").Bool("transient", transient).Msg("push failed")
		e.dispatch(ctx, eventPushFailed{transient: transient}, snapshot)
		return
	}
	e.logger.Info().Str("func", "performPush").Msg("snapshot pushed")
	e.dispatch(ctx, eventPushSucceeded{}, snapshot)
}

func (e *syncEngine) performPull(ctx context.Context) {
	userID := e.container.Identity().UserID
	if userID == "" {
		return
	}
	remote, err := e.authority.FetchState(ctx, userID)
	if err != nil {
		if errors.Is(err, adapter.ErrStateNotFound) {
			e.logger.Info().Str("func", "performPull").Msg("no remote document, seeding from local")
			e.dispatch(ctx, eventRemoteEmpty{}, e.container.Snapshot())
			return
		}
		transient := isTransientFailure(err) || !e.checker.Online()
		e.logger.Warn().Err(err).Str("func", "performPull").Bool("transient", transient).Msg("pull failed")
		e.dispatch(ctx, eventPullFailed{transient: transient}, e.container.Snapshot())
		return
	}

	e.adoptRemote(ctx, remote)
	e.dispatch(ctx, eventPullApplied{}, e.container.Snapshot())
}

// adoptRemote replaces the in-memory and durable snapshot with the pulled
// document. The durable save is best effort: the in-memory copy is
// already authoritative and a later save will repair the store.
func (e *syncEngine) adoptRemote(ctx context.Context, remote models.Snapshot) {
	doc := remote.Clone()
	if doc.SchemaVersion == 0 {
		doc.SchemaVersion = models.SchemaVersion
	}
	e.container.update(func(s *containerState) { s.snapshot = doc })
	if err := e.storages.Snapshot.Save(ctx, &doc); err != nil {
		e.logger.Warn().Err(err).Str("func", "adoptRemote").Msg("durable save of pulled snapshot failed")
	}
}

func (e *syncEngine) buffer(ctx context.Context, snapshot models.Snapshot) {
	if err := e.storages.Pending.Set(ctx, &snapshot); err != nil {
		e.logger.Error().Err(err).Str("func", "buffer").Msg("pending buffer write failed")
	}
}

func (e *syncEngine) clearBuffer(ctx context.Context) {
	if err := e.storages.Pending.Clear(ctx); err != nil {
		e.logger.Warn().Err(err).Str("func", "clearBuffer").Msg("pending buffer clear failed")
	}
}

func (e *syncEngine) fetchEntitlement(ctx context.Context) {
	userID := e.container.Identity().UserID
	if userID == "" {
		return
	}
	state, err := e.entitle.FetchEntitlement(ctx, userID)
	if err != nil {
		e.logger.Debug().Err(err).Str("func", "fetchEntitlement").Msg("entitlement refresh failed")
		return
	}
	e.container.update(func(s *containerState) { s.subscription = state })
}

// wipeLocal is the destructive reset after a confirmed sign-out: every
// store the account touched is cleared and the container returns to the
// default document.
func (e *syncEngine) wipeLocal(ctx context.Context) {
	e.debounce.Stop()
	e.cancelRecheck()

	e.container.update(func(s *containerState) {
		s.snapshot = models.DefaultSnapshot()
		s.subscription = models.SubscriptionState{}
		s.sessionExpired = false
	})

	if err := e.storages.Snapshot.Clear(ctx); err != nil {
		e.logger.Error().Err(err).Str("func", "wipeLocal").Msg("snapshot clear failed")
	}
	if err := e.storages.Pending.Clear(ctx); err != nil {
		e.logger.Error().Err(err).Str("func", "wipeLocal").Msg("pending clear failed")
	}
	if err := e.storages.Flags.ResetAll(ctx); err != nil {
		e.logger.Error().Err(err).Str("func", "wipeLocal").Msg("flags reset failed")
	}
	if err := e.storages.Session.Clear(ctx); err != nil {
		e.logger.Error().Err(err).Str("func", "wipeLocal").Msg("session clear failed")
	}
	e.logger.Info().Str("func", "wipeLocal").Msg("local data wiped")
}

// signInAnonymously requests a fresh anonymous session so the device can
// keep syncing without an account. Best effort: on failure the engine
// stays in guest mode and the next reconcile tries again.
func (e *syncEngine) signInAnonymously(ctx context.Context) {
	if _, err := e.auth.SignInAnonymously(ctx); err != nil {
		e.logger.Warn().Err(err).Str("func", "signInAnonymously").Msg("anonymous session not established, staying guest")
	}
}

func (e *syncEngine) releaseLock(ctx context.Context) {
	if err := e.lock.Release(ctx); err != nil {
		e.logger.Warn().Err(err).Str("func", "releaseLock").Msg("push lock release failed, TTL will expire it")
	}
}

// ── Contention recheck ───────────────────────────────────────────────────────

// scheduleRecheck arms a one-shot re-reconcile for after the lock TTL.
// Only one recheck is ever outstanding.
func (e *syncEngine) scheduleRecheck() {
	e.recheckMu.Lock()
	defer e.recheckMu.Unlock()
	if e.recheckTimer != nil {
		return
	}
	e.recheckTimer = time.AfterFunc(e.lock.TTL(), func() {
		e.recheckMu.Lock()
		e.recheckTimer = nil
		e.recheckMu.Unlock()
		e.recheck()
	})
}

func (e *syncEngine) cancelRecheck() {
	e.recheckMu.Lock()
	defer e.recheckMu.Unlock()
	if e.recheckTimer != nil {
		e.recheckTimer.Stop()
		e.recheckTimer = nil
	}
}

// recheck runs the deferred sync attempt scheduled on lock contention,
// provided the buffered change still exists and the engine may sync.
func (e *syncEngine) recheck() {
	ctx := context.Background()

	e.opMu.Lock()
	defer e.opMu.Unlock()

	if e.container.Mode() != models.ModeCloud || !e.container.Initialized() || !e.checker.Online() {
		return
	}
	if ok, err := e.storages.Pending.Has(ctx); err != nil || !ok {
		return // drained by whoever held the lock
	}
	e.logger.Debug().Str("func", "recheck").Msg("re-attempting sync after contention")
	e.attemptSync(ctx)
}
