package service

import (
	"context"
	"time"

	"github.com/kevindrums92/baselineapp/internal/adapter"
	"github.com/kevindrums92/baselineapp/internal/config"
	"github.com/kevindrums92/baselineapp/internal/logger"
	"github.com/kevindrums92/baselineapp/internal/store"
	"github.com/kevindrums92/baselineapp/internal/utils"
	"github.com/kevindrums92/baselineapp/models"
)

// lifecycleHandler reacts to identity transitions published by the auth
// provider and translates them into engine operations: cache refresh, flag
// bookkeeping, push registration, and the destructive sign-out sequence.
type lifecycleHandler struct {
	engine   SyncEngine
	auth     adapter.AuthProvider
	push     adapter.PushGateway
	flags    store.FlagsRepository
	sessions store.SessionRepository
	cfg      config.Session
	logger   *logger.Logger

	now func() time.Time
}

// NewLifecycle builds the auth event handler.
func NewLifecycle(
	engine SyncEngine,
	adapters *adapter.Adapters,
	storages *store.Storages,
	cfg config.Session,
	log *logger.Logger,
) Lifecycle {
	return &lifecycleHandler{
		engine:   engine,
		auth:     adapters.Auth,
		push:     adapters.Push,
		flags:    storages.Flags,
		sessions: storages.Session,
		cfg:      cfg,
		logger:   log,
		now:      time.Now,
	}
}

// HandleAuthEvent implements [Lifecycle].
func (l *lifecycleHandler) HandleAuthEvent(ctx context.Context, event models.AuthEvent) {
	switch event.Kind {
	case models.AuthSignedIn:
		l.handleSignedIn(ctx, event.Session)
	case models.AuthSignedOut:
		l.handleSignedOut(ctx)
	default:
		l.logger.Debug().Str("func", "HandleAuthEvent").Str("kind", string(event.Kind)).Msg("unhandled auth event")
	}
}

func (l *lifecycleHandler) handleSignedIn(ctx context.Context, session *models.Session) {
	if session == nil {
		return
	}

	identity := session.User
	if identity.None() {
		if claims, err := utils.ParseSessionClaims(session.AccessToken); err == nil {
			identity = claims.Identity()
		}
	}
	if identity.None() {
		l.logger.Warn().Str("func", "handleSignedIn").Msg("signed-in event without a usable identity")
		return
	}

	// Cache immediately so the degraded path works even when the process
	// dies before the reconcile completes.
	if err := l.sessions.Save(ctx, session); err != nil {
		l.logger.Warn().Err(err).Str("func", "handleSignedIn").Msg("session cache refresh failed")
	}

	if identity.Anonymous() {
		l.handleAnonymousSignIn(ctx)
		return
	}
	l.handleAccountSignIn(ctx, identity)
}

// handleAnonymousSignIn starts syncing under a fresh anonymous session.
// Token refresh churn republishes sign-ins for the same principal, so an
// engine that is already syncing ignores the event.
func (l *lifecycleHandler) handleAnonymousSignIn(ctx context.Context) {
	if l.engine.Mode() == models.ModeCloud && l.engine.Initialized() {
		return
	}
	l.logger.Info().Str("func", "handleAnonymousSignIn").Msg("anonymous session established, reconciling")
	l.engine.Reconcile(ctx)
}

func (l *lifecycleHandler) handleAccountSignIn(ctx context.Context, identity models.Identity) {
	previous := l.engine.Identity()
	l.logger.Info().
		Str("func", "handleAccountSignIn").
		Str("user_id", identity.UserID).
		Str("provider", identity.Provider).
		Msg("account signed in")

	l.engine.SetSessionExpired(false)
	if err := l.flags.SetWasAuthenticated(ctx, true); err != nil {
		l.logger.Warn().Err(err).Str("func", "handleAccountSignIn").Msg("was-authenticated flag not persisted")
	}
	if err := l.flags.SetLastAuth(ctx, identity.Email, identity.Provider); err != nil {
		l.logger.Warn().Err(err).Str("func", "handleAccountSignIn").Msg("last-auth record not persisted")
	}
	if err := l.flags.ClearPendingVerification(ctx); err != nil {
		l.logger.Debug().Err(err).Str("func", "handleAccountSignIn").Msg("verification marker clear failed")
	}

	// Registration and entitlements follow the identity: a promoted
	// anonymous account carries its push registration and subscription
	// link over to the new account, everyone else registers fresh.
	promoted := previous.Anonymous() && previous.UserID != identity.UserID
	if promoted {
		if err := l.push.MigrateRegistration(ctx, previous.UserID, identity.UserID); err != nil {
			l.logger.Warn().Err(err).Str("func", "handleAccountSignIn").Msg("push registration migration failed")
		}
		if err := l.auth.LinkAnonymous(ctx, identity.UserID); err != nil {
			l.logger.Warn().Err(err).Str("func", "handleAccountSignIn").Msg("entitlement link failed")
		}
	} else if err := l.push.RegisterDevice(ctx); err != nil {
		l.logger.Warn().Err(err).Str("func", "handleAccountSignIn").Msg("device registration failed")
	}

	l.engine.Invalidate()
	l.engine.Reconcile(ctx)

	// Orphan cleanup waits until after the reconcile: the abandoned
	// identity can still be referenced until the pull lands.
	if promoted {
		if err := l.auth.RequestOrphanCleanup(ctx, previous.UserID); err != nil {
			l.logger.Debug().Err(err).Str("func", "handleAccountSignIn").Msg("orphan cleanup request failed")
		}
	}
}

func (l *lifecycleHandler) handleSignedOut(ctx context.Context) {
	if inProgress, err := l.flags.OAuthInProgress(ctx); err == nil && inProgress {
		l.logger.Debug().Str("func", "handleSignedOut").Msg("sign-out during oauth handoff, ignoring")
		return
	}
	if l.verificationActive(ctx) {
		l.logger.Debug().Str("func", "handleSignedOut").Msg("sign-out during verification challenge, ignoring")
		return
	}

	if err := l.push.DeregisterDevice(ctx); err != nil {
		l.logger.Debug().Err(err).Str("func", "handleSignedOut").Msg("device deregistration failed")
	}

	l.engine.HandleSignedOut(ctx)
}

// verificationActive reports whether a pending-verification marker exists
// and is still inside its window. A sign-out published mid-challenge is
// provider churn, not a user decision.
func (l *lifecycleHandler) verificationActive(ctx context.Context) bool {
	at, err := l.flags.PendingVerificationAt(ctx)
	if err != nil || at.IsZero() {
		return false
	}
	return l.now().Sub(at) <= l.cfg.VerificationWindow
}
