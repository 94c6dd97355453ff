package service

import (
	"context"
	"errors"
	"time"

	"github.com/kevindrums92/baselineapp/internal/adapter"
	"github.com/kevindrums92/baselineapp/internal/config"
	"github.com/kevindrums92/baselineapp/internal/logger"
	"github.com/kevindrums92/baselineapp/internal/netcheck"
	"github.com/kevindrums92/baselineapp/internal/store"
	"github.com/kevindrums92/baselineapp/internal/utils"
	"github.com/kevindrums92/baselineapp/models"
)

// errLookupTimeout marks a primary session lookup that lost the race
// against the bounded timeout. The underlying request is not aborted;
// its late result still refreshes the adapter's token when it lands.
var errLookupTimeout = errors.New("session lookup timed out")

// sessionResolver implements [SessionResolver] against the auth provider,
// with the cached sealed session as the degraded fallback.
type sessionResolver struct {
	auth     adapter.AuthProvider
	sessions store.SessionRepository
	flags    store.FlagsRepository
	checker  *netcheck.Checker
	cfg      config.Session
	logger   *logger.Logger

	now func() time.Time
}

// NewSessionResolver builds the production resolver.
func NewSessionResolver(
	auth adapter.AuthProvider,
	storages *store.Storages,
	checker *netcheck.Checker,
	cfg config.Session,
	log *logger.Logger,
) SessionResolver {
	return &sessionResolver{
		auth:     auth,
		sessions: storages.Session,
		flags:    storages.Flags,
		checker:  checker,
		cfg:      cfg,
		logger:   log,
		now:      time.Now,
	}
}

// Resolve implements [SessionResolver].
func (r *sessionResolver) Resolve(ctx context.Context, current models.Identity) (models.Identity, ResolveOutcome, error) {
	if r.verificationAbandoned(ctx) {
		r.logger.Info().Str("func", "Resolve").Msg("verification challenge abandoned")
		return models.Identity{}, ResolveOutcome{ForceSignOut: true}, nil
	}

	if !r.checker.Online() {
		identity, outcome := r.resolveFromCache(ctx)
		return identity, outcome, nil
	}

	session, err := r.lookup(ctx)
	switch {
	case err == nil:
		return r.adoptResolved(ctx, session)

	case errors.Is(err, adapter.ErrNoSession):
		return r.resolveAbsent(ctx, current)

	case ctx.Err() != nil:
		return models.Identity{}, ResolveOutcome{}, ctx.Err()

	default:
		r.logger.Warn().Err(err).Str("func", "Resolve").Msg("session lookup failed, trying cached artifacts")
		identity, outcome := r.resolveFromCache(ctx)
		return identity, outcome, nil
	}
}

// lookup races the provider lookup against the bounded timeout. The
// loser's result is discarded, not cancelled: a late answer still runs
// the adapter's token adoption.
func (r *sessionResolver) lookup(ctx context.Context) (models.Session, error) {
	type result struct {
		session models.Session
		err     error
	}
	ch := make(chan result, 1)
	go func() {
		session, err := r.auth.GetSession(ctx)
		ch <- result{session, err}
	}()

	timer := time.NewTimer(r.cfg.LookupTimeout)
	defer timer.Stop()

	select {
	case res := <-ch:
		return res.session, res.err
	case <-timer.C:
		return models.Session{}, errLookupTimeout
	case <-ctx.Done():
		return models.Session{}, ctx.Err()
	}
}

// adoptResolved turns a live session into the resolved identity: the
// sealed cache is refreshed and any verification marker is cleared,
// since a session the provider hands out is a completed sign-in.
func (r *sessionResolver) adoptResolved(ctx context.Context, session models.Session) (models.Identity, ResolveOutcome, error) {
	identity := session.User
	if identity.None() {
		if claims, err := utils.ParseSessionClaims(session.AccessToken); err == nil {
			identity = claims.Identity()
		}
	}
	if identity.None() {
		r.logger.Warn().Str("func", "adoptResolved").Msg("provider returned a session without a usable identity")
		return models.Identity{}, ResolveOutcome{Confirmed: true}, nil
	}

	if err := r.sessions.Save(ctx, &session); err != nil {
		r.logger.Warn().Err(err).Str("func", "adoptResolved").Msg("session cache refresh failed")
	}
	if err := r.flags.ClearPendingVerification(ctx); err != nil {
		r.logger.Debug().Err(err).Str("func", "adoptResolved").Msg("verification marker clear failed")
	}

	return identity, ResolveOutcome{Confirmed: true}, nil
}

// resolveAbsent handles a provider that definitively answered "no
// session". In development the lookup can transiently miss a user who
// just signed in, so a caller that still believes in a user gets one
// retry after a short delay before the negative result is accepted.
func (r *sessionResolver) resolveAbsent(ctx context.Context, current models.Identity) (models.Identity, ResolveOutcome, error) {
	if !current.None() {
		r.logger.Debug().Str("func", "resolveAbsent").Str("user_id", current.UserID).Msg("lookup missed a known user, retrying once")
		select {
		case <-ctx.Done():
			return models.Identity{}, ResolveOutcome{}, ctx.Err()
		case <-time.After(r.cfg.RecheckDelay):
		}

		session, err := r.lookup(ctx)
		if err == nil {
			return r.adoptResolved(ctx, session)
		}
		if !errors.Is(err, adapter.ErrNoSession) {
			identity, outcome := r.resolveFromCache(ctx)
			return identity, outcome, nil
		}
	}

	// Inside an active verification window the account exists but the
	// challenge is incomplete; absence is expected and not destructive.
	if at, err := r.flags.PendingVerificationAt(ctx); err == nil && !at.IsZero() {
		r.logger.Debug().Str("func", "resolveAbsent").Msg("verification in progress, holding state")
		return models.Identity{}, ResolveOutcome{}, nil
	}

	// Drop the sealed cache so a dead account cannot resurrect through
	// the degraded path.
	if err := r.sessions.Clear(ctx); err != nil {
		r.logger.Debug().Err(err).Str("func", "resolveAbsent").Msg("session cache clear failed")
	}

	return models.Identity{}, ResolveOutcome{Confirmed: true}, nil
}

// resolveFromCache recovers an identity from the sealed cached session.
// Only a named account is worth rendering from a cold cache; anonymous
// sessions resolve to guest until the provider is reachable again.
func (r *sessionResolver) resolveFromCache(ctx context.Context) (models.Identity, ResolveOutcome) {
	session, err := r.sessions.Load(ctx)
	if err != nil {
		if !errors.Is(err, store.ErrSessionNotFound) {
			r.logger.Warn().Err(err).Str("func", "resolveFromCache").Msg("cached session unreadable")
		}
		return models.Identity{}, ResolveOutcome{}
	}

	identity := session.User
	if identity.None() {
		claims, err := utils.ParseSessionClaims(session.AccessToken)
		if err != nil {
			r.logger.Warn().Err(err).Str("func", "resolveFromCache").Msg("cached token unparseable")
			return models.Identity{}, ResolveOutcome{}
		}
		identity = claims.Identity()
	}
	if identity.None() || identity.Anonymous() {
		return models.Identity{}, ResolveOutcome{}
	}

	// Adopt the cached token: the post-reconnect drain makes
	// authenticated calls before any provider round-trip.
	if session.AccessToken != "" {
		r.auth.SetToken(session.AccessToken)
	}

	r.logger.Info().Str("func", "resolveFromCache").Str("user_id", identity.UserID).Msg("identity recovered from cached session")
	return identity, ResolveOutcome{FromCache: true}
}

// verificationAbandoned reports whether a pending-verification marker has
// outlived the allowed window.
func (r *sessionResolver) verificationAbandoned(ctx context.Context) bool {
	at, err := r.flags.PendingVerificationAt(ctx)
	if err != nil || at.IsZero() {
		return false
	}
	return r.now().Sub(at) > r.cfg.VerificationWindow
}
