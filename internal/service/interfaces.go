// Package service implements the sync reconciliation engine: the state
// container observed by the UI, the pure status state machine, the session
// resolver with its degraded offline fallback, the debounced push trigger,
// the background retry job, and the lifecycle handler for account
// transitions.
//
// No error from this package ever propagates past its boundary as a hard
// failure: every failure path terminates in a status transition plus
// guaranteed preservation of unsent data in the pending buffer.
package service

import (
	"context"
	"time"

	"github.com/kevindrums92/baselineapp/models"
)

// SyncEngine is the core reconciliation controller. It owns the in-memory
// snapshot, the sync status and cloud mode, and decides at any moment
// whether local state is authoritative or must yield to remote state.
type SyncEngine interface {
	// Snapshot returns a copy of the current in-memory application state.
	Snapshot() models.Snapshot

	// ReplaceAllData atomically overwrites the in-memory and durable
	// snapshot. Used for cloud-pull results and for the post-logout reset.
	ReplaceAllData(ctx context.Context, snapshot models.Snapshot)

	// SetOnboardingSeen records the onboarding flag, persists it, and
	// schedules a debounced push when cloud sync is active.
	SetOnboardingSeen(ctx context.Context, seen bool)

	// UpdateSecurity applies mutate to a copy of the current security
	// settings, persists the result, and schedules a debounced push when
	// cloud sync is active.
	UpdateSecurity(ctx context.Context, mutate func(*models.SecuritySettings))

	// AppendEntry adds one history record to the snapshot and persists
	// it. History flows to the remote on the next push or reconcile; it
	// is not an observed push trigger on its own.
	AppendEntry(ctx context.Context, entry models.HistoryEntry)

	// Status returns the current sync status.
	Status() models.SyncStatus

	// Mode returns the current cloud mode.
	Mode() models.CloudMode

	// Identity returns the currently resolved identity (zero for guest).
	Identity() models.Identity

	// Entitlement returns the most recently fetched subscription state.
	Entitlement() models.SubscriptionState

	// SessionExpired reports the UI-level session-expiry flag.
	SessionExpired() bool

	// SetSessionExpired sets the UI-level session-expiry flag.
	SetSessionExpired(expired bool)

	// Initialized reports whether a session resolution has completed for
	// the current identity epoch.
	Initialized() bool

	// Invalidate marks the engine uninitialized, forcing the next
	// reconcile to re-resolve the session before sync resumes. Called on
	// account transitions.
	Invalidate()

	// Subscribe registers fn for state changes and returns its
	// unsubscribe function.
	Subscribe(fn func(StateChange)) func()

	// Reconcile resolves the session and runs one full reconciliation
	// pass. All failures terminate in a status transition.
	Reconcile(ctx context.Context)

	// Push delivers snapshot to the remote authority under the advisory
	// lock, buffering it on any failure. All failures terminate in a
	// status transition.
	Push(ctx context.Context, snapshot models.Snapshot)

	// HandleOnline reacts to a connectivity-restored transition by
	// draining the pending buffer.
	HandleOnline(ctx context.Context)

	// HandleOffline reacts to a connectivity-lost transition by parking
	// the engine in the offline status. Later mutations buffer durably.
	HandleOffline(ctx context.Context)

	// HandleSignedOut runs the confirmed-sign-out sequence: destructive
	// local wipe, guest/idle state, then a best-effort anonymous session
	// request.
	HandleSignedOut(ctx context.Context)

	// Close stops the engine's timers. The engine must not be used after
	// Close.
	Close()
}

// ResolveOutcome carries the resolver's verdict alongside the identity.
type ResolveOutcome struct {
	// Confirmed is true when the provider itself answered the lookup. A
	// confirmed empty identity is an authoritative signed-out signal; an
	// unconfirmed one only means the provider was unreachable.
	Confirmed bool

	// FromCache is true when the identity was recovered from locally
	// cached session artifacts instead of the provider.
	FromCache bool

	// ForceSignOut is true when a pending-verification challenge was
	// abandoned: the caller must sign out and start fresh.
	ForceSignOut bool
}

// SessionResolver determines the authenticated identity, falling back to
// locally cached session artifacts when the provider is unreachable.
type SessionResolver interface {
	// Resolve returns the resolved identity and its outcome. current is
	// the caller's present belief, used to detect the development-mode
	// race where a lookup transiently misses a freshly signed-in user;
	// pass the zero identity at startup. The only returned error is
	// ctx.Err().
	Resolve(ctx context.Context, current models.Identity) (models.Identity, ResolveOutcome, error)
}

// Lifecycle reacts to authentication transitions published by the auth
// provider: sign-ins refresh local bookkeeping and trigger reconciliation,
// confirmed sign-outs run the destructive local reset.
type Lifecycle interface {
	// HandleAuthEvent processes one provider event. The provider publishes
	// synchronously, so subscribers should invoke this off the publishing
	// goroutine.
	HandleAuthEvent(ctx context.Context, event models.AuthEvent)
}

// RetryJob is the background drain of buffered changes while the engine
// sits in the error status.
type RetryJob interface {
	// Start launches the background retry goroutine, first stopping any
	// previous one. It re-attempts delivery every interval, defaulting
	// when interval is zero or negative. The goroutine exits when ctx is
	// cancelled or Stop is called.
	Start(ctx context.Context, interval time.Duration)

	// Stop signals the background goroutine to exit and blocks until it
	// has fully terminated.
	Stop()
}
