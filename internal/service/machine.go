package service

import "github.com/kevindrums92/baselineapp/models"

// machineState is the minimal view of engine state the transition
// function needs. The engine projects it from the container and the
// pending buffer before dispatching an event.
type machineState struct {
	mode        models.CloudMode
	status      models.SyncStatus
	initialized bool
	online      bool
	hasPending  bool
	identity    models.Identity
}

// machineEffect names a side effect the engine must run after a
// transition. Effects carry no payload; the engine supplies the data.
type machineEffect int

const (
	effectWipeLocal machineEffect = iota + 1
	effectSignInAnonymously
	effectBuffer
	effectAttemptSync
	effectPush
	effectPull
	effectSeedRemote
	effectClearBuffer
	effectFetchEntitlement
	effectDebouncePush
	effectRecheck
)

func (e machineEffect) String() string {
	switch e {
	case effectWipeLocal:
		return "wipe-local"
	case effectSignInAnonymously:
		return "sign-in-anonymously"
	case effectBuffer:
		return "buffer"
	case effectAttemptSync:
		return "attempt-sync"
	case effectPush:
		return "push"
	case effectPull:
		return "pull"
	case effectSeedRemote:
		return "seed-remote"
	case effectClearBuffer:
		return "clear-buffer"
	case effectFetchEntitlement:
		return "fetch-entitlement"
	case effectDebouncePush:
		return "debounce-push"
	case effectRecheck:
		return "recheck"
	default:
		return "unknown"
	}
}

type machineEvent interface {
	isMachineEvent()
}

// eventSessionResolved reports the outcome of a session resolution.
// wasAuthenticated distinguishes a confirmed sign-out (wipe) from a
// device that has never held an account (plain guest start). degraded
// marks an identity recovered from cached artifacts while the provider
// was unreachable: sync stays parked until connectivity proves itself.
type eventSessionResolved struct {
	identity         models.Identity
	wasAuthenticated bool
	degraded         bool
}

// eventWentOnline and eventWentOffline carry connectivity edges from
// the checker into the machine.
type eventWentOnline struct{}
type eventWentOffline struct{}

// eventLocalMutation fires after any user-visible snapshot change.
type eventLocalMutation struct{}

// eventLockAcquired and eventLockContended report the outcome of taking
// the cross-context push lock. fromPush marks contention observed on the
// direct push path, which must also buffer the attempted snapshot.
type eventLockAcquired struct{}
type eventLockContended struct{ fromPush bool }

// eventPushDeferred fires when a push is requested while offline.
type eventPushDeferred struct{}

type eventPushStarted struct{}
type eventPushSucceeded struct{}

// eventPushFailed carries the classifier verdict: transient failures
// park the engine offline, permanent ones mark it errored. Either way
// the attempted snapshot is buffered.
type eventPushFailed struct{ transient bool }

type eventPullApplied struct{}
type eventPullFailed struct{ transient bool }

// eventRemoteEmpty fires when a pull finds no remote document for the
// account, which seeds the remote side from the local snapshot.
type eventRemoteEmpty struct{}

// eventSignedOut is dispatched only after a confirmed sign-out.
type eventSignedOut struct{}

func (eventSessionResolved) isMachineEvent() {}
func (eventWentOnline) isMachineEvent()      {}
func (eventWentOffline) isMachineEvent()     {}
func (eventLocalMutation) isMachineEvent()   {}
func (eventLockAcquired) isMachineEvent()    {}
func (eventLockContended) isMachineEvent()   {}
func (eventPushDeferred) isMachineEvent()    {}
func (eventPushStarted) isMachineEvent()     {}
func (eventPushSucceeded) isMachineEvent()   {}
func (eventPushFailed) isMachineEvent()      {}
func (eventPullApplied) isMachineEvent()     {}
func (eventPullFailed) isMachineEvent()      {}
func (eventRemoteEmpty) isMachineEvent()     {}
func (eventSignedOut) isMachineEvent()       {}

// transition is the pure core of the engine: given the current state and
// an event it returns the next state and the effects to run. It touches
// no storage, network, or clock, so the full table is unit-testable.
func transition(s machineState, ev machineEvent) (machineState, []machineEffect) {
	switch e := ev.(type) {
	case eventSessionResolved:
		s.initialized = true
		if e.identity.None() {
			s.mode = models.ModeGuest
			s.status = models.StatusIdle
			s.identity = models.Identity{}
			if e.wasAuthenticated {
				return s, []machineEffect{effectWipeLocal, effectSignInAnonymously}
			}
			return s, nil
		}
		s.mode = models.ModeCloud
		s.identity = e.identity
		if e.degraded || !s.online {
			// No remote call while unreachable: park offline with the
			// current document buffered for the reconnect drain.
			s.status = models.StatusOffline
			s.hasPending = true
			return s, []machineEffect{effectBuffer}
		}
		return s, []machineEffect{effectAttemptSync}

	case eventWentOnline:
		s.online = true
		if s.mode == models.ModeCloud && s.initialized {
			return s, []machineEffect{effectAttemptSync}
		}
		return s, nil

	case eventWentOffline:
		s.online = false
		if s.mode == models.ModeCloud && s.initialized {
			s.status = models.StatusOffline
			s.hasPending = true
			return s, []machineEffect{effectBuffer}
		}
		return s, nil

	case eventLocalMutation:
		if s.mode != models.ModeCloud || !s.initialized {
			return s, nil
		}
		// The buffer always captures real local writes, so a crash or
		// restart before the debounced push fires cannot lose them.
		s.hasPending = true
		if !s.online {
			s.status = models.StatusOffline
			return s, []machineEffect{effectBuffer}
		}
		return s, []machineEffect{effectBuffer, effectDebouncePush}

	case eventLockAcquired:
		s.status = models.StatusSyncing
		if s.hasPending {
			return s, []machineEffect{effectPush}
		}
		return s, []machineEffect{effectPull}

	case eventLockContended:
		s.status = models.StatusOK
		if e.fromPush {
			s.hasPending = true
			return s, []machineEffect{effectBuffer, effectRecheck}
		}
		if s.hasPending {
			return s, []machineEffect{effectRecheck}
		}
		return s, nil

	case eventPushDeferred:
		if s.mode == models.ModeCloud && s.initialized {
			s.status = models.StatusOffline
		}
		s.hasPending = true
		return s, []machineEffect{effectBuffer}

	case eventPushStarted:
		s.status = models.StatusSyncing
		return s, nil

	case eventPushSucceeded:
		s.status = models.StatusOK
		s.hasPending = false
		return s, []machineEffect{effectClearBuffer}

	case eventPushFailed:
		s.hasPending = true
		if e.transient {
			s.status = models.StatusOffline
		} else {
			s.status = models.StatusError
		}
		return s, []machineEffect{effectBuffer}

	case eventPullApplied:
		s.status = models.StatusOK
		return s, []machineEffect{effectFetchEntitlement}

	case eventPullFailed:
		if e.transient {
			s.status = models.StatusOffline
		} else {
			s.status = models.StatusError
		}
		return s, nil

	case eventRemoteEmpty:
		return s, []machineEffect{effectSeedRemote}

	case eventSignedOut:
		s.mode = models.ModeGuest
		s.status = models.StatusIdle
		s.identity = models.Identity{}
		s.initialized = true
		s.hasPending = false
		return s, []machineEffect{effectWipeLocal, effectSignInAnonymously}

	default:
		return s, nil
	}
}
