package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kevindrums92/baselineapp/models"
)

func cloudOnline() machineState {
	return machineState{
		mode:        models.ModeCloud,
		status:      models.StatusOK,
		initialized: true,
		online:      true,
		identity:    models.Identity{UserID: "user-1", Email: "u@example.com"},
	}
}

// ── Session resolution ───────────────────────────────────────────────────────

func TestTransition_SessionResolved(t *testing.T) {
	tests := []struct {
		name        string
		state       machineState
		event       eventSessionResolved
		wantMode    models.CloudMode
		wantStatus  models.SyncStatus
		wantEffects []machineEffect
	}{
		{
			name:        "fresh guest start",
			state:       machineState{online: true},
			event:       eventSessionResolved{identity: models.Identity{}},
			wantMode:    models.ModeGuest,
			wantStatus:  models.StatusIdle,
			wantEffects: nil,
		},
		{
			name:        "confirmed sign-out wipes and restarts anonymously",
			state:       machineState{online: true},
			event:       eventSessionResolved{identity: models.Identity{}, wasAuthenticated: true},
			wantMode:    models.ModeGuest,
			wantStatus:  models.StatusIdle,
			wantEffects: []machineEffect{effectWipeLocal, effectSignInAnonymously},
		},
		{
			name:        "session while online reconciles",
			state:       machineState{online: true, status: models.StatusIdle},
			event:       eventSessionResolved{identity: models.Identity{UserID: "user-1"}},
			wantMode:    models.ModeCloud,
			wantStatus:  models.StatusIdle,
			wantEffects: []machineEffect{effectAttemptSync},
		},
		{
			name:        "session while offline parks with the document buffered",
			state:       machineState{online: false},
			event:       eventSessionResolved{identity: models.Identity{UserID: "user-1"}},
			wantMode:    models.ModeCloud,
			wantStatus:  models.StatusOffline,
			wantEffects: []machineEffect{effectBuffer},
		},
		{
			name:        "degraded cache resolution parks even though the probe looks fine",
			state:       machineState{online: true},
			event:       eventSessionResolved{identity: models.Identity{UserID: "user-1"}, degraded: true},
			wantMode:    models.ModeCloud,
			wantStatus:  models.StatusOffline,
			wantEffects: []machineEffect{effectBuffer},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, effects := transition(tt.state, tt.event)

			assert.True(t, next.initialized)
			assert.Equal(t, tt.wantMode, next.mode)
			assert.Equal(t, tt.wantStatus, next.status)
			assert.Equal(t, tt.wantEffects, effects)
		})
	}
}

func TestTransition_SessionResolvedKeepsIdentity(t *testing.T) {
	id := models.Identity{UserID: "user-1", Email: "u@example.com", Provider: "google"}

	next, _ := transition(machineState{online: true}, eventSessionResolved{identity: id})

	assert.Equal(t, id, next.identity)
}

// ── Connectivity edges ───────────────────────────────────────────────────────

func TestTransition_WentOnline(t *testing.T) {
	t.Run("with pending triggers sync", func(t *testing.T) {
		s := cloudOnline()
		s.online = false
		s.status = models.StatusOffline
		s.hasPending = true

		next, effects := transition(s, eventWentOnline{})

		assert.True(t, next.online)
		assert.Equal(t, []machineEffect{effectAttemptSync}, effects)
	})

	t.Run("without pending still syncs to pick up remote edits", func(t *testing.T) {
		s := cloudOnline()
		s.online = false

		next, effects := transition(s, eventWentOnline{})

		assert.True(t, next.online)
		assert.Equal(t, []machineEffect{effectAttemptSync}, effects)
	})

	t.Run("guest mode ignores the edge", func(t *testing.T) {
		s := machineState{mode: models.ModeGuest, initialized: true, hasPending: true}

		_, effects := transition(s, eventWentOnline{})

		assert.Empty(t, effects)
	})
}

func TestTransition_WentOffline(t *testing.T) {
	t.Run("cloud mode parks offline and buffers the document", func(t *testing.T) {
		s := cloudOnline()

		next, effects := transition(s, eventWentOffline{})

		assert.False(t, next.online)
		assert.Equal(t, models.StatusOffline, next.status)
		assert.True(t, next.hasPending)
		assert.Equal(t, []machineEffect{effectBuffer}, effects)
	})

	t.Run("guest mode only records the edge", func(t *testing.T) {
		s := machineState{mode: models.ModeGuest, initialized: true, online: true, status: models.StatusIdle}

		next, effects := transition(s, eventWentOffline{})

		assert.False(t, next.online)
		assert.Equal(t, models.StatusIdle, next.status)
		assert.Empty(t, effects)
	})
}

// ── Local mutations ──────────────────────────────────────────────────────────

func TestTransition_LocalMutation(t *testing.T) {
	t.Run("online buffers and schedules a debounced push", func(t *testing.T) {
		next, effects := transition(cloudOnline(), eventLocalMutation{})

		assert.True(t, next.hasPending)
		assert.Equal(t, []machineEffect{effectBuffer, effectDebouncePush}, effects)
	})

	t.Run("offline buffers immediately", func(t *testing.T) {
		s := cloudOnline()
		s.online = false

		next, effects := transition(s, eventLocalMutation{})

		assert.Equal(t, models.StatusOffline, next.status)
		assert.True(t, next.hasPending)
		assert.Equal(t, []machineEffect{effectBuffer}, effects)
	})

	t.Run("guest mode never syncs", func(t *testing.T) {
		s := machineState{mode: models.ModeGuest, initialized: true, online: true}

		_, effects := transition(s, eventLocalMutation{})

		assert.Empty(t, effects)
	})

	t.Run("before initialization nothing happens", func(t *testing.T) {
		s := cloudOnline()
		s.initialized = false

		_, effects := transition(s, eventLocalMutation{})

		assert.Empty(t, effects)
	})
}

// ── Lock outcomes ────────────────────────────────────────────────────────────

func TestTransition_LockAcquired(t *testing.T) {
	t.Run("pending wins over pull", func(t *testing.T) {
		s := cloudOnline()
		s.hasPending = true

		next, effects := transition(s, eventLockAcquired{})

		assert.Equal(t, models.StatusSyncing, next.status)
		assert.Equal(t, []machineEffect{effectPush}, effects)
	})

	t.Run("no pending pulls", func(t *testing.T) {
		next, effects := transition(cloudOnline(), eventLockAcquired{})

		assert.Equal(t, models.StatusSyncing, next.status)
		assert.Equal(t, []machineEffect{effectPull}, effects)
	})
}

func TestTransition_LockContended(t *testing.T) {
	t.Run("push path buffers and schedules a recheck", func(t *testing.T) {
		next, effects := transition(cloudOnline(), eventLockContended{fromPush: true})

		assert.Equal(t, models.StatusOK, next.status)
		assert.Equal(t, []machineEffect{effectBuffer, effectRecheck}, effects)
	})

	t.Run("reconcile path with pending schedules a recheck", func(t *testing.T) {
		s := cloudOnline()
		s.hasPending = true

		next, effects := transition(s, eventLockContended{})

		assert.Equal(t, models.StatusOK, next.status)
		assert.Equal(t, []machineEffect{effectRecheck}, effects)
	})

	t.Run("reconcile path without pending reports ok", func(t *testing.T) {
		next, effects := transition(cloudOnline(), eventLockContended{})

		assert.Equal(t, models.StatusOK, next.status)
		assert.Empty(t, effects)
	})
}

// ── Push outcomes ────────────────────────────────────────────────────────────

func TestTransition_PushLifecycle(t *testing.T) {
	t.Run("deferred push while offline buffers", func(t *testing.T) {
		s := cloudOnline()
		s.online = false

		next, effects := transition(s, eventPushDeferred{})

		assert.Equal(t, models.StatusOffline, next.status)
		assert.Equal(t, []machineEffect{effectBuffer}, effects)
	})

	t.Run("started marks syncing", func(t *testing.T) {
		next, _ := transition(cloudOnline(), eventPushStarted{})

		assert.Equal(t, models.StatusSyncing, next.status)
	})

	t.Run("success clears the buffer", func(t *testing.T) {
		s := cloudOnline()
		s.status = models.StatusSyncing
		s.hasPending = true

		next, effects := transition(s, eventPushSucceeded{})

		assert.Equal(t, models.StatusOK, next.status)
		assert.False(t, next.hasPending)
		assert.Equal(t, []machineEffect{effectClearBuffer}, effects)
	})

	t.Run("transient failure parks offline with buffer", func(t *testing.T) {
		s := cloudOnline()
		s.status = models.StatusSyncing

		next, effects := transition(s, eventPushFailed{transient: true})

		assert.Equal(t, models.StatusOffline, next.status)
		assert.True(t, next.hasPending)
		assert.Equal(t, []machineEffect{effectBuffer}, effects)
	})

	t.Run("permanent failure marks error with buffer", func(t *testing.T) {
		s := cloudOnline()
		s.status = models.StatusSyncing

		next, effects := transition(s, eventPushFailed{transient: false})

		assert.Equal(t, models.StatusError, next.status)
		assert.True(t, next.hasPending)
		assert.Equal(t, []machineEffect{effectBuffer}, effects)
	})
}

// ── Pull outcomes ────────────────────────────────────────────────────────────

func TestTransition_PullLifecycle(t *testing.T) {
	t.Run("applied refreshes entitlement", func(t *testing.T) {
		s := cloudOnline()
		s.status = models.StatusSyncing

		next, effects := transition(s, eventPullApplied{})

		assert.Equal(t, models.StatusOK, next.status)
		assert.Equal(t, []machineEffect{effectFetchEntitlement}, effects)
	})

	t.Run("remote empty seeds from local", func(t *testing.T) {
		s := cloudOnline()
		s.status = models.StatusSyncing

		next, effects := transition(s, eventRemoteEmpty{})

		assert.Equal(t, models.StatusSyncing, next.status)
		assert.Equal(t, []machineEffect{effectSeedRemote}, effects)
	})

	t.Run("transient failure parks offline without buffering", func(t *testing.T) {
		s := cloudOnline()
		s.status = models.StatusSyncing

		next, effects := transition(s, eventPullFailed{transient: true})

		assert.Equal(t, models.StatusOffline, next.status)
		assert.Empty(t, effects)
	})

	t.Run("permanent failure marks error", func(t *testing.T) {
		s := cloudOnline()
		s.status = models.StatusSyncing

		next, effects := transition(s, eventPullFailed{transient: false})

		assert.Equal(t, models.StatusError, next.status)
		assert.Empty(t, effects)
	})
}

// ── Sign-out ─────────────────────────────────────────────────────────────────

func TestTransition_SignedOut(t *testing.T) {
	s := cloudOnline()
	s.hasPending = true

	next, effects := transition(s, eventSignedOut{})

	assert.Equal(t, models.ModeGuest, next.mode)
	assert.Equal(t, models.StatusIdle, next.status)
	assert.Equal(t, models.Identity{}, next.identity)
	assert.True(t, next.initialized)
	assert.False(t, next.hasPending)
	assert.Equal(t, []machineEffect{effectWipeLocal, effectSignInAnonymously}, effects)
}

func TestMachineEffect_String(t *testing.T) {
	assert.Equal(t, "push", effectPush.String())
	assert.Equal(t, "wipe-local", effectWipeLocal.String())
	assert.Equal(t, "unknown", machineEffect(99).String())
}
