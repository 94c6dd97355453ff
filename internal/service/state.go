package service

import (
	"sync"

	"github.com/kevindrums92/baselineapp/models"
)

// StateChange is the value delivered to engine subscribers after every
// observable mutation. Snapshot is a private copy.
type StateChange struct {
	Snapshot       models.Snapshot
	Status         models.SyncStatus
	Mode           models.CloudMode
	Identity       models.Identity
	Subscription   models.SubscriptionState
	SessionExpired bool
	Initialized    bool
}

type containerState struct {
	snapshot       models.Snapshot
	status         models.SyncStatus
	mode           models.CloudMode
	identity       models.Identity
	subscription   models.SubscriptionState
	sessionExpired bool
	initialized    bool
}

// StateContainer is the single owned holder of the engine's observable
// state. Every component reads and mutates it through an explicit handle;
// nothing reaches it through ambient lookup.
//
// Mutations run atomically under the container's lock and publish one
// [StateChange] per update. Callbacks run outside the lock, so subscribers
// may query the container freely.
type StateContainer struct {
	mu     sync.RWMutex
	state  containerState
	nextID int
	subs   map[int]func(StateChange)
}

// NewStateContainer returns a container holding the default snapshot in
// guest mode with status idle.
func NewStateContainer() *StateContainer {
	return &StateContainer{
		state: containerState{
			snapshot: models.DefaultSnapshot(),
			status:   models.StatusIdle,
			mode:     models.ModeGuest,
		},
		subs: make(map[int]func(StateChange)),
	}
}

// Snapshot returns a copy of the current snapshot.
func (c *StateContainer) Snapshot() models.Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.snapshot.Clone()
}

// Status returns the current sync status.
func (c *StateContainer) Status() models.SyncStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.status
}

// Mode returns the current cloud mode.
func (c *StateContainer) Mode() models.CloudMode {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.mode
}

// Identity returns the currently resolved identity.
func (c *StateContainer) Identity() models.Identity {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.identity
}

// Subscription returns the most recently fetched subscription state.
func (c *StateContainer) Subscription() models.SubscriptionState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.subscription
}

// SessionExpired reports the UI-level session-expiry flag.
func (c *StateContainer) SessionExpired() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.sessionExpired
}

// Initialized reports whether a session resolution has completed.
func (c *StateContainer) Initialized() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.initialized
}

// Subscribe registers fn for state changes and returns its unsubscribe
// function.
func (c *StateContainer) Subscribe(fn func(StateChange)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

// update applies fn atomically and publishes the resulting state.
func (c *StateContainer) update(fn func(*containerState)) {
	c.mu.Lock()
	fn(&c.state)
	change := StateChange{
		Snapshot:       c.state.snapshot.Clone(),
		Status:         c.state.status,
		Mode:           c.state.mode,
		Identity:       c.state.identity,
		Subscription:   c.state.subscription,
		SessionExpired: c.state.sessionExpired,
		Initialized:    c.state.initialized,
	}
	callbacks := make([]func(StateChange), 0, len(c.subs))
	for _, fn := range c.subs {
		callbacks = append(callbacks, fn)
	}
	c.mu.Unlock()

	for _, fn := range callbacks {
		fn(change)
	}
}
