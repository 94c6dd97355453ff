// Package netcheck tracks backend reachability for the sync engine.
//
// A periodic HTTP probe drives an edge-triggered online/offline signal:
// subscribers hear about transitions only, never about steady state.
package netcheck

import (
	"context"
	"sync"
	"time"

	"github.com/kevindrums92/baselineapp/internal/logger"
	"github.com/kevindrums92/baselineapp/internal/utils"
)

// Checker probes the backend and publishes reachability transitions.
//
// The checker starts optimistic (online): the first failed probe flips it.
// Reachability means the HTTP path completes, regardless of status code —
// a backend answering 500 is reachable, just unhappy, and failures of that
// kind belong to the sync error classifier rather than to connectivity.
type Checker struct {
	client   *utils.HTTPClient
	probeURL string
	interval time.Duration
	logger   *logger.Logger

	mu     sync.Mutex
	online bool
	nextID int
	subs   map[int]func(online bool)

	jobMu  sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Checker polling probeURL every interval. The supplied HTTP
// client carries the per-probe timeout.
func New(client *utils.HTTPClient, probeURL string, interval time.Duration, log *logger.Logger) *Checker {
	return &Checker{
		client:   client,
		probeURL: probeURL,
		interval: interval,
		logger:   log,
		online:   true,
		subs:     make(map[int]func(bool)),
	}
}

// Online returns the current reachability belief.
func (c *Checker) Online() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.online
}

// SetOnline records a reachability observation. Subscribers are notified
// only when the value actually changes. Besides the probe loop, adapters
// may call this directly when a request outcome proves the network state.
func (c *Checker) SetOnline(online bool) {
	c.mu.Lock()
	if c.online == online {
		c.mu.Unlock()
		return
	}
	c.online = online
	callbacks := make([]func(bool), 0, len(c.subs))
	for _, fn := range c.subs {
		callbacks = append(callbacks, fn)
	}
	c.mu.Unlock()

	c.logger.Info().
		Str("func", "Checker.SetOnline").
		Bool("online", online).
		Msg("connectivity changed")

	// Callbacks run outside the mutex so they may query the checker.
	for _, fn := range callbacks {
		fn(online)
	}
}

// Subscribe registers fn for reachability transitions and returns its
// unsubscribe function.
func (c *Checker) Subscribe(fn func(online bool)) func() {
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

// Probe performs one reachability check.
func (c *Checker) Probe(ctx context.Context) bool {
	_, err := c.client.R().SetContext(ctx).Get(c.probeURL)
	return err == nil
}

// Start launches the background probe loop. It stops any previously
// running loop first. The loop exits when ctx is cancelled or Stop is
// called.
func (c *Checker) Start(ctx context.Context) {
	c.Stop()

	c.jobMu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.wg.Add(1)
	c.jobMu.Unlock()

	go func() {
		defer c.wg.Done()
		t := time.NewTicker(c.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				c.SetOnline(c.Probe(jobCtx))
			}
		}
	}()
}

// Stop cancels the probe loop and blocks until it has exited. Safe to call
// when the loop is not running.
func (c *Checker) Stop() {
	c.jobMu.Lock()
	cancel := c.cancel
	c.cancel = nil
	c.jobMu.Unlock()

	if cancel != nil {
		cancel()
	}
	c.wg.Wait()
}
