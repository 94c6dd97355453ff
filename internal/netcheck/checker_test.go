package netcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kevindrums92/baselineapp/internal/logger"
	"github.com/kevindrums92/baselineapp/internal/utils"
)

func newTestChecker(probeURL string, interval time.Duration) *Checker {
	client := utils.NewHTTPClient()
	client.SetTimeout(200 * time.Millisecond)
	return New(client, probeURL, interval, logger.Nop())
}

// ── State and subscriptions ──

func TestChecker_StartsOnline(t *testing.T) {
	c := newTestChecker("http://localhost:0/ping", time.Second)

	assert.True(t, c.Online())
}

func TestChecker_SetOnline_EdgeTriggered(t *testing.T) {
	// Arrange
	c := newTestChecker("http://localhost:0/ping", time.Second)

	var mu sync.Mutex
	var seen []bool
	c.Subscribe(func(online bool) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, online)
	})

	// Act: repeats must not re-notify.
	c.SetOnline(true)
	c.SetOnline(false)
	c.SetOnline(false)
	c.SetOnline(true)

	// Assert
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []bool{false, true}, seen)
	assert.True(t, c.Online())
}

func TestChecker_Unsubscribe(t *testing.T) {
	c := newTestChecker("http://localhost:0/ping", time.Second)

	var calls int
	unsubscribe := c.Subscribe(func(bool) {
		calls++
	})

	c.SetOnline(false)
	unsubscribe()
	c.SetOnline(true)

	assert.Equal(t, 1, calls)
}

func TestChecker_SubscriberMayQueryChecker(t *testing.T) {
	c := newTestChecker("http://localhost:0/ping", time.Second)

	var observed bool
	c.Subscribe(func(online bool) {
		// Must not deadlock.
		observed = c.Online()
	})

	c.SetOnline(false)

	assert.False(t, observed)
}

// ── Probing ──

func TestChecker_Probe_Reachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestChecker(srv.URL+"/ping", time.Second)

	assert.True(t, c.Probe(context.Background()))
}

func TestChecker_Probe_ServerErrorStillReachable(t *testing.T) {
	// A 5xx answer proves the network path works; only transport
	// failures count as offline.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestChecker(srv.URL+"/ping", time.Second)

	assert.True(t, c.Probe(context.Background()))
}

func TestChecker_Probe_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	probeURL := srv.URL + "/ping"
	srv.Close()

	c := newTestChecker(probeURL, time.Second)

	assert.False(t, c.Probe(context.Background()))
}

// ── Background loop ──

func TestChecker_Start_DetectsOutageAndRecovery(t *testing.T) {
	// Arrange: a server that can be toggled off.
	var mu sync.Mutex
	up := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		if !up {
			hj, ok := w.(http.Hijacker)
			if ok {
				conn, _, err := hj.Hijack()
				if err == nil {
					conn.Close()
				}
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestChecker(srv.URL+"/ping", 10*time.Millisecond)

	transitions := make(chan bool, 16)
	c.Subscribe(func(online bool) {
		transitions <- online
	})

	// Act
	c.Start(context.Background())
	defer c.Stop()

	mu.Lock()
	up = false
	mu.Unlock()

	// Assert: the loop notices the outage...
	select {
	case online := <-transitions:
		assert.False(t, online)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for offline transition")
	}

	// ...and the recovery.
	mu.Lock()
	up = true
	mu.Unlock()

	select {
	case online := <-transitions:
		assert.True(t, online)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for online transition")
	}
}

func TestChecker_Stop_WithoutStart(t *testing.T) {
	c := newTestChecker("http://localhost:0/ping", time.Second)

	assert.NotPanics(t, func() {
		c.Stop()
		c.Stop()
	})
}

func TestChecker_Start_ReplacesPreviousLoop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := newTestChecker(srv.URL+"/ping", 10*time.Millisecond)

	c.Start(context.Background())
	c.Start(context.Background())
	c.Stop()

	assert.NotPanics(t, func() { c.Stop() })
}
