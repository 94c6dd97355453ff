// Package lock provides the cross-context advisory lock that serializes
// pushes between every process and goroutine sharing one local store.
package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/kevindrums92/baselineapp/internal/logger"
	"github.com/kevindrums92/baselineapp/internal/store"
	"github.com/kevindrums92/baselineapp/internal/utils"
)

// PushLockName is the lock every pushing context competes for.
const PushLockName = "sync.push"

// Advisory wraps a [store.Locker] with a per-instance owner id and a fixed
// lease. Acquisition is fail-fast: contention means another context is
// already pushing the same store, so the caller treats the work as handed
// off rather than wait. A crashed holder stops renewing and the lease
// expires on its own.
type Advisory struct {
	locker store.Locker
	name   string
	owner  string
	ttl    time.Duration
	logger *logger.Logger
}

// NewAdvisory creates an advisory lock handle with a fresh owner id.
func NewAdvisory(locker store.Locker, name string, ttl time.Duration, log *logger.Logger) *Advisory {
	return &Advisory{
		locker: locker,
		name:   name,
		owner:  utils.NewID(),
		ttl:    ttl,
		logger: log,
	}
}

// Acquire attempts to take the lock. It returns false immediately when
// another live owner holds it; it never waits.
func (a *Advisory) Acquire(ctx context.Context) (bool, error) {
	ok, err := a.locker.TryAcquire(ctx, a.name, a.owner, a.ttl)
	if err != nil {
		a.logger.Err(err).
			Str("func", "Advisory.Acquire").
			Str("lock", a.name).
			Msg("lock acquisition failed")
		return false, fmt.Errorf("acquire %s: %w", a.name, err)
	}

	if !ok {
		a.logger.Debug().
			Str("func", "Advisory.Acquire").
			Str("lock", a.name).
			Msg("lock is held elsewhere")
	}
	return ok, nil
}

// Release frees the lock if this instance still holds it. Releasing a lock
// that expired or was never taken is a no-op.
func (a *Advisory) Release(ctx context.Context) error {
	if err := a.locker.Release(ctx, a.name, a.owner); err != nil {
		a.logger.Err(err).
			Str("func", "Advisory.Release").
			Str("lock", a.name).
			Msg("lock release failed")
		return fmt.Errorf("release %s: %w", a.name, err)
	}
	return nil
}

// Owner returns this instance's owner id. Useful in logs.
func (a *Advisory) Owner() string { return a.owner }

// TTL returns the lease duration the lock is taken with.
func (a *Advisory) TTL() time.Duration { return a.ttl }
