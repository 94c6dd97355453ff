package lock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevindrums92/baselineapp/internal/logger"
	"github.com/kevindrums92/baselineapp/internal/store"
)

func TestAdvisory_AcquireRelease(t *testing.T) {
	locker := store.NewMemoryKV()
	adv := NewAdvisory(locker, PushLockName, 5*time.Second, logger.Nop())
	ctx := context.Background()

	ok, err := adv.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, adv.Release(ctx))

	// Reacquirable after release.
	ok, err = adv.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAdvisory_ContentionBetweenInstances(t *testing.T) {
	// Two engine instances sharing one store: distinct owner ids.
	locker := store.NewMemoryKV()
	first := NewAdvisory(locker, PushLockName, time.Minute, logger.Nop())
	second := NewAdvisory(locker, PushLockName, time.Minute, logger.Nop())
	ctx := context.Background()

	require.NotEqual(t, first.Owner(), second.Owner())

	ok, err := first.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = second.Acquire(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "second context must not steal a live lease")

	// After the holder releases, the other side gets through.
	require.NoError(t, first.Release(ctx))

	ok, err = second.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAdvisory_ReacquireExtendsOwnLease(t *testing.T) {
	locker := store.NewMemoryKV()
	adv := NewAdvisory(locker, PushLockName, time.Minute, logger.Nop())
	ctx := context.Background()

	ok, err := adv.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = adv.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok, "holder re-acquires its own lock")
}

func TestAdvisory_ExpiredLeaseIsReclaimed(t *testing.T) {
	locker := store.NewMemoryKV()
	crashed := NewAdvisory(locker, PushLockName, 10*time.Millisecond, logger.Nop())
	fresh := NewAdvisory(locker, PushLockName, time.Minute, logger.Nop())
	ctx := context.Background()

	ok, err := crashed.Acquire(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	// The "crashed" holder never releases; its lease simply runs out.
	time.Sleep(20 * time.Millisecond)

	ok, err = fresh.Acquire(ctx)
	require.NoError(t, err)
	assert.True(t, ok, "a dead holder must not wedge pushes forever")
}

type failingLocker struct{ err error }

func (f *failingLocker) TryAcquire(context.Context, string, string, time.Duration) (bool, error) {
	return false, f.err
}

func (f *failingLocker) Release(context.Context, string, string) error { return f.err }

func TestAdvisory_PropagatesDriverErrors(t *testing.T) {
	driverErr := errors.New("database is locked")
	adv := NewAdvisory(&failingLocker{err: driverErr}, PushLockName, time.Second, logger.Nop())
	ctx := context.Background()

	_, err := adv.Acquire(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, driverErr)

	err = adv.Release(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, driverErr)
}
