package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevindrums92/baselineapp/internal/logger"
)

func newTestBoltKV(t *testing.T) *BoltKV {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	kv, err := NewBoltKV(path, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func TestBoltKV_PutGetRoundTrip(t *testing.T) {
	kv := newTestBoltKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, "state", "current", []byte("payload")))

	got, err := kv.Get(ctx, "state", "current")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), got)
}

func TestBoltKV_GetMissing(t *testing.T) {
	kv := newTestBoltKV(t)
	ctx := context.Background()

	_, err := kv.Get(ctx, "state", "current")
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestBoltKV_Overwrite(t *testing.T) {
	kv := newTestBoltKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, "pending", "current", []byte("first")))
	require.NoError(t, kv.Put(ctx, "pending", "current", []byte("second")))

	got, err := kv.Get(ctx, "pending", "current")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)
}

func TestBoltKV_DeleteAndDeleteBucket(t *testing.T) {
	kv := newTestBoltKV(t)
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, "flags", "a", []byte("1")))
	require.NoError(t, kv.Put(ctx, "flags", "b", []byte("2")))

	require.NoError(t, kv.Delete(ctx, "flags", "a"))
	_, err := kv.Get(ctx, "flags", "a")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, kv.DeleteBucket(ctx, "flags"))
	_, err = kv.Get(ctx, "flags", "b")
	assert.ErrorIs(t, err, ErrKeyNotFound)

	// Absent targets are not errors.
	assert.NoError(t, kv.Delete(ctx, "flags", "a"))
	assert.NoError(t, kv.DeleteBucket(ctx, "flags"))
}

func TestBoltKV_Persistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "persist.db")
	ctx := context.Background()

	kv, err := NewBoltKV(path, logger.Nop())
	require.NoError(t, err)
	require.NoError(t, kv.Put(ctx, "state", "current", []byte("survives")))
	require.NoError(t, kv.Close())

	reopened, err := NewBoltKV(path, logger.Nop())
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Get(ctx, "state", "current")
	require.NoError(t, err)
	assert.Equal(t, []byte("survives"), got)
}

func TestBoltKV_Locker(t *testing.T) {
	kv := newTestBoltKV(t)
	ctx := context.Background()

	ok, err := kv.TryAcquire(ctx, "sync.push", "proc-1", time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = kv.TryAcquire(ctx, "sync.push", "proc-2", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "live lease of another owner must not be stolen")

	// Same owner re-acquires freely.
	ok, err = kv.TryAcquire(ctx, "sync.push", "proc-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, kv.Release(ctx, "sync.push", "proc-1"))

	ok, err = kv.TryAcquire(ctx, "sync.push", "proc-2", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBoltKV_Locker_ExpiredLeaseIsStolen(t *testing.T) {
	kv := newTestBoltKV(t)
	ctx := context.Background()

	ok, err := kv.TryAcquire(ctx, "sync.push", "crashed", 10*time.Millisecond)
	require.NoError(t, err)
	require.True(t, ok)

	time.Sleep(20 * time.Millisecond)

	ok, err = kv.TryAcquire(ctx, "sync.push", "fresh", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok, "expired lease must be reclaimable")
}
