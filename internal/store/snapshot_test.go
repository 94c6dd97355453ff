package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevindrums92/baselineapp/internal/logger"
	"github.com/kevindrums92/baselineapp/models"
)

func TestSnapshotRepository_SaveLoadRoundTrip(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewSnapshotRepository(kv, logger.Nop())
	ctx := context.Background()

	snapshot := models.DefaultSnapshot()
	snapshot.OnboardingSeen = models.Bool(true)
	snapshot.Entries = []models.HistoryEntry{
		{ID: "e1", Day: "2026-08-20", Score: 4, CreatedAt: time.Now().UTC()},
	}
	snapshot.UpdatedAt = time.Now().UTC()

	require.NoError(t, repo.Save(ctx, &snapshot))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SchemaVersion, loaded.SchemaVersion)
	assert.True(t, loaded.OnboardingSeenValue())
	require.Len(t, loaded.Entries, 1)
	assert.Equal(t, "e1", loaded.Entries[0].ID)
}

func TestSnapshotRepository_LoadMissing(t *testing.T) {
	repo := NewSnapshotRepository(NewMemoryKV(), logger.Nop())

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestSnapshotRepository_LoadUnreadable(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewSnapshotRepository(kv, logger.Nop())
	ctx := context.Background()

	require.NoError(t, kv.Put(ctx, bucketState, keyCurrent, []byte("{broken")))

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestSnapshotRepository_LoadIncompatibleSchema(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewSnapshotRepository(kv, logger.Nop())
	ctx := context.Background()

	// A future build wrote this snapshot; this build must not trust it.
	raw := []byte(`{"schema_version": 999, "entries": []}`)
	require.NoError(t, kv.Put(ctx, bucketState, keyCurrent, raw))

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}

func TestSnapshotRepository_Clear(t *testing.T) {
	kv := NewMemoryKV()
	repo := NewSnapshotRepository(kv, logger.Nop())
	ctx := context.Background()

	snap := models.DefaultSnapshot()
	require.NoError(t, repo.Save(ctx, &snap))
	require.NoError(t, repo.Clear(ctx))

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, ErrSnapshotNotFound)
}
