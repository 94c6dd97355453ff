package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevindrums92/baselineapp/internal/crypto"
	"github.com/kevindrums92/baselineapp/internal/logger"
	"github.com/kevindrums92/baselineapp/models"
)

func newTestSessionRepo(t *testing.T) (SessionRepository, *MemoryKV) {
	t.Helper()
	kc, err := crypto.NewEphemeralKeychain()
	require.NoError(t, err)
	kv := NewMemoryKV()
	return NewSessionRepository(kv, kc, logger.Nop()), kv
}

func TestSessionRepository_SaveLoadRoundTrip(t *testing.T) {
	repo, _ := newTestSessionRepo(t)
	ctx := context.Background()

	session := &models.Session{
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
		ExpiresAt:    time.Now().Add(time.Hour).UTC().Truncate(time.Second),
		User: models.Identity{
			UserID:   "user-42",
			Email:    "dev@example.com",
			Provider: "google",
		},
	}

	require.NoError(t, repo.Save(ctx, session))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, session.AccessToken, loaded.AccessToken)
	assert.Equal(t, session.RefreshToken, loaded.RefreshToken)
	assert.Equal(t, session.User, loaded.User)
	assert.True(t, session.ExpiresAt.Equal(loaded.ExpiresAt))
}

func TestSessionRepository_SessionIsSealedAtRest(t *testing.T) {
	repo, kv := newTestSessionRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &models.Session{AccessToken: "super-secret"}))

	raw, err := kv.Get(ctx, bucketSession, keyCurrent)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "super-secret", "token must not sit on disk in the clear")
}

func TestSessionRepository_LoadMissing(t *testing.T) {
	repo, _ := newTestSessionRepo(t)

	_, err := repo.Load(context.Background())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionRepository_LoadWithForeignKeyFails(t *testing.T) {
	// Session sealed under one device key, read under another: the blob
	// survives but cannot be opened.
	kcOld, err := crypto.NewEphemeralKeychain()
	require.NoError(t, err)
	kcNew, err := crypto.NewEphemeralKeychain()
	require.NoError(t, err)

	kv := NewMemoryKV()
	ctx := context.Background()

	writer := NewSessionRepository(kv, kcOld, logger.Nop())
	require.NoError(t, writer.Save(ctx, &models.Session{AccessToken: "abc"}))

	reader := NewSessionRepository(kv, kcNew, logger.Nop())
	_, err = reader.Load(ctx)
	assert.ErrorIs(t, err, ErrSessionSealBroken)
}

func TestSessionRepository_Clear(t *testing.T) {
	repo, _ := newTestSessionRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, &models.Session{AccessToken: "abc"}))
	require.NoError(t, repo.Clear(ctx))

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// Clearing an empty cache is a no-op.
	assert.NoError(t, repo.Clear(ctx))
}
