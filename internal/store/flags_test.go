package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kevindrums92/baselineapp/internal/logger"
)

func newTestFlags(t *testing.T) FlagsRepository {
	t.Helper()
	return NewFlagsRepository(NewMemoryKV(), logger.Nop())
}

func TestFlagsRepository_DefaultsAreZero(t *testing.T) {
	flags := newTestFlags(t)
	ctx := context.Background()

	seen, err := flags.OnboardingSeen(ctx)
	require.NoError(t, err)
	assert.False(t, seen)

	was, err := flags.WasAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, was)

	email, provider, err := flags.LastAuth(ctx)
	require.NoError(t, err)
	assert.Empty(t, email)
	assert.Empty(t, provider)

	inProgress, err := flags.OAuthInProgress(ctx)
	require.NoError(t, err)
	assert.False(t, inProgress)

	at, err := flags.PendingVerificationAt(ctx)
	require.NoError(t, err)
	assert.True(t, at.IsZero())
}

func TestFlagsRepository_BoolRoundTrips(t *testing.T) {
	flags := newTestFlags(t)
	ctx := context.Background()

	require.NoError(t, flags.SetOnboardingSeen(ctx, true))
	require.NoError(t, flags.SetWasAuthenticated(ctx, true))
	require.NoError(t, flags.SetOAuthInProgress(ctx, true))

	seen, err := flags.OnboardingSeen(ctx)
	require.NoError(t, err)
	assert.True(t, seen)

	was, err := flags.WasAuthenticated(ctx)
	require.NoError(t, err)
	assert.True(t, was)

	inProgress, err := flags.OAuthInProgress(ctx)
	require.NoError(t, err)
	assert.True(t, inProgress)

	// Flipping back works too.
	require.NoError(t, flags.SetOAuthInProgress(ctx, false))
	inProgress, err = flags.OAuthInProgress(ctx)
	require.NoError(t, err)
	assert.False(t, inProgress)
}

func TestFlagsRepository_LastAuthRoundTrip(t *testing.T) {
	flags := newTestFlags(t)
	ctx := context.Background()

	require.NoError(t, flags.SetLastAuth(ctx, "dev@example.com", "google"))

	email, provider, err := flags.LastAuth(ctx)
	require.NoError(t, err)
	assert.Equal(t, "dev@example.com", email)
	assert.Equal(t, "google", provider)
}

func TestFlagsRepository_PendingVerificationRoundTrip(t *testing.T) {
	flags := newTestFlags(t)
	ctx := context.Background()

	at := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, flags.SetPendingVerificationAt(ctx, at))

	got, err := flags.PendingVerificationAt(ctx)
	require.NoError(t, err)
	assert.True(t, got.Equal(at), "expected %v, got %v", at, got)

	require.NoError(t, flags.ClearPendingVerification(ctx))

	got, err = flags.PendingVerificationAt(ctx)
	require.NoError(t, err)
	assert.True(t, got.IsZero())
}

func TestFlagsRepository_ResetAll(t *testing.T) {
	flags := newTestFlags(t)
	ctx := context.Background()

	require.NoError(t, flags.SetOnboardingSeen(ctx, true))
	require.NoError(t, flags.SetWasAuthenticated(ctx, true))
	require.NoError(t, flags.SetLastAuth(ctx, "dev@example.com", "google"))
	require.NoError(t, flags.SetPendingVerificationAt(ctx, time.Now()))

	require.NoError(t, flags.ResetAll(ctx))

	seen, err := flags.OnboardingSeen(ctx)
	require.NoError(t, err)
	assert.False(t, seen)

	was, err := flags.WasAuthenticated(ctx)
	require.NoError(t, err)
	assert.False(t, was)

	email, _, err := flags.LastAuth(ctx)
	require.NoError(t, err)
	assert.Empty(t, email)

	at, err := flags.PendingVerificationAt(ctx)
	require.NoError(t, err)
	assert.True(t, at.IsZero())
}
