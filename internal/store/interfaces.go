package store

import (
	"context"
	"time"

	"github.com/kevindrums92/baselineapp/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// KV is the minimal bucketed key-value contract every local store driver
// implements. Values are opaque byte slices; callers own serialization.
type KV interface {
	// Get returns the value stored under bucket/key, or [ErrKeyNotFound].
	Get(ctx context.Context, bucket, key string) ([]byte, error)
	// Put stores value under bucket/key, creating the bucket if needed.
	Put(ctx context.Context, bucket, key string, value []byte) error
	// Delete removes bucket/key. Deleting an absent key is not an error.
	Delete(ctx context.Context, bucket, key string) error
	// DeleteBucket removes a bucket and everything in it. Deleting an
	// absent bucket is not an error.
	DeleteBucket(ctx context.Context, bucket string) error
	// Close releases the underlying resources.
	Close() error
}

// Locker is an advisory lock shared by every process that opens the same
// store. Acquisition never blocks: a held lock simply reports false.
type Locker interface {
	// TryAcquire attempts to take the named lock for owner with the given
	// lease. It returns true if the lock was free, already owned by owner
	// (the lease is then extended), or expired. It returns false without
	// waiting when another live owner holds it.
	TryAcquire(ctx context.Context, name, owner string, ttl time.Duration) (bool, error)
	// Release frees the named lock if owner still holds it. Releasing a
	// lock held by someone else (or nobody) is a no-op.
	Release(ctx context.Context, name, owner string) error
}

// SnapshotRepository persists the reconciled application snapshot.
type SnapshotRepository interface {
	// Load returns the stored snapshot, or [ErrSnapshotNotFound] when no
	// snapshot exists or the stored one has an incompatible schema version.
	Load(ctx context.Context) (*models.Snapshot, error)
	// Save overwrites the stored snapshot.
	Save(ctx context.Context, snapshot *models.Snapshot) error
	// Clear removes the stored snapshot.
	Clear(ctx context.Context) error
}

// PendingRepository persists the single not-yet-pushed snapshot. At most one
// pending snapshot exists; writing a new one replaces the previous.
type PendingRepository interface {
	// Get returns the buffered snapshot, or [ErrPendingNotFound].
	Get(ctx context.Context) (*models.Snapshot, error)
	// Has reports whether a buffered snapshot exists.
	Has(ctx context.Context) (bool, error)
	// Set replaces the buffered snapshot.
	Set(ctx context.Context, snapshot *models.Snapshot) error
	// Clear drops the buffered snapshot.
	Clear(ctx context.Context) error
}

// FlagsRepository persists small bookkeeping flags that must survive
// restarts but are not part of the snapshot itself.
type FlagsRepository interface {
	OnboardingSeen(ctx context.Context) (bool, error)
	SetOnboardingSeen(ctx context.Context, seen bool) error

	// WasAuthenticated reports whether a cloud session existed before the
	// current run. Used to tell a signed-out restart from a first run.
	WasAuthenticated(ctx context.Context) (bool, error)
	SetWasAuthenticated(ctx context.Context, was bool) error

	// LastAuth returns the email and provider of the most recent sign-in.
	LastAuth(ctx context.Context) (email, provider string, err error)
	SetLastAuth(ctx context.Context, email, provider string) error

	// OAuthInProgress marks that a provider redirect has started and has
	// not come back yet.
	OAuthInProgress(ctx context.Context) (bool, error)
	SetOAuthInProgress(ctx context.Context, inProgress bool) error

	// PendingVerificationAt returns when the latest unverified sign-up
	// happened, or the zero time when none is recorded.
	PendingVerificationAt(ctx context.Context) (time.Time, error)
	SetPendingVerificationAt(ctx context.Context, at time.Time) error
	ClearPendingVerification(ctx context.Context) error

	// ResetAll clears every flag in one sweep.
	ResetAll(ctx context.Context) error
}

// SessionRepository caches the provider-issued session for degraded offline
// resolution. Implementations seal the session at rest.
type SessionRepository interface {
	// Load returns the cached session, or [ErrSessionNotFound].
	Load(ctx context.Context) (*models.Session, error)
	// Save overwrites the cached session.
	Save(ctx context.Context, session *models.Session) error
	// Clear removes the cached session.
	Clear(ctx context.Context) error
}
