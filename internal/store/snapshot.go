package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kevindrums92/baselineapp/internal/logger"
	"github.com/kevindrums92/baselineapp/models"
)

// Bucket and key layout shared by all repositories. One bucket per concern
// keeps destructive sweeps (sign-out wipe) scoped.
const (
	bucketState   = "state"
	bucketPending = "pending"
	bucketFlags   = "flags"
	bucketSession = "session"

	keyCurrent = "current"
)

// snapshotRepository is the KV-backed implementation of
// [SnapshotRepository].
type snapshotRepository struct {
	kv     KV
	logger *logger.Logger
}

// NewSnapshotRepository constructs a [SnapshotRepository] over the given
// driver.
func NewSnapshotRepository(kv KV, logger *logger.Logger) SnapshotRepository {
	return &snapshotRepository{kv: kv, logger: logger}
}

// Load returns the stored snapshot. A snapshot that cannot be decoded or
// that carries a schema version this build does not understand is reported
// as [ErrSnapshotNotFound]: the caller falls back to defaults instead of
// failing startup on a stale file.
func (r *snapshotRepository) Load(ctx context.Context) (*models.Snapshot, error) {
	raw, err := r.kv.Get(ctx, bucketState, keyCurrent)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		r.logger.Warn().
			Err(err).
			Str("func", "snapshotRepository.Load").
			Msg("stored snapshot is unreadable, treating as absent")
		return nil, ErrSnapshotNotFound
	}

	if snapshot.SchemaVersion != models.SchemaVersion {
		r.logger.Warn().
			Str("func", "snapshotRepository.Load").
			Int("stored_version", snapshot.SchemaVersion).
			Int("supported_version", models.SchemaVersion).
			Msg("stored snapshot has incompatible schema, treating as absent")
		return nil, ErrSnapshotNotFound
	}

	return &snapshot, nil
}

func (r *snapshotRepository) Save(ctx context.Context, snapshot *models.Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	if err := r.kv.Put(ctx, bucketState, keyCurrent, raw); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepository) Clear(ctx context.Context) error {
	if err := r.kv.Delete(ctx, bucketState, keyCurrent); err != nil {
		return fmt.Errorf("clear snapshot: %w", err)
	}
	return nil
}
