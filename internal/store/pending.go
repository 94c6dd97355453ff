package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kevindrums92/baselineapp/internal/logger"
	"github.com/kevindrums92/baselineapp/models"
)

// pendingRepository is the KV-backed implementation of [PendingRepository].
// The buffer holds at most one snapshot: each Set replaces the previous
// value, so only the latest unsynced state ever waits for a push.
type pendingRepository struct {
	kv     KV
	logger *logger.Logger
}

// NewPendingRepository constructs a [PendingRepository] over the given
// driver.
func NewPendingRepository(kv KV, logger *logger.Logger) PendingRepository {
	return &pendingRepository{kv: kv, logger: logger}
}

func (r *pendingRepository) Get(ctx context.Context) (*models.Snapshot, error) {
	raw, err := r.kv.Get(ctx, bucketPending, keyCurrent)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, ErrPendingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get pending snapshot: %w", err)
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		r.logger.Warn().
			Err(err).
			Str("func", "pendingRepository.Get").
			Msg("pending snapshot is unreadable, dropping it")
		_ = r.kv.Delete(ctx, bucketPending, keyCurrent)
		return nil, ErrPendingNotFound
	}

	return &snapshot, nil
}

func (r *pendingRepository) Has(ctx context.Context) (bool, error) {
	_, err := r.kv.Get(ctx, bucketPending, keyCurrent)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check pending snapshot: %w", err)
	}
	return true, nil
}

func (r *pendingRepository) Set(ctx context.Context, snapshot *models.Snapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode pending snapshot: %w", err)
	}

	if err := r.kv.Put(ctx, bucketPending, keyCurrent, raw); err != nil {
		return fmt.Errorf("set pending snapshot: %w", err)
	}
	return nil
}

func (r *pendingRepository) Clear(ctx context.Context) error {
	if err := r.kv.Delete(ctx, bucketPending, keyCurrent); err != nil {
		return fmt.Errorf("clear pending snapshot: %w", err)
	}
	return nil
}
