package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/kevindrums92/baselineapp/internal/logger"
)

// Keys inside the flags bucket.
const (
	keyOnboardingSeen        = "onboarding_seen"
	keyWasAuthenticated      = "was_authenticated"
	keyLastAuth              = "last_auth"
	keyOAuthInProgress       = "oauth_in_progress"
	keyPendingVerificationAt = "pending_verification_at"
)

// flagsRepository is the KV-backed implementation of [FlagsRepository].
// Absent flags read as zero values; only driver failures surface as errors.
type flagsRepository struct {
	kv     KV
	logger *logger.Logger
}

type lastAuthRecord struct {
	Email    string `json:"email"`
	Provider string `json:"provider"`
}

// NewFlagsRepository constructs a [FlagsRepository] over the given driver.
func NewFlagsRepository(kv KV, logger *logger.Logger) FlagsRepository {
	return &flagsRepository{kv: kv, logger: logger}
}

func (r *flagsRepository) OnboardingSeen(ctx context.Context) (bool, error) {
	return r.getBool(ctx, keyOnboardingSeen)
}

func (r *flagsRepository) SetOnboardingSeen(ctx context.Context, seen bool) error {
	return r.putBool(ctx, keyOnboardingSeen, seen)
}

func (r *flagsRepository) WasAuthenticated(ctx context.Context) (bool, error) {
	return r.getBool(ctx, keyWasAuthenticated)
}

func (r *flagsRepository) SetWasAuthenticated(ctx context.Context, was bool) error {
	return r.putBool(ctx, keyWasAuthenticated, was)
}

func (r *flagsRepository) LastAuth(ctx context.Context) (string, string, error) {
	raw, err := r.kv.Get(ctx, bucketFlags, keyLastAuth)
	if errors.Is(err, ErrKeyNotFound) {
		return "", "", nil
	}
	if err != nil {
		return "", "", fmt.Errorf("get flag %s: %w", keyLastAuth, err)
	}

	var record lastAuthRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		r.logger.Warn().
			Err(err).
			Str("func", "flagsRepository.LastAuth").
			Msg("unreadable last-auth record")
		return "", "", nil
	}

	return record.Email, record.Provider, nil
}

func (r *flagsRepository) SetLastAuth(ctx context.Context, email, provider string) error {
	raw, err := json.Marshal(lastAuthRecord{Email: email, Provider: provider})
	if err != nil {
		return fmt.Errorf("encode flag %s: %w", keyLastAuth, err)
	}
	if err := r.kv.Put(ctx, bucketFlags, keyLastAuth, raw); err != nil {
		return fmt.Errorf("set flag %s: %w", keyLastAuth, err)
	}
	return nil
}

func (r *flagsRepository) OAuthInProgress(ctx context.Context) (bool, error) {
	return r.getBool(ctx, keyOAuthInProgress)
}

func (r *flagsRepository) SetOAuthInProgress(ctx context.Context, inProgress bool) error {
	return r.putBool(ctx, keyOAuthInProgress, inProgress)
}

func (r *flagsRepository) PendingVerificationAt(ctx context.Context) (time.Time, error) {
	raw, err := r.kv.Get(ctx, bucketFlags, keyPendingVerificationAt)
	if errors.Is(err, ErrKeyNotFound) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("get flag %s: %w", keyPendingVerificationAt, err)
	}

	at, err := time.Parse(time.RFC3339Nano, string(raw))
	if err != nil {
		r.logger.Warn().
			Err(err).
			Str("func", "flagsRepository.PendingVerificationAt").
			Msg("unreadable verification timestamp")
		return time.Time{}, nil
	}
	return at, nil
}

func (r *flagsRepository) SetPendingVerificationAt(ctx context.Context, at time.Time) error {
	raw := []byte(at.Format(time.RFC3339Nano))
	if err := r.kv.Put(ctx, bucketFlags, keyPendingVerificationAt, raw); err != nil {
		return fmt.Errorf("set flag %s: %w", keyPendingVerificationAt, err)
	}
	return nil
}

func (r *flagsRepository) ClearPendingVerification(ctx context.Context) error {
	if err := r.kv.Delete(ctx, bucketFlags, keyPendingVerificationAt); err != nil {
		return fmt.Errorf("clear flag %s: %w", keyPendingVerificationAt, err)
	}
	return nil
}

func (r *flagsRepository) ResetAll(ctx context.Context) error {
	if err := r.kv.DeleteBucket(ctx, bucketFlags); err != nil {
		return fmt.Errorf("reset flags: %w", err)
	}
	return nil
}

func (r *flagsRepository) getBool(ctx context.Context, key string) (bool, error) {
	raw, err := r.kv.Get(ctx, bucketFlags, key)
	if errors.Is(err, ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get flag %s: %w", key, err)
	}

	var value bool
	if err := json.Unmarshal(raw, &value); err != nil {
		r.logger.Warn().
			Err(err).
			Str("func", "flagsRepository.getBool").
			Str("flag", key).
			Msg("unreadable flag value")
		return false, nil
	}
	return value, nil
}

func (r *flagsRepository) putBool(ctx context.Context, key string, value bool) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode flag %s: %w", key, err)
	}
	if err := r.kv.Put(ctx, bucketFlags, key, raw); err != nil {
		return fmt.Errorf("set flag %s: %w", key, err)
	}
	return nil
}
