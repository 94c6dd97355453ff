package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kevindrums92/baselineapp/internal/crypto"
	"github.com/kevindrums92/baselineapp/internal/logger"
	"github.com/kevindrums92/baselineapp/models"
)

// sessionRepository is the KV-backed implementation of [SessionRepository].
// Sessions are sealed by the device keychain before they touch the driver,
// so tokens never sit on disk in the clear.
type sessionRepository struct {
	kv       KV
	keychain crypto.Keychain
	logger   *logger.Logger
}

// NewSessionRepository constructs a [SessionRepository] over the given
// driver and keychain.
func NewSessionRepository(kv KV, keychain crypto.Keychain, logger *logger.Logger) SessionRepository {
	return &sessionRepository{kv: kv, keychain: keychain, logger: logger}
}

func (r *sessionRepository) Load(ctx context.Context) (*models.Session, error) {
	raw, err := r.kv.Get(ctx, bucketSession, keyCurrent)
	if errors.Is(err, ErrKeyNotFound) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load cached session: %w", err)
	}

	plain, err := r.keychain.Open(string(raw))
	if err != nil {
		r.logger.Warn().
			Err(err).
			Str("func", "sessionRepository.Load").
			Msg("cached session cannot be unsealed")
		return nil, ErrSessionSealBroken
	}

	var session models.Session
	if err := json.Unmarshal(plain, &session); err != nil {
		r.logger.Warn().
			Err(err).
			Str("func", "sessionRepository.Load").
			Msg("cached session is unreadable")
		return nil, ErrSessionSealBroken
	}

	return &session, nil
}

func (r *sessionRepository) Save(ctx context.Context, session *models.Session) error {
	plain, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	sealed, err := r.keychain.Seal(plain)
	if err != nil {
		return fmt.Errorf("seal session: %w", err)
	}

	if err := r.kv.Put(ctx, bucketSession, keyCurrent, []byte(sealed)); err != nil {
		return fmt.Errorf("save cached session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Clear(ctx context.Context) error {
	if err := r.kv.Delete(ctx, bucketSession, keyCurrent); err != nil {
		return fmt.Errorf("clear cached session: %w", err)
	}
	return nil
}
