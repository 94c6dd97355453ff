package store

import (
	"context"
	"fmt"

	"github.com/kevindrums92/baselineapp/internal/config"
	"github.com/kevindrums92/baselineapp/internal/crypto"
	"github.com/kevindrums92/baselineapp/internal/logger"
)

// Storages groups all local repositories into a single value that can be
// passed around the service layer, plus the advisory [Locker] backed by the
// same driver.
type Storages struct {
	// Snapshot is the reconciled application state.
	Snapshot SnapshotRepository
	// Pending is the at-most-one buffer of unsynced state.
	Pending PendingRepository
	// Flags is the small persistent bookkeeping set.
	Flags FlagsRepository
	// Session is the sealed cache of the provider session.
	Session SessionRepository
	// Locker serializes pushes across processes sharing the store.
	Locker Locker

	kv KV
}

// NewStorages initialises the local storage layer using the supplied
// configuration and logger. The driver selected by cfg.Driver decides
// durability and sharing:
//
//	memory — process-local, nothing survives exit
//	bolt   — single file, exclusive to one process
//	sqlite — single file, shareable between processes
func NewStorages(ctx context.Context, cfg config.Storage, keychain crypto.Keychain, log *logger.Logger) (*Storages, error) {
	log.Info().Str("driver", cfg.Driver).Msg("creating new storages...")

	var (
		kv     KV
		locker Locker
	)
	switch cfg.Driver {
	case "memory":
		m := NewMemoryKV()
		kv, locker = m, m
	case "bolt":
		b, err := NewBoltKV(cfg.Path, log)
		if err != nil {
			return nil, fmt.Errorf("bolt store: %w", err)
		}
		kv, locker = b, b
	case "sqlite":
		s, err := NewSQLiteKV(ctx, cfg.Path, log)
		if err != nil {
			return nil, fmt.Errorf("sqlite store: %w", err)
		}
		kv, locker = s, s
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}

	return &Storages{
		Snapshot: NewSnapshotRepository(kv, log),
		Pending:  NewPendingRepository(kv, log),
		Flags:    NewFlagsRepository(kv, log),
		Session:  NewSessionRepository(kv, keychain, log),
		Locker:   locker,
		kv:       kv,
	}, nil
}

// Close releases the underlying driver.
func (s *Storages) Close() error {
	return s.kv.Close()
}
