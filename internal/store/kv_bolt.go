package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/kevindrums92/baselineapp/internal/logger"
)

const lockBucket = "locks"

// BoltKV is the bbolt-backed driver: a single file, transactional, no
// external process. bbolt takes an exclusive file lock, so this driver
// suits one app process at a time; the advisory lock still matters for
// goroutines sharing the handle and for lease hand-off across restarts.
// It implements both [KV] and [Locker].
type BoltKV struct {
	db     *bbolt.DB
	logger *logger.Logger
}

type boltLease struct {
	Owner     string    `json:"owner"`
	ExpiresAt time.Time `json:"expires_at"`
}

// NewBoltKV opens (or creates) the bbolt file at path.
func NewBoltKV(path string, log *logger.Logger) (*BoltKV, error) {
	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	log.Debug().Str("func", "NewBoltKV").Str("path", path).Msg("opened bolt store")
	return &BoltKV{db: db, logger: log}, nil
}

func (b *BoltKV) Get(_ context.Context, bucket, key string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket([]byte(bucket))
		if bkt == nil {
			return ErrKeyNotFound
		}
		value := bkt.Get([]byte(key))
		if value == nil {
			return ErrKeyNotFound
		}
		out = make([]byte, len(value))
		copy(out, value)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (b *BoltKV) Put(_ context.Context, bucket, key string, value []byte) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
		}
		if err := bkt.Put([]byte(key), value); err != nil {
			return fmt.Errorf("failed to put %s/%s: %w", bucket, key, err)
		}
		return nil
	})
}

func (b *BoltKV) Delete(_ context.Context, bucket, key string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket([]byte(bucket))
		if bkt == nil {
			return nil
		}
		if err := bkt.Delete([]byte(key)); err != nil {
			return fmt.Errorf("failed to delete %s/%s: %w", bucket, key, err)
		}
		return nil
	})
}

func (b *BoltKV) DeleteBucket(_ context.Context, bucket string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		err := tx.DeleteBucket([]byte(bucket))
		if err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
			return fmt.Errorf("failed to delete bucket %s: %w", bucket, err)
		}
		return nil
	})
}

func (b *BoltKV) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

// TryAcquire implements [Locker] with a compare-and-set inside one bolt
// write transaction.
func (b *BoltKV) TryAcquire(_ context.Context, name, owner string, ttl time.Duration) (bool, error) {
	acquired := false
	err := b.db.Update(func(tx *bbolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte(lockBucket))
		if err != nil {
			return fmt.Errorf("failed to create lock bucket: %w", err)
		}

		now := time.Now()
		if raw := bkt.Get([]byte(name)); raw != nil {
			var lease boltLease
			if err := json.Unmarshal(raw, &lease); err == nil {
				if lease.Owner != owner && now.Before(lease.ExpiresAt) {
					return nil
				}
			}
			// Corrupted lease records are treated as expired.
		}

		raw, err := json.Marshal(boltLease{Owner: owner, ExpiresAt: now.Add(ttl)})
		if err != nil {
			return fmt.Errorf("failed to marshal lease: %w", err)
		}
		if err := bkt.Put([]byte(name), raw); err != nil {
			return fmt.Errorf("failed to store lease: %w", err)
		}

		acquired = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return acquired, nil
}

func (b *BoltKV) Release(_ context.Context, name, owner string) error {
	return b.db.Update(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket([]byte(lockBucket))
		if bkt == nil {
			return nil
		}

		raw := bkt.Get([]byte(name))
		if raw == nil {
			return nil
		}

		var lease boltLease
		if err := json.Unmarshal(raw, &lease); err == nil && lease.Owner != owner {
			return nil
		}

		if err := bkt.Delete([]byte(name)); err != nil {
			return fmt.Errorf("failed to release lock %s: %w", name, err)
		}
		return nil
	})
}
