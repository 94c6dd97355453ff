package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/kevindrums92/baselineapp/internal/logger"
)

// SQLiteKV is the SQLite-backed driver. Unlike bolt, SQLite allows several
// processes to share one file, which makes its locks table a true
// cross-process advisory lock. It implements both [KV] and [Locker].
type SQLiteKV struct {
	db *DB
}

// NewSQLiteKV opens the SQLite store at path, migrating it if needed.
func NewSQLiteKV(ctx context.Context, path string, log *logger.Logger) (*SQLiteKV, error) {
	db, err := NewConnectSQLite(ctx, path, log)
	if err != nil {
		return nil, err
	}
	return &SQLiteKV{db: db}, nil
}

// newSQLiteKVFromDB wires an existing connection. Used by tests.
func newSQLiteKVFromDB(db *DB) *SQLiteKV {
	return &SQLiteKV{db: db}
}

func (s *SQLiteKV) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	query, args, err := buildGetKVQuery(bucket, key)
	if err != nil {
		s.db.logger.Err(err).Str("func", "SQLiteKV.Get").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value []byte
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		s.db.logger.Err(err).
			Str("func", "SQLiteKV.Get").
			Str("bucket", bucket).
			Msg("failed to read value")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return value, nil
}

func (s *SQLiteKV) Put(ctx context.Context, bucket, key string, value []byte) error {
	query, args, err := buildPutKVQuery(bucket, key, value, time.Now())
	if err != nil {
		s.db.logger.Err(err).Str("func", "SQLiteKV.Put").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.db.logger.Err(err).
			Str("func", "SQLiteKV.Put").
			Str("bucket", bucket).
			Msg("failed to store value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *SQLiteKV) Delete(ctx context.Context, bucket, key string) error {
	query, args, err := buildDeleteKVQuery(bucket, key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.db.logger.Err(err).
			Str("func", "SQLiteKV.Delete").
			Str("bucket", bucket).
			Msg("failed to delete value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *SQLiteKV) DeleteBucket(ctx context.Context, bucket string) error {
	query, args, err := buildDeleteBucketQuery(bucket)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.db.logger.Err(err).
			Str("func", "SQLiteKV.DeleteBucket").
			Str("bucket", bucket).
			Msg("failed to delete bucket")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (s *SQLiteKV) Close() error {
	return s.db.Close()
}

// TryAcquire implements [Locker] via a single upsert; see
// [buildAcquireLockQuery] for the compare-and-set semantics.
func (s *SQLiteKV) TryAcquire(ctx context.Context, name, owner string, ttl time.Duration) (bool, error) {
	query, args, err := buildAcquireLockQuery(name, owner, time.Now(), ttl)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		s.db.logger.Err(err).
			Str("func", "SQLiteKV.TryAcquire").
			Str("lock", name).
			Msg("failed to execute lock upsert")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return rows > 0, nil
}

func (s *SQLiteKV) Release(ctx context.Context, name, owner string) error {
	query, args, err := buildReleaseLockQuery(name, owner)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		s.db.logger.Err(err).
			Str("func", "SQLiteKV.Release").
			Str("lock", name).
			Msg("failed to release lock")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
