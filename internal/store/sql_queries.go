package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

// sqlBuilder is the shared squirrel builder. SQLite uses ? placeholders.
var sqlBuilder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func buildGetKVQuery(bucket, key string) (string, []any, error) {
	return sqlBuilder.
		Select("value").
		From("kv").
		Where(sq.Eq{"bucket": bucket, "key": key}).
		ToSql()
}

func buildPutKVQuery(bucket, key string, value []byte, now time.Time) (string, []any, error) {
	return sqlBuilder.
		Insert("kv").
		Columns("bucket", "key", "value", "updated_at").
		Values(bucket, key, value, now.UnixNano()).
		Suffix("ON CONFLICT(bucket, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
}

func buildDeleteKVQuery(bucket, key string) (string, []any, error) {
	return sqlBuilder.
		Delete("kv").
		Where(sq.Eq{"bucket": bucket, "key": key}).
		ToSql()
}

func buildDeleteBucketQuery(bucket string) (string, []any, error) {
	return sqlBuilder.
		Delete("kv").
		Where(sq.Eq{"bucket": bucket}).
		ToSql()
}

// buildAcquireLockQuery produces a single-statement compare-and-set: the
// insert wins outright on a free lock, and the conflict clause steals the
// row only when the current lease belongs to the same owner or has expired.
// On contention the WHERE filters the update out and zero rows change.
func buildAcquireLockQuery(name, owner string, now time.Time, ttl time.Duration) (string, []any, error) {
	return sqlBuilder.
		Insert("locks").
		Columns("name", "owner", "expires_at").
		Values(name, owner, now.Add(ttl).UnixNano()).
		Suffix(
			"ON CONFLICT(name) DO UPDATE SET owner = excluded.owner, expires_at = excluded.expires_at "+
				"WHERE locks.owner = excluded.owner OR locks.expires_at <= ?",
			now.UnixNano(),
		).
		ToSql()
}

func buildReleaseLockQuery(name, owner string) (string, []any, error) {
	return sqlBuilder.
		Delete("locks").
		Where(sq.Eq{"name": name, "owner": owner}).
		ToSql()
}
