package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrKeyNotFound is returned by [KV.Get] when the requested bucket or
	// key does not exist.
	ErrKeyNotFound = errors.New("key not found")

	// ErrSnapshotNotFound is returned when no usable snapshot is stored:
	// either nothing was ever saved, or the stored snapshot carries an
	// incompatible schema version.
	ErrSnapshotNotFound = errors.New("snapshot not found")

	// ErrPendingNotFound is returned when no snapshot is waiting to be
	// pushed.
	ErrPendingNotFound = errors.New("pending snapshot not found")

	// ErrSessionNotFound is returned when no session is cached locally.
	ErrSessionNotFound = errors.New("cached session not found")

	// ErrSessionSealBroken is returned when a cached session exists but
	// cannot be opened, e.g. after the device key file was replaced.
	ErrSessionSealBroken = errors.New("cached session seal broken")
)

// Low-level database operation errors. These are returned (or wrapped) by
// the SQLite driver when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when scanning column values from a single
	// result row into a destination fails.
	ErrScanningRow = errors.New("failed to scan row")
)
