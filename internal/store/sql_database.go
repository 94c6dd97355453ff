package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/kevindrums92/baselineapp/internal/logger"
	"github.com/kevindrums92/baselineapp/migrations"
)

// DB owns the SQLite connection shared by the kv and locks tables.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// NewConnectSQLite opens (or creates) the SQLite database at path and runs
// pending schema migrations. The connection enables WAL and a busy timeout:
// several processes share this one file, and the locks table only works as
// a cross-process lock when concurrent writers queue instead of failing.
func NewConnectSQLite(ctx context.Context, path string, log *logger.Logger) (*DB, error) {
	if err := createDBFileIfNotExists(path); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("failed to create database file")
		return nil, fmt.Errorf("create database file: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", path)
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("failed to open database")
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("database ping failed")
		return nil, fmt.Errorf("ping database: %w", err)
	}
	log.Debug().Str("func", "NewConnectSQLite").Str("path", path).Msg("connected to local database")

	db := &DB{
		DB:     conn,
		logger: log,
	}

	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	return db, nil
}

// Migrate brings the kv and locks tables up to the current schema.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

func createDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		dir := filepath.Dir(dbFile)
		if dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create database directory: %w", err)
			}
		}

		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("create database file: %w", err)
		}
		return f.Close()
	}

	return nil
}
