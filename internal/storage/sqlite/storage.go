package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// import sqlite driver.
	_ "github.com/mattn/go-sqlite3"

	"github.com/spendtrace/api/internal/config"
	"github.com/spendtrace/api/internal/storage"
)

type sqliteStorage struct {
	db *sql.DB
}

func New(dbConfig config.DBConfig) (storage.Storage, error) {
	db, err := sql.Open("sqlite3", dbConfig.Path)
	if err != nil {
		return nil, err
	}

	// Apply connection pool settings
	if dbConfig.MaxOpenConns > 0 {
		db.SetMaxOpenConns(dbConfig.MaxOpenConns)
	}

	if dbConfig.MaxIdleConns > 0 {
		db.SetMaxIdleConns(dbConfig.MaxIdleConns)
	}

	if dbConfig.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(dbConfig.ConnMaxLifetime) * time.Second)
	}

	ctx := context.Background()

	// Enable foreign key constraints
	_, err = db.ExecContext(ctx, "PRAGMA foreign_keys = ON")
	if err != nil {
		return nil, err
	}

	// Apply SQLite PRAGMA settings
	if dbConfig.JournalMode != "" {
		_, err = db.ExecContext(ctx, fmt.Sprintf("PRAGMA journal_mode = %s", dbConfig.JournalMode))
		if err != nil {
			return nil, fmt.Errorf("failed to set journal_mode: %w", err)
		}
	}

	if dbConfig.Synchronous != "" {
		_, err = db.ExecContext(ctx, fmt.Sprintf("PRAGMA synchronous = %s", dbConfig.Synchronous))
		if err != nil {
			return nil, fmt.Errorf("failed to set synchronous: %w", err)
		}
	}

	if dbConfig.BusyTimeout > 0 {
		_, err = db.ExecContext(ctx, fmt.Sprintf("PRAGMA busy_timeout = %d", dbConfig.BusyTimeout))
		if err != nil {
			return nil, fmt.Errorf("failed to set busy_timeout: %w", err)
		}
	}

	if dbConfig.CacheSize != 0 {
		_, err = db.ExecContext(ctx, fmt.Sprintf("PRAGMA cache_size = %d", dbConfig.CacheSize))
		if err != nil {
			return nil, fmt.Errorf("failed to set cache_size: %w", err)
		}
	}

	return &sqliteStorage{db: db}, nil
}

func (s *sqliteStorage) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &storage.PersistenceError{Op: "ping", Err: err}
	}
	return nil
}

func (s *sqliteStorage) Close() error {
	return s.db.Close()
}
