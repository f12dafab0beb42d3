package sqlite

import (
	"context"
	"time"

	"github.com/spendtrace/api/internal/logger"
	"github.com/spendtrace/api/internal/storage"
)

type migration struct {
	version int
	name    string
	sql     string
}

// Migrations run in order on boot. Never edit an applied migration; append a
// new one instead.
var migrations = []migration{
	{
		version: 1,
		name:    "create_expenses_table",
		sql: `CREATE TABLE IF NOT EXISTS expenses (
			id TEXT PRIMARY KEY,
			description TEXT NOT NULL CHECK(length(description) <= 255),
			date_time INTEGER NOT NULL,
			amount TEXT NOT NULL,
			currency TEXT NOT NULL CHECK(length(currency) = 3),
			category TEXT NOT NULL,
			notes TEXT,
			created_at INTEGER NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
	},
	{
		version: 2,
		name:    "index_expenses_created_at",
		sql:     `CREATE INDEX IF NOT EXISTS idx_expenses_created_at ON expenses (created_at DESC)`,
	},
}

func (s *sqliteStorage) ApplyMigrations(ctx context.Context, log *logger.Logger) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return &storage.PersistenceError{Op: "create schema_migrations table", Err: err}
	}

	var current int
	err = s.db.QueryRowContext(ctx, "SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current)
	if err != nil {
		return &storage.PersistenceError{Op: "read schema version", Err: err}
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return &storage.PersistenceError{Op: "begin migration transaction", Err: err}
		}

		if _, err = tx.ExecContext(ctx, m.sql); err != nil {
			if rErr := tx.Rollback(); rErr != nil {
				return &storage.PersistenceError{Op: "rollback migration " + m.name, Err: rErr}
			}
			return &storage.PersistenceError{Op: "apply migration " + m.name, Err: err}
		}

		_, err = tx.ExecContext(ctx,
			"INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)",
			m.version, time.Now().Unix())
		if err != nil {
			if rErr := tx.Rollback(); rErr != nil {
				return &storage.PersistenceError{Op: "rollback migration " + m.name, Err: rErr}
			}
			return &storage.PersistenceError{Op: "record migration " + m.name, Err: err}
		}

		if err = tx.Commit(); err != nil {
			return &storage.PersistenceError{Op: "commit migration " + m.name, Err: err}
		}

		log.Info("Applied migration", "version", m.version, "name", m.name)
	}

	return nil
}
