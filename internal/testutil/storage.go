package testutil

import (
	"context"
	"testing"

	"github.com/spendtrace/api/internal/config"
	"github.com/spendtrace/api/internal/storage"
	"github.com/spendtrace/api/internal/storage/sqlite"
)

// SetupTestStorage opens an in-memory SQLite store with the schema applied.
func SetupTestStorage(t *testing.T) storage.Storage {
	t.Helper()

	// One connection only: every pooled connection would otherwise get its
	// own empty in-memory database.
	stor, err := sqlite.New(config.DBConfig{Path: ":memory:", MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("Failed to open test storage: %v", err)
	}

	if err = stor.ApplyMigrations(context.Background(), TestLogger(t)); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	t.Cleanup(func() {
		if err := stor.Close(); err != nil {
			t.Errorf("Failed to close test storage: %v", err)
		}
	})

	return stor
}
