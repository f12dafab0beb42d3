package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendtrace/api/internal/logger"
)

// PersistenceError wraps any failure coming out of the store: connectivity
// loss, constraint violations, scan failures. It is surfaced to callers
// unchanged and never retried.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// ExpenseRecord is the row-shaped representation of an expense. It mirrors
// the domain value field for field, with the category as its textual name.
type ExpenseRecord struct {
	ID          uuid.UUID
	Description string
	DateTime    time.Time
	Amount      decimal.Decimal
	Currency    string
	Category    string
	Notes       *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Storage interface {
	// SaveExpense inserts or updates the record by primary key inside a
	// single transaction and returns the row exactly as stored.
	SaveExpense(ctx context.Context, record ExpenseRecord) (ExpenseRecord, error)
	// GetExpenses returns every stored record, newest first. The slice is
	// empty, never nil, when no records exist.
	GetExpenses(ctx context.Context) ([]ExpenseRecord, error)

	Ping(ctx context.Context) error
	ApplyMigrations(ctx context.Context, logger *logger.Logger) error
	Close() error
}
