package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/spendtrace/api/internal/expense"
	"github.com/spendtrace/api/internal/logger"
	"github.com/spendtrace/api/internal/storage"
)

// Service owns the business rules around expenses: it is the only writer of
// the store and the only place identity and timestamps are assigned.
type Service struct {
	storage storage.Storage
	logger  *logger.Logger
}

func New(s storage.Storage, l *logger.Logger) *Service {
	return &Service{
		storage: s,
		logger:  l,
	}
}

// CreateExpense assigns a fresh identity, captures the clock once so
// CreatedAt and UpdatedAt are identical, persists the record and returns the
// expense as stored. Store failures surface as *storage.PersistenceError.
func (s *Service) CreateExpense(ctx context.Context, e expense.Expense) (expense.Expense, error) {
	s.logger.Debug("Creating expense", "description", e.Description)

	now := time.Now().UTC()
	stamped := expense.Expense{
		ID:          uuid.New(),
		Description: e.Description,
		DateTime:    e.DateTime.UTC(),
		Amount:      e.Amount,
		Currency:    e.Currency,
		Category:    e.Category,
		Notes:       e.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	stored, err := s.storage.SaveExpense(ctx, recordFromExpense(stamped))
	if err != nil {
		return expense.Expense{}, err
	}

	s.logger.Info("Created expense", "id", stored.ID)
	return expenseFromRecord(stored), nil
}

// ListExpenses returns every stored expense, newest first.
func (s *Service) ListExpenses(ctx context.Context) ([]expense.Expense, error) {
	s.logger.Debug("Retrieving all expenses")

	records, err := s.storage.GetExpenses(ctx)
	if err != nil {
		return nil, err
	}

	expenses := make([]expense.Expense, len(records))
	for i, record := range records {
		expenses[i] = expenseFromRecord(record)
	}
	return expenses, nil
}
