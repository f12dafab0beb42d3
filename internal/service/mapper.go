package service

import (
	"github.com/spendtrace/api/internal/expense"
	"github.com/spendtrace/api/internal/storage"
)

// The conversions between domain values and persistence records are plain
// field copies; the category travels as its textual name on the record side.

func recordFromExpense(e expense.Expense) storage.ExpenseRecord {
	return storage.ExpenseRecord{
		ID:          e.ID,
		Description: e.Description,
		DateTime:    e.DateTime,
		Amount:      e.Amount,
		Currency:    e.Currency,
		Category:    string(e.Category),
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func expenseFromRecord(r storage.ExpenseRecord) expense.Expense {
	return expense.Expense{
		ID:          r.ID,
		Description: r.Description,
		DateTime:    r.DateTime,
		Amount:      r.Amount,
		Currency:    r.Currency,
		Category:    expense.Category(r.Category),
		Notes:       r.Notes,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
