package router

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/spendtrace/api/internal/expense"
)

const maxDescriptionLength = 255

type createExpenseRequest struct {
	Description string      `json:"description"`
	DateTime    *time.Time  `json:"dateTime"`
	Amount      json.Number `json:"amount"`
	Currency    string      `json:"currency"`
	Category    string      `json:"category"`
	Notes       *string     `json:"notes"`
}

// toDomain validates the payload shape and builds the domain value. ID and
// timestamps stay unset; the service assigns them.
func (r createExpenseRequest) toDomain() (expense.Expense, error) {
	if strings.TrimSpace(r.Description) == "" {
		return expense.Expense{}, errors.New("description is required")
	}
	if utf8.RuneCountInString(r.Description) > maxDescriptionLength {
		return expense.Expense{}, fmt.Errorf("description must be at most %d characters", maxDescriptionLength)
	}

	if r.DateTime == nil {
		return expense.Expense{}, errors.New("dateTime is required")
	}

	if r.Amount == "" {
		return expense.Expense{}, errors.New("amount is required")
	}
	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return expense.Expense{}, errors.New("amount must be a valid decimal number")
	}
	if !amount.IsPositive() {
		return expense.Expense{}, errors.New("amount must be positive")
	}

	currency := strings.ToUpper(strings.TrimSpace(r.Currency))
	if !validCurrency(currency) {
		return expense.Expense{}, errors.New("currency must be a 3-letter code")
	}

	category, err := expense.ParseCategory(r.Category)
	if err != nil {
		return expense.Expense{}, err
	}

	return expense.Expense{
		Description: r.Description,
		DateTime:    *r.DateTime,
		Amount:      amount,
		Currency:    currency,
		Category:    category,
		Notes:       r.Notes,
	}, nil
}

func validCurrency(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

type expenseResponse struct {
	ID          string      `json:"id"`
	Description string      `json:"description"`
	DateTime    time.Time   `json:"dateTime"`
	Amount      json.Number `json:"amount"`
	Currency    string      `json:"currency"`
	Category    string      `json:"category"`
	Notes       *string     `json:"notes"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

func toResponse(e expense.Expense) expenseResponse {
	return expenseResponse{
		ID:          e.ID.String(),
		Description: e.Description,
		DateTime:    e.DateTime,
		Amount:      json.Number(e.Amount.String()),
		Currency:    e.Currency,
		Category:    string(e.Category),
		Notes:       e.Notes,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

type createExpenseResponse struct {
	Data expenseResponse `json:"data"`
}

type listExpensesResponse struct {
	Data []expenseResponse `json:"data"`
}

type errorResponse struct {
	Error string `json:"error"`
}
