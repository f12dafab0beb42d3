package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendtrace/api/internal/config"
	"github.com/spendtrace/api/internal/logger"
	"github.com/spendtrace/api/internal/storage"
)

func setupTestStorage(t *testing.T) storage.Storage {
	t.Helper()

	// A single connection keeps every statement on the same in-memory
	// database.
	stor, err := New(config.DBConfig{Path: ":memory:", MaxOpenConns: 1})
	if err != nil {
		t.Fatalf("Failed to open test storage: %v", err)
	}

	testLogger := logger.New(logger.Config{
		Level:  logger.LevelInfo,
		Format: logger.FormatText,
		Output: "discard",
	})

	if err = stor.ApplyMigrations(context.Background(), testLogger); err != nil {
		t.Fatalf("Failed to apply migrations: %v", err)
	}

	t.Cleanup(func() {
		if err := stor.Close(); err != nil {
			t.Errorf("Failed to close test storage: %v", err)
		}
	})

	return stor
}

func testRecord(createdAt time.Time) storage.ExpenseRecord {
	notes := "Weekly groceries from supermarket"
	return storage.ExpenseRecord{
		ID:          uuid.New(),
		Description: "Grocery shopping",
		DateTime:    time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString("45.99"),
		Currency:    "EUR",
		Category:    "FOOD",
		Notes:       &notes,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

func TestSaveExpenseRoundTrip(t *testing.T) {
	stor := setupTestStorage(t)

	now := time.Now().UTC()
	record := testRecord(now)

	stored, err := stor.SaveExpense(context.Background(), record)
	if err != nil {
		t.Fatalf("Failed to save expense: %v", err)
	}

	if stored.ID != record.ID {
		t.Errorf("Expected id %s, got %s", record.ID, stored.ID)
	}
	if stored.Description != record.Description {
		t.Errorf("Expected description %q, got %q", record.Description, stored.Description)
	}
	if !stored.DateTime.Equal(record.DateTime) {
		t.Errorf("Expected date time %v, got %v", record.DateTime, stored.DateTime)
	}
	if stored.Amount.String() != "45.99" {
		t.Errorf("Expected amount 45.99, got %s", stored.Amount.String())
	}
	if stored.Currency != "EUR" {
		t.Errorf("Expected currency EUR, got %s", stored.Currency)
	}
	if stored.Category != "FOOD" {
		t.Errorf("Expected category FOOD, got %s", stored.Category)
	}
	if stored.Notes == nil || *stored.Notes != *record.Notes {
		t.Errorf("Expected notes %q, got %v", *record.Notes, stored.Notes)
	}
	if !stored.CreatedAt.Equal(now) {
		t.Errorf("Expected created at %v, got %v", now, stored.CreatedAt)
	}
	if !stored.UpdatedAt.Equal(now) {
		t.Errorf("Expected updated at %v, got %v", now, stored.UpdatedAt)
	}
}

func TestSaveExpensePreservesAmountPrecision(t *testing.T) {
	stor := setupTestStorage(t)

	amounts := []string{"0.01", "45.99", "1234567890.1234", "0.0001", "10"}
	for _, a := range amounts {
		record := testRecord(time.Now().UTC())
		record.ID = uuid.New()
		record.Amount = decimal.RequireFromString(a)

		stored, err := stor.SaveExpense(context.Background(), record)
		if err != nil {
			t.Fatalf("Failed to save expense with amount %s: %v", a, err)
		}
		if stored.Amount.String() != a {
			t.Errorf("Expected amount %s to round-trip exactly, got %s", a, stored.Amount.String())
		}
	}
}

func TestSaveExpenseWithoutNotes(t *testing.T) {
	stor := setupTestStorage(t)

	record := testRecord(time.Now().UTC())
	record.Notes = nil

	stored, err := stor.SaveExpense(context.Background(), record)
	if err != nil {
		t.Fatalf("Failed to save expense: %v", err)
	}
	if stored.Notes != nil {
		t.Errorf("Expected nil notes, got %q", *stored.Notes)
	}
}

func TestSaveExpenseUpsert(t *testing.T) {
	stor := setupTestStorage(t)

	created := time.Now().UTC()
	record := testRecord(created)

	if _, err := stor.SaveExpense(context.Background(), record); err != nil {
		t.Fatalf("Failed to save expense: %v", err)
	}

	record.Description = "Grocery shopping (corrected)"
	record.Amount = decimal.RequireFromString("47.25")
	record.UpdatedAt = created.Add(time.Minute)

	stored, err := stor.SaveExpense(context.Background(), record)
	if err != nil {
		t.Fatalf("Failed to upsert expense: %v", err)
	}

	if stored.Description != "Grocery shopping (corrected)" {
		t.Errorf("Expected updated description, got %q", stored.Description)
	}
	if stored.Amount.String() != "47.25" {
		t.Errorf("Expected updated amount 47.25, got %s", stored.Amount.String())
	}
	if !stored.CreatedAt.Equal(created) {
		t.Errorf("Expected created at to stay %v, got %v", created, stored.CreatedAt)
	}
	if !stored.UpdatedAt.Equal(created.Add(time.Minute)) {
		t.Errorf("Expected updated at to change, got %v", stored.UpdatedAt)
	}

	records, err := stor.GetExpenses(context.Background())
	if err != nil {
		t.Fatalf("Failed to get expenses: %v", err)
	}
	if len(records) != 1 {
		t.Errorf("Expected 1 record after upsert, got %d", len(records))
	}
}

func TestSaveExpenseConstraintViolation(t *testing.T) {
	stor := setupTestStorage(t)

	record := testRecord(time.Now().UTC())
	record.Currency = "EURO"

	_, err := stor.SaveExpense(context.Background(), record)
	if err == nil {
		t.Fatal("Expected constraint violation for 4-letter currency, got none")
	}
	var pErr *storage.PersistenceError
	if !errors.As(err, &pErr) {
		t.Errorf("Expected PersistenceError, got %T", err)
	}

	records, err := stor.GetExpenses(context.Background())
	if err != nil {
		t.Fatalf("Failed to get expenses: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records after failed save, got %d", len(records))
	}
}

func TestGetExpensesEmpty(t *testing.T) {
	stor := setupTestStorage(t)

	records, err := stor.GetExpenses(context.Background())
	if err != nil {
		t.Fatalf("Failed to get expenses: %v", err)
	}
	if records == nil {
		t.Fatal("Expected empty slice, got nil")
	}
	if len(records) != 0 {
		t.Errorf("Expected 0 records, got %d", len(records))
	}
}

func TestGetExpensesNewestFirst(t *testing.T) {
	stor := setupTestStorage(t)

	base := time.Now().UTC()
	ids := make([]uuid.UUID, 3)
	for i := 0; i < 3; i++ {
		record := testRecord(base.Add(time.Duration(i) * time.Second))
		record.ID = uuid.New()
		ids[i] = record.ID
		if _, err := stor.SaveExpense(context.Background(), record); err != nil {
			t.Fatalf("Failed to save expense %d: %v", i, err)
		}
	}

	records, err := stor.GetExpenses(context.Background())
	if err != nil {
		t.Fatalf("Failed to get expenses: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}

	// Most recently created first.
	if records[0].ID != ids[2] || records[2].ID != ids[0] {
		t.Errorf("Expected newest-first ordering, got %v, %v, %v",
			records[0].CreatedAt, records[1].CreatedAt, records[2].CreatedAt)
	}
}

func TestPing(t *testing.T) {
	stor := setupTestStorage(t)

	if err := stor.Ping(context.Background()); err != nil {
		t.Errorf("Expected ping to succeed, got %v", err)
	}
}
