package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendtrace/api/internal/storage"
)

const expenseColumns = "id, description, date_time, amount, currency, category, notes, created_at, updated_at"

func (s *sqliteStorage) SaveExpense(ctx context.Context, record storage.ExpenseRecord) (storage.ExpenseRecord, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storage.ExpenseRecord{}, &storage.PersistenceError{Op: "begin save transaction", Err: err}
	}

	notes := sql.NullString{}
	if record.Notes != nil {
		notes = sql.NullString{String: *record.Notes, Valid: true}
	}

	// created_at is deliberately absent from the update clause: it is
	// immutable once the row exists.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO expenses (`+expenseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			description = excluded.description,
			date_time = excluded.date_time,
			amount = excluded.amount,
			currency = excluded.currency,
			category = excluded.category,
			notes = excluded.notes,
			updated_at = excluded.updated_at`,
		record.ID.String(), record.Description, record.DateTime.UnixNano(),
		record.Amount.String(), record.Currency, record.Category, notes,
		record.CreatedAt.UnixNano(), record.UpdatedAt.UnixNano())
	if err != nil {
		if rErr := tx.Rollback(); rErr != nil {
			return storage.ExpenseRecord{}, &storage.PersistenceError{Op: "rollback save", Err: rErr}
		}
		return storage.ExpenseRecord{}, &storage.PersistenceError{Op: "save expense", Err: err}
	}

	row := tx.QueryRowContext(ctx, "SELECT "+expenseColumns+" FROM expenses WHERE id = ?", record.ID.String())
	stored, err := expenseFromRow(row.Scan)
	if err != nil {
		if rErr := tx.Rollback(); rErr != nil {
			return storage.ExpenseRecord{}, &storage.PersistenceError{Op: "rollback save", Err: rErr}
		}
		return storage.ExpenseRecord{}, &storage.PersistenceError{Op: "read back expense", Err: err}
	}

	if err = tx.Commit(); err != nil {
		return storage.ExpenseRecord{}, &storage.PersistenceError{Op: "commit save transaction", Err: err}
	}

	return stored, nil
}

func (s *sqliteStorage) GetExpenses(ctx context.Context) ([]storage.ExpenseRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses ORDER BY created_at DESC, id")
	if err != nil {
		return nil, &storage.PersistenceError{Op: "list expenses", Err: err}
	}
	defer rows.Close()

	records := []storage.ExpenseRecord{}
	for rows.Next() {
		record, err := expenseFromRow(rows.Scan)
		if err != nil {
			return nil, &storage.PersistenceError{Op: "scan expense", Err: err}
		}
		records = append(records, record)
	}
	if err = rows.Err(); err != nil {
		return nil, &storage.PersistenceError{Op: "list expenses", Err: err}
	}

	return records, nil
}

func expenseFromRow(scan func(dest ...any) error) (storage.ExpenseRecord, error) {
	var (
		id        string
		dateTime  int64
		amount    string
		notes     sql.NullString
		createdAt int64
		updatedAt int64
		record    storage.ExpenseRecord
	)

	err := scan(&id, &record.Description, &dateTime, &amount,
		&record.Currency, &record.Category, &notes, &createdAt, &updatedAt)
	if err != nil {
		return storage.ExpenseRecord{}, err
	}

	record.ID, err = uuid.Parse(id)
	if err != nil {
		return storage.ExpenseRecord{}, err
	}

	record.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return storage.ExpenseRecord{}, err
	}

	record.DateTime = time.Unix(0, dateTime).UTC()
	record.CreatedAt = time.Unix(0, createdAt).UTC()
	record.UpdatedAt = time.Unix(0, updatedAt).UTC()
	if notes.Valid {
		record.Notes = &notes.String
	}

	return record, nil
}
