package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"homeledger/internal/apperrors"
	"homeledger/internal/model"
)

// ExpenseRepository provides data access methods for the maintenance_expense table.
type ExpenseRepository struct {
	db *sql.DB
}

// NewExpenseRepository creates a new ExpenseRepository with the provided database connection.
func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{db: db}
}

// CreateExpense inserts a maintenance expense, generating its ID and creation time.
func (r *ExpenseRepository) CreateExpense(e model.MaintenanceExpense) (model.MaintenanceExpense, error) {
	e.ID = uuid.New().String()
	e.CreatedAt = time.Now().UTC()
	if e.Category == "" {
		e.Category = "other"
	}

	query := `
        INSERT INTO maintenance_expense (id, property_id, expense_date, amount, category, description, vendor, is_capex, notes, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.Exec(query,
		e.ID,
		e.PropertyID,
		formatDate(e.ExpenseDate),
		e.Amount,
		e.Category,
		e.Description,
		nullString(e.Vendor),
		e.IsCapex,
		nullString(e.Notes),
		formatDateTime(e.CreatedAt),
	)
	if err != nil {
		return model.MaintenanceExpense{}, fmt.Errorf("failed to insert maintenance expense: %w", err)
	}

	return e, nil
}

// GetExpensesOnPropertyID retrieves all maintenance expenses for a property, newest first.
func (r *ExpenseRepository) GetExpensesOnPropertyID(propertyID string) ([]model.MaintenanceExpense, error) {
	return r.getExpenses(`property_id = ? ORDER BY expense_date DESC`, propertyID)
}

// GetExpensesBetween retrieves a property's maintenance expenses dated within
// [start, end], for report aggregation.
func (r *ExpenseRepository) GetExpensesBetween(propertyID string, start, end time.Time) ([]model.MaintenanceExpense, error) {
	return r.getExpenses(
		`property_id = ? AND expense_date >= ? AND expense_date <= ? ORDER BY expense_date`,
		propertyID, formatDate(start), formatDate(end),
	)
}

func (r *ExpenseRepository) getExpenses(where string, args ...any) ([]model.MaintenanceExpense, error) {
	query := `
        SELECT id, property_id, expense_date, amount, category, description, vendor, is_capex, notes, created_at
        FROM maintenance_expense
        WHERE ` + where

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query maintenance_expense table: %w", err)
	}
	defer rows.Close()

	expenses := []model.MaintenanceExpense{}

	for rows.Next() {
		var e model.MaintenanceExpense
		var vendor, notes sql.NullString
		var expenseDate, createdAt string

		err := rows.Scan(
			&e.ID,
			&e.PropertyID,
			&expenseDate,
			&e.Amount,
			&e.Category,
			&e.Description,
			&vendor,
			&e.IsCapex,
			&notes,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan maintenance_expense table results: %w", err)
		}

		e.Vendor = vendor.String
		e.Notes = notes.String

		if e.ExpenseDate, err = ParseTime(expenseDate); err != nil {
			return nil, err
		}
		if e.CreatedAt, err = ParseTime(createdAt); err != nil {
			return nil, err
		}

		expenses = append(expenses, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating maintenance_expense table: %w", err)
	}

	return expenses, nil
}

// UpdateExpense updates the mutable fields of a maintenance expense.
func (r *ExpenseRepository) UpdateExpense(e model.MaintenanceExpense) error {
	query := `
        UPDATE maintenance_expense
        SET expense_date = ?, amount = ?, category = ?, description = ?, vendor = ?, is_capex = ?, notes = ?
        WHERE id = ?
    `
	result, err := r.db.Exec(query,
		formatDate(e.ExpenseDate),
		e.Amount,
		e.Category,
		e.Description,
		nullString(e.Vendor),
		e.IsCapex,
		nullString(e.Notes),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update maintenance expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrExpenseNotFound
	}

	return nil
}

// DeleteExpense removes a maintenance expense.
func (r *ExpenseRepository) DeleteExpense(expenseID string) error {
	result, err := r.db.Exec(`DELETE FROM maintenance_expense WHERE id = ?`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete maintenance expense: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrExpenseNotFound
	}

	return nil
}
