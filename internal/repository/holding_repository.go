package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"homeledger/internal/apperrors"
	"homeledger/internal/model"
)

const holdingColumns = `
    id, account_id, household_id, ticker_symbol, name, quantity,
    cost_basis, current_value, currency_code, as_of_date, created_at
`

// HoldingRepository provides data access methods for the holding table.
// Price refresh updates many holdings in one transaction, so it supports WithTx.
type HoldingRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewHoldingRepository creates a new HoldingRepository with the provided database connection.
func NewHoldingRepository(db *sql.DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

// WithTx returns a new HoldingRepository scoped to the provided transaction.
func (r *HoldingRepository) WithTx(tx *sql.Tx) *HoldingRepository {
	return &HoldingRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *HoldingRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// CreateHolding inserts a new holding, generating its ID and creation time.
func (r *HoldingRepository) CreateHolding(h model.Holding) (model.Holding, error) {
	h.ID = uuid.New().String()
	h.CreatedAt = time.Now().UTC()
	if h.CurrencyCode == "" {
		h.CurrencyCode = "USD"
	}

	query := `
        INSERT INTO holding (` + holdingColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.getQuerier().Exec(query,
		h.ID,
		h.AccountID,
		h.HouseholdID,
		nullString(h.TickerSymbol),
		nullString(h.Name),
		h.Quantity,
		h.CostBasis,
		h.CurrentValue,
		h.CurrencyCode,
		nullDateTime(h.AsOfDate),
		formatDateTime(h.CreatedAt),
	)
	if err != nil {
		return model.Holding{}, fmt.Errorf("failed to insert holding: %w", err)
	}

	return h, nil
}

// GetHoldingsOnAccountID retrieves all holdings for an account.
func (r *HoldingRepository) GetHoldingsOnAccountID(accountID string) ([]model.Holding, error) {
	return r.getHoldings("account_id = ?", accountID)
}

// GetHoldingsOnHouseholdID retrieves all holdings for a household.
func (r *HoldingRepository) GetHoldingsOnHouseholdID(householdID string) ([]model.Holding, error) {
	return r.getHoldings("household_id = ?", householdID)
}

// GetTickeredHoldings retrieves the household's holdings that carry a ticker
// symbol, for price refresh.
func (r *HoldingRepository) GetTickeredHoldings(householdID string) ([]model.Holding, error) {
	return r.getHoldings("household_id = ? AND ticker_symbol IS NOT NULL", householdID)
}

func (r *HoldingRepository) getHoldings(where string, args ...any) ([]model.Holding, error) {
	query := `
        SELECT ` + holdingColumns + `
        FROM holding
        WHERE ` + where

	rows, err := r.getQuerier().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query holding table: %w", err)
	}
	defer rows.Close()

	holdings := []model.Holding{}

	for rows.Next() {
		h, err := scanHolding(rows.Scan)
		if err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding table: %w", err)
	}

	return holdings, nil
}

// GetHoldingOnID retrieves a single holding by ID.
func (r *HoldingRepository) GetHoldingOnID(holdingID string) (model.Holding, error) {
	query := `
        SELECT ` + holdingColumns + `
        FROM holding
        WHERE id = ?
    `
	row := r.getQuerier().QueryRow(query, holdingID)
	h, err := scanHolding(row.Scan)
	if err == sql.ErrNoRows {
		return model.Holding{}, apperrors.ErrHoldingNotFound
	}
	if err != nil {
		return model.Holding{}, err
	}

	return h, nil
}

// UpdateHolding updates the mutable fields of a holding.
func (r *HoldingRepository) UpdateHolding(h model.Holding) error {
	query := `
        UPDATE holding
        SET ticker_symbol = ?, name = ?, quantity = ?, cost_basis = ?,
            current_value = ?, currency_code = ?, as_of_date = ?
        WHERE id = ?
    `
	result, err := r.getQuerier().Exec(query,
		nullString(h.TickerSymbol),
		nullString(h.Name),
		h.Quantity,
		h.CostBasis,
		h.CurrentValue,
		h.CurrencyCode,
		nullDateTime(h.AsOfDate),
		h.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update holding: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrHoldingNotFound
	}

	return nil
}

// UpdateValue sets a holding's current value and as-of timestamp during a
// price refresh.
func (r *HoldingRepository) UpdateValue(ctx context.Context, holdingID string, value decimal.Decimal, asOf time.Time) error {
	query := `UPDATE holding SET current_value = ?, as_of_date = ? WHERE id = ?`
	_, err := r.getQuerier().ExecContext(ctx, query, value, formatDateTime(asOf), holdingID)
	if err != nil {
		return fmt.Errorf("failed to update holding value: %w", err)
	}
	return nil
}

// DeleteHolding removes a holding.
func (r *HoldingRepository) DeleteHolding(holdingID string) error {
	result, err := r.getQuerier().Exec(`DELETE FROM holding WHERE id = ?`, holdingID)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrHoldingNotFound
	}

	return nil
}

func scanHolding(scan func(dest ...any) error) (model.Holding, error) {
	var h model.Holding
	var ticker, name sql.NullString
	var asOf sql.NullString
	var createdAt string

	err := scan(
		&h.ID,
		&h.AccountID,
		&h.HouseholdID,
		&ticker,
		&name,
		&h.Quantity,
		&h.CostBasis,
		&h.CurrentValue,
		&h.CurrencyCode,
		&asOf,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return model.Holding{}, err
	}
	if err != nil {
		return model.Holding{}, fmt.Errorf("failed to scan holding table results: %w", err)
	}

	h.TickerSymbol = ticker.String
	h.Name = name.String

	if h.AsOfDate, err = parseNullTime(asOf); err != nil {
		return model.Holding{}, err
	}
	if h.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.Holding{}, err
	}

	return h, nil
}
