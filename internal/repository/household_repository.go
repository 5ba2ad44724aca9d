package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"homeledger/internal/apperrors"
	"homeledger/internal/model"
)

// HouseholdRepository provides data access methods for the household table.
type HouseholdRepository struct {
	db *sql.DB
}

// NewHouseholdRepository creates a new HouseholdRepository with the provided database connection.
func NewHouseholdRepository(db *sql.DB) *HouseholdRepository {
	return &HouseholdRepository{db: db}
}

// CreateHousehold inserts a new household and returns it with a generated ID.
func (r *HouseholdRepository) CreateHousehold(name string) (model.Household, error) {
	h := model.Household{
		ID:                          uuid.New().String(),
		Name:                        name,
		PriceRefreshEnabled:         true,
		PriceRefreshIntervalMinutes: 15,
		CreatedAt:                   time.Now().UTC(),
	}

	query := `
        INSERT INTO household (id, name, price_refresh_enabled, price_refresh_interval_minutes, created_at)
        VALUES (?, ?, ?, ?, ?)
    `
	_, err := r.db.Exec(query, h.ID, h.Name, h.PriceRefreshEnabled, h.PriceRefreshIntervalMinutes, formatDateTime(h.CreatedAt))
	if err != nil {
		return model.Household{}, fmt.Errorf("failed to insert household: %w", err)
	}

	return h, nil
}

// GetHouseholdOnID retrieves a single household by ID.
func (r *HouseholdRepository) GetHouseholdOnID(householdID string) (model.Household, error) {
	query := `
        SELECT id, name, price_refresh_enabled, price_refresh_interval_minutes, last_price_refresh_at, created_at
        FROM household
        WHERE id = ?
    `
	var h model.Household
	var lastRefresh sql.NullString
	var createdAt string

	err := r.db.QueryRow(query, householdID).Scan(
		&h.ID,
		&h.Name,
		&h.PriceRefreshEnabled,
		&h.PriceRefreshIntervalMinutes,
		&lastRefresh,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return model.Household{}, apperrors.ErrHouseholdNotFound
	}
	if err != nil {
		return model.Household{}, fmt.Errorf("failed to query household: %w", err)
	}

	if h.LastPriceRefreshAt, err = parseNullTime(lastRefresh); err != nil {
		return model.Household{}, err
	}
	if h.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.Household{}, err
	}

	return h, nil
}

// GetRefreshEnabledHouseholds retrieves all households with price refresh turned on.
func (r *HouseholdRepository) GetRefreshEnabledHouseholds() ([]model.Household, error) {
	query := `
        SELECT id, name, price_refresh_enabled, price_refresh_interval_minutes, last_price_refresh_at, created_at
        FROM household
        WHERE price_refresh_enabled = 1
    `
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query household table: %w", err)
	}
	defer rows.Close()

	households := []model.Household{}

	for rows.Next() {
		var h model.Household
		var lastRefresh sql.NullString
		var createdAt string

		err := rows.Scan(
			&h.ID,
			&h.Name,
			&h.PriceRefreshEnabled,
			&h.PriceRefreshIntervalMinutes,
			&lastRefresh,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan household table results: %w", err)
		}

		if h.LastPriceRefreshAt, err = parseNullTime(lastRefresh); err != nil {
			return nil, err
		}
		if h.CreatedAt, err = ParseTime(createdAt); err != nil {
			return nil, err
		}

		households = append(households, h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating household table: %w", err)
	}

	return households, nil
}

// UpdateRefreshSettings updates the household's price refresh toggle and interval.
func (r *HouseholdRepository) UpdateRefreshSettings(householdID string, enabled bool, intervalMinutes int) error {
	query := `
        UPDATE household
        SET price_refresh_enabled = ?, price_refresh_interval_minutes = ?
        WHERE id = ?
    `
	result, err := r.db.Exec(query, enabled, intervalMinutes, householdID)
	if err != nil {
		return fmt.Errorf("failed to update household refresh settings: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrHouseholdNotFound
	}

	return nil
}

// SetLastPriceRefreshAt stamps the household's most recent price refresh time.
func (r *HouseholdRepository) SetLastPriceRefreshAt(householdID string, at time.Time) error {
	query := `UPDATE household SET last_price_refresh_at = ? WHERE id = ?`
	result, err := r.db.Exec(query, formatDateTime(at), householdID)
	if err != nil {
		return fmt.Errorf("failed to update household refresh timestamp: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrHouseholdNotFound
	}

	return nil
}
