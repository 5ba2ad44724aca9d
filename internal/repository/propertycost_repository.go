package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"homeledger/internal/apperrors"
	"homeledger/internal/model"
)

// PropertyCostRepository provides data access methods for the property_cost table.
type PropertyCostRepository struct {
	db *sql.DB
}

// NewPropertyCostRepository creates a new PropertyCostRepository with the provided database connection.
func NewPropertyCostRepository(db *sql.DB) *PropertyCostRepository {
	return &PropertyCostRepository{db: db}
}

// CreatePropertyCost inserts a recurring cost, generating its ID and creation time.
func (r *PropertyCostRepository) CreatePropertyCost(c model.PropertyCost) (model.PropertyCost, error) {
	c.ID = uuid.New().String()
	c.CreatedAt = time.Now().UTC()
	if c.Category == "" {
		c.Category = "other"
	}
	if c.Frequency == "" {
		c.Frequency = "monthly"
	}

	query := `
        INSERT INTO property_cost (id, property_id, category, label, amount, frequency, is_active, notes, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.Exec(query,
		c.ID,
		c.PropertyID,
		c.Category,
		nullString(c.Label),
		c.Amount,
		c.Frequency,
		c.IsActive,
		nullString(c.Notes),
		formatDateTime(c.CreatedAt),
	)
	if err != nil {
		return model.PropertyCost{}, fmt.Errorf("failed to insert property cost: %w", err)
	}

	return c, nil
}

// GetPropertyCostsOnPropertyID retrieves all recurring costs for a property,
// inactive ones included.
func (r *PropertyCostRepository) GetPropertyCostsOnPropertyID(propertyID string) ([]model.PropertyCost, error) {
	return r.getCosts(`property_id = ?`, propertyID)
}

// GetActiveCostsOnPropertyID retrieves the costs currently in force, which
// feed the report's fixed-expense lines.
func (r *PropertyCostRepository) GetActiveCostsOnPropertyID(propertyID string) ([]model.PropertyCost, error) {
	return r.getCosts(`property_id = ? AND is_active = 1`, propertyID)
}

func (r *PropertyCostRepository) getCosts(where string, args ...any) ([]model.PropertyCost, error) {
	query := `
        SELECT id, property_id, category, label, amount, frequency, is_active, notes, created_at
        FROM property_cost
        WHERE ` + where + `
        ORDER BY category, label
    `
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query property_cost table: %w", err)
	}
	defer rows.Close()

	costs := []model.PropertyCost{}

	for rows.Next() {
		var c model.PropertyCost
		var label, notes sql.NullString
		var createdAt string

		err := rows.Scan(
			&c.ID,
			&c.PropertyID,
			&c.Category,
			&label,
			&c.Amount,
			&c.Frequency,
			&c.IsActive,
			&notes,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property_cost table results: %w", err)
		}

		c.Label = label.String
		c.Notes = notes.String

		if c.CreatedAt, err = ParseTime(createdAt); err != nil {
			return nil, err
		}

		costs = append(costs, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property_cost table: %w", err)
	}

	return costs, nil
}

// UpdatePropertyCost updates the mutable fields of a recurring cost.
func (r *PropertyCostRepository) UpdatePropertyCost(c model.PropertyCost) error {
	query := `
        UPDATE property_cost
        SET category = ?, label = ?, amount = ?, frequency = ?, is_active = ?, notes = ?
        WHERE id = ?
    `
	result, err := r.db.Exec(query,
		c.Category,
		nullString(c.Label),
		c.Amount,
		c.Frequency,
		c.IsActive,
		nullString(c.Notes),
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update property cost: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPropertyCostNotFound
	}

	return nil
}

// DeletePropertyCost removes a recurring cost.
func (r *PropertyCostRepository) DeletePropertyCost(costID string) error {
	result, err := r.db.Exec(`DELETE FROM property_cost WHERE id = ?`, costID)
	if err != nil {
		return fmt.Errorf("failed to delete property cost: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPropertyCostNotFound
	}

	return nil
}
