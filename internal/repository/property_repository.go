package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"homeledger/internal/apperrors"
	"homeledger/internal/model"
)

const propertyColumns = `
    id, household_id, address, city, state, zip_code, property_type,
    purchase_price, purchase_date, closing_costs, current_value, last_valuation_date,
    is_primary_residence, is_property_managed, management_fee_pct, notes, created_at
`

// PropertyRepository provides data access methods for the property and
// property_valuation tables. Recording a valuation also bumps the parent
// property's current value, which runs inside a transaction.
type PropertyRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewPropertyRepository creates a new PropertyRepository with the provided database connection.
func NewPropertyRepository(db *sql.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

// WithTx returns a new PropertyRepository scoped to the provided transaction.
func (r *PropertyRepository) WithTx(tx *sql.Tx) *PropertyRepository {
	return &PropertyRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *PropertyRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// CreateProperty inserts a new property, generating its ID and creation time.
func (r *PropertyRepository) CreateProperty(p model.Property) (model.Property, error) {
	p.ID = uuid.New().String()
	p.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO property (` + propertyColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.getQuerier().Exec(query,
		p.ID,
		p.HouseholdID,
		p.Address,
		nullString(p.City),
		nullString(p.State),
		nullString(p.ZipCode),
		nullString(p.PropertyType),
		p.PurchasePrice,
		nullDate(p.PurchaseDate),
		p.ClosingCosts,
		p.CurrentValue,
		nullDateTime(p.LastValuationDate),
		p.IsPrimaryResidence,
		p.IsPropertyManaged,
		p.ManagementFeePct,
		nullString(p.Notes),
		formatDateTime(p.CreatedAt),
	)
	if err != nil {
		return model.Property{}, fmt.Errorf("failed to insert property: %w", err)
	}

	return p, nil
}

// GetProperties retrieves all properties for a household.
func (r *PropertyRepository) GetProperties(householdID string) ([]model.Property, error) {
	query := `
        SELECT ` + propertyColumns + `
        FROM property
        WHERE household_id = ?
        ORDER BY address
    `
	rows, err := r.getQuerier().Query(query, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to query property table: %w", err)
	}
	defer rows.Close()

	properties := []model.Property{}

	for rows.Next() {
		p, err := scanProperty(rows.Scan)
		if err != nil {
			return nil, err
		}
		properties = append(properties, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property table: %w", err)
	}

	return properties, nil
}

// GetPropertyOnID retrieves a single property by ID.
func (r *PropertyRepository) GetPropertyOnID(propertyID string) (model.Property, error) {
	query := `
        SELECT ` + propertyColumns + `
        FROM property
        WHERE id = ?
    `
	row := r.getQuerier().QueryRow(query, propertyID)
	p, err := scanProperty(row.Scan)
	if err == sql.ErrNoRows {
		return model.Property{}, apperrors.ErrPropertyNotFound
	}
	if err != nil {
		return model.Property{}, err
	}

	return p, nil
}

// UpdateProperty updates the mutable fields of a property.
func (r *PropertyRepository) UpdateProperty(p model.Property) error {
	query := `
        UPDATE property
        SET address = ?, city = ?, state = ?, zip_code = ?, property_type = ?,
            purchase_price = ?, purchase_date = ?, closing_costs = ?,
            is_primary_residence = ?, is_property_managed = ?, management_fee_pct = ?, notes = ?
        WHERE id = ?
    `
	result, err := r.getQuerier().Exec(query,
		p.Address,
		nullString(p.City),
		nullString(p.State),
		nullString(p.ZipCode),
		nullString(p.PropertyType),
		p.PurchasePrice,
		nullDate(p.PurchaseDate),
		p.ClosingCosts,
		p.IsPrimaryResidence,
		p.IsPropertyManaged,
		p.ManagementFeePct,
		nullString(p.Notes),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPropertyNotFound
	}

	return nil
}

// SetCurrentValue updates a property's tracked value and valuation date.
func (r *PropertyRepository) SetCurrentValue(propertyID string, value decimal.Decimal, asOf time.Time) error {
	query := `UPDATE property SET current_value = ?, last_valuation_date = ? WHERE id = ?`
	result, err := r.getQuerier().Exec(query, value, formatDateTime(asOf), propertyID)
	if err != nil {
		return fmt.Errorf("failed to update property value: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPropertyNotFound
	}

	return nil
}

// DeleteProperty removes a property; units, leases, loans, costs, expenses,
// valuations, and capital events cascade.
func (r *PropertyRepository) DeleteProperty(propertyID string) error {
	result, err := r.getQuerier().Exec(`DELETE FROM property WHERE id = ?`, propertyID)
	if err != nil {
		return fmt.Errorf("failed to delete property: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPropertyNotFound
	}

	return nil
}

func scanProperty(scan func(dest ...any) error) (model.Property, error) {
	var p model.Property
	var city, state, zip, propertyType, notes sql.NullString
	var purchaseDate, lastValuation sql.NullString
	var createdAt string

	err := scan(
		&p.ID,
		&p.HouseholdID,
		&p.Address,
		&city,
		&state,
		&zip,
		&propertyType,
		&p.PurchasePrice,
		&purchaseDate,
		&p.ClosingCosts,
		&p.CurrentValue,
		&lastValuation,
		&p.IsPrimaryResidence,
		&p.IsPropertyManaged,
		&p.ManagementFeePct,
		&notes,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return model.Property{}, err
	}
	if err != nil {
		return model.Property{}, fmt.Errorf("failed to scan property table results: %w", err)
	}

	p.City = city.String
	p.State = state.String
	p.ZipCode = zip.String
	p.PropertyType = propertyType.String
	p.Notes = notes.String

	if p.PurchaseDate, err = parseNullTime(purchaseDate); err != nil {
		return model.Property{}, err
	}
	if p.LastValuationDate, err = parseNullTime(lastValuation); err != nil {
		return model.Property{}, err
	}
	if p.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.Property{}, err
	}

	return p, nil
}
