package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"homeledger/internal/apperrors"
	"homeledger/internal/model"
)

// UnitRepository provides data access methods for the unit table.
type UnitRepository struct {
	db *sql.DB
}

// NewUnitRepository creates a new UnitRepository with the provided database connection.
func NewUnitRepository(db *sql.DB) *UnitRepository {
	return &UnitRepository{db: db}
}

// CreateUnit inserts a new unit, generating its ID and creation time.
func (r *UnitRepository) CreateUnit(u model.Unit) (model.Unit, error) {
	u.ID = uuid.New().String()
	u.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO unit (id, property_id, unit_label, beds, baths, sqft, is_rentable, notes, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.Exec(query,
		u.ID,
		u.PropertyID,
		u.UnitLabel,
		u.Beds,
		u.Baths,
		u.Sqft,
		u.IsRentable,
		nullString(u.Notes),
		formatDateTime(u.CreatedAt),
	)
	if err != nil {
		return model.Unit{}, fmt.Errorf("failed to insert unit: %w", err)
	}

	return u, nil
}

// GetUnitsOnPropertyID retrieves all units for a property.
func (r *UnitRepository) GetUnitsOnPropertyID(propertyID string) ([]model.Unit, error) {
	query := `
        SELECT id, property_id, unit_label, beds, baths, sqft, is_rentable, notes, created_at
        FROM unit
        WHERE property_id = ?
        ORDER BY unit_label
    `
	rows, err := r.db.Query(query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query unit table: %w", err)
	}
	defer rows.Close()

	units := []model.Unit{}

	for rows.Next() {
		u, err := scanUnit(rows.Scan)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unit table: %w", err)
	}

	return units, nil
}

// GetUnitOnID retrieves a single unit by ID.
func (r *UnitRepository) GetUnitOnID(unitID string) (model.Unit, error) {
	query := `
        SELECT id, property_id, unit_label, beds, baths, sqft, is_rentable, notes, created_at
        FROM unit
        WHERE id = ?
    `
	row := r.db.QueryRow(query, unitID)
	u, err := scanUnit(row.Scan)
	if err == sql.ErrNoRows {
		return model.Unit{}, apperrors.ErrUnitNotFound
	}
	if err != nil {
		return model.Unit{}, err
	}

	return u, nil
}

// UpdateUnit updates the mutable fields of a unit.
func (r *UnitRepository) UpdateUnit(u model.Unit) error {
	query := `
        UPDATE unit
        SET unit_label = ?, beds = ?, baths = ?, sqft = ?, is_rentable = ?, notes = ?
        WHERE id = ?
    `
	result, err := r.db.Exec(query,
		u.UnitLabel,
		u.Beds,
		u.Baths,
		u.Sqft,
		u.IsRentable,
		nullString(u.Notes),
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update unit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrUnitNotFound
	}

	return nil
}

// DeleteUnit removes a unit; its leases cascade.
func (r *UnitRepository) DeleteUnit(unitID string) error {
	result, err := r.db.Exec(`DELETE FROM unit WHERE id = ?`, unitID)
	if err != nil {
		return fmt.Errorf("failed to delete unit: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrUnitNotFound
	}

	return nil
}

func scanUnit(scan func(dest ...any) error) (model.Unit, error) {
	var u model.Unit
	var notes sql.NullString
	var createdAt string

	err := scan(
		&u.ID,
		&u.PropertyID,
		&u.UnitLabel,
		&u.Beds,
		&u.Baths,
		&u.Sqft,
		&u.IsRentable,
		&notes,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return model.Unit{}, err
	}
	if err != nil {
		return model.Unit{}, fmt.Errorf("failed to scan unit table results: %w", err)
	}

	u.Notes = notes.String

	if u.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.Unit{}, err
	}

	return u, nil
}
