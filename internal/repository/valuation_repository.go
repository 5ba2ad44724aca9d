package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"homeledger/internal/apperrors"
	"homeledger/internal/model"
)

// ValuationRepository provides data access methods for the property_valuation table.
type ValuationRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewValuationRepository creates a new ValuationRepository with the provided database connection.
func NewValuationRepository(db *sql.DB) *ValuationRepository {
	return &ValuationRepository{db: db}
}

// WithTx returns a new ValuationRepository scoped to the provided transaction.
func (r *ValuationRepository) WithTx(tx *sql.Tx) *ValuationRepository {
	return &ValuationRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *ValuationRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// CreateValuation inserts a valuation point, generating its ID and creation time.
func (r *ValuationRepository) CreateValuation(v model.PropertyValuation) (model.PropertyValuation, error) {
	v.ID = uuid.New().String()
	v.CreatedAt = time.Now().UTC()
	if v.Source == "" {
		v.Source = "manual"
	}

	query := `
        INSERT INTO property_valuation (id, property_id, value, source, valuation_date, notes, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.getQuerier().Exec(query,
		v.ID,
		v.PropertyID,
		v.Value,
		v.Source,
		formatDateTime(v.ValuationDate),
		nullString(v.Notes),
		formatDateTime(v.CreatedAt),
	)
	if err != nil {
		return model.PropertyValuation{}, fmt.Errorf("failed to insert valuation: %w", err)
	}

	return v, nil
}

// GetValuationsOnPropertyID retrieves a property's valuation history, newest first.
func (r *ValuationRepository) GetValuationsOnPropertyID(propertyID string) ([]model.PropertyValuation, error) {
	query := `
        SELECT id, property_id, value, source, valuation_date, notes, created_at
        FROM property_valuation
        WHERE property_id = ?
        ORDER BY valuation_date DESC
    `
	rows, err := r.getQuerier().Query(query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query property_valuation table: %w", err)
	}
	defer rows.Close()

	valuations := []model.PropertyValuation{}

	for rows.Next() {
		var v model.PropertyValuation
		var notes sql.NullString
		var valuationDate, createdAt string

		err := rows.Scan(
			&v.ID,
			&v.PropertyID,
			&v.Value,
			&v.Source,
			&valuationDate,
			&notes,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan property_valuation table results: %w", err)
		}

		v.Notes = notes.String

		if v.ValuationDate, err = ParseTime(valuationDate); err != nil {
			return nil, err
		}
		if v.CreatedAt, err = ParseTime(createdAt); err != nil {
			return nil, err
		}

		valuations = append(valuations, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property_valuation table: %w", err)
	}

	return valuations, nil
}

// DeleteValuation removes a valuation point.
func (r *ValuationRepository) DeleteValuation(valuationID string) error {
	result, err := r.getQuerier().Exec(`DELETE FROM property_valuation WHERE id = ?`, valuationID)
	if err != nil {
		return fmt.Errorf("failed to delete valuation: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrValuationNotFound
	}

	return nil
}
