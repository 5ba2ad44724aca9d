package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"homeledger/internal/apperrors"
	"homeledger/internal/model"
)

// CapitalEventRepository provides data access methods for the capital_event table.
type CapitalEventRepository struct {
	db *sql.DB
}

// NewCapitalEventRepository creates a new CapitalEventRepository with the provided database connection.
func NewCapitalEventRepository(db *sql.DB) *CapitalEventRepository {
	return &CapitalEventRepository{db: db}
}

// CreateCapitalEvent inserts a capital event, generating its ID and creation time.
func (r *CapitalEventRepository) CreateCapitalEvent(e model.CapitalEvent) (model.CapitalEvent, error) {
	e.ID = uuid.New().String()
	e.CreatedAt = time.Now().UTC()
	if e.EventType == "" {
		e.EventType = "other"
	}

	query := `
        INSERT INTO capital_event (id, property_id, event_date, event_type, amount, description, notes, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.Exec(query,
		e.ID,
		e.PropertyID,
		formatDate(e.EventDate),
		e.EventType,
		e.Amount,
		nullString(e.Description),
		nullString(e.Notes),
		formatDateTime(e.CreatedAt),
	)
	if err != nil {
		return model.CapitalEvent{}, fmt.Errorf("failed to insert capital event: %w", err)
	}

	return e, nil
}

// GetCapitalEventsOnPropertyID retrieves a property's capital timeline, oldest first.
func (r *CapitalEventRepository) GetCapitalEventsOnPropertyID(propertyID string) ([]model.CapitalEvent, error) {
	query := `
        SELECT id, property_id, event_date, event_type, amount, description, notes, created_at
        FROM capital_event
        WHERE property_id = ?
        ORDER BY event_date
    `
	rows, err := r.db.Query(query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query capital_event table: %w", err)
	}
	defer rows.Close()

	events := []model.CapitalEvent{}

	for rows.Next() {
		var e model.CapitalEvent
		var description, notes sql.NullString
		var eventDate, createdAt string

		err := rows.Scan(
			&e.ID,
			&e.PropertyID,
			&eventDate,
			&e.EventType,
			&e.Amount,
			&description,
			&notes,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan capital_event table results: %w", err)
		}

		e.Description = description.String
		e.Notes = notes.String

		if e.EventDate, err = ParseTime(eventDate); err != nil {
			return nil, err
		}
		if e.CreatedAt, err = ParseTime(createdAt); err != nil {
			return nil, err
		}

		events = append(events, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating capital_event table: %w", err)
	}

	return events, nil
}

// DeleteCapitalEvent removes a capital event.
func (r *CapitalEventRepository) DeleteCapitalEvent(eventID string) error {
	result, err := r.db.Exec(`DELETE FROM capital_event WHERE id = ?`, eventID)
	if err != nil {
		return fmt.Errorf("failed to delete capital event: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrCapitalEventNotFound
	}

	return nil
}
