package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"homeledger/internal/apperrors"
	"homeledger/internal/model"
)

// TenantRepository provides data access methods for the tenant table.
type TenantRepository struct {
	db *sql.DB
}

// NewTenantRepository creates a new TenantRepository with the provided database connection.
func NewTenantRepository(db *sql.DB) *TenantRepository {
	return &TenantRepository{db: db}
}

// CreateTenant inserts a new tenant, generating its ID and creation time.
func (r *TenantRepository) CreateTenant(t model.Tenant) (model.Tenant, error) {
	t.ID = uuid.New().String()
	t.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO tenant (id, household_id, name, email, phone, notes, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.Exec(query,
		t.ID,
		t.HouseholdID,
		t.Name,
		nullString(t.Email),
		nullString(t.Phone),
		nullString(t.Notes),
		formatDateTime(t.CreatedAt),
	)
	if err != nil {
		return model.Tenant{}, fmt.Errorf("failed to insert tenant: %w", err)
	}

	return t, nil
}

// GetTenants retrieves all tenants for a household.
func (r *TenantRepository) GetTenants(householdID string) ([]model.Tenant, error) {
	query := `
        SELECT id, household_id, name, email, phone, notes, created_at
        FROM tenant
        WHERE household_id = ?
        ORDER BY name
    `
	rows, err := r.db.Query(query, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tenant table: %w", err)
	}
	defer rows.Close()

	tenants := []model.Tenant{}

	for rows.Next() {
		t, err := scanTenant(rows.Scan)
		if err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenant table: %w", err)
	}

	return tenants, nil
}

// GetTenantOnID retrieves a single tenant by ID.
func (r *TenantRepository) GetTenantOnID(tenantID string) (model.Tenant, error) {
	query := `
        SELECT id, household_id, name, email, phone, notes, created_at
        FROM tenant
        WHERE id = ?
    `
	row := r.db.QueryRow(query, tenantID)
	t, err := scanTenant(row.Scan)
	if err == sql.ErrNoRows {
		return model.Tenant{}, apperrors.ErrTenantNotFound
	}
	if err != nil {
		return model.Tenant{}, err
	}

	return t, nil
}

// UpdateTenant updates the mutable fields of a tenant.
func (r *TenantRepository) UpdateTenant(t model.Tenant) error {
	query := `
        UPDATE tenant
        SET name = ?, email = ?, phone = ?, notes = ?
        WHERE id = ?
    `
	result, err := r.db.Exec(query,
		t.Name,
		nullString(t.Email),
		nullString(t.Phone),
		nullString(t.Notes),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update tenant: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTenantNotFound
	}

	return nil
}

// DeleteTenant removes a tenant; their leases cascade.
func (r *TenantRepository) DeleteTenant(tenantID string) error {
	result, err := r.db.Exec(`DELETE FROM tenant WHERE id = ?`, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrTenantNotFound
	}

	return nil
}

func scanTenant(scan func(dest ...any) error) (model.Tenant, error) {
	var t model.Tenant
	var email, phone, notes sql.NullString
	var createdAt string

	err := scan(
		&t.ID,
		&t.HouseholdID,
		&t.Name,
		&email,
		&phone,
		&notes,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return model.Tenant{}, err
	}
	if err != nil {
		return model.Tenant{}, fmt.Errorf("failed to scan tenant table results: %w", err)
	}

	t.Email = email.String
	t.Phone = phone.String
	t.Notes = notes.String

	if t.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.Tenant{}, err
	}

	return t, nil
}
