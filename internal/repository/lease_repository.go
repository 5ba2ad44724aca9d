package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"homeledger/internal/apperrors"
	"homeledger/internal/model"
)

const leaseColumns = `
    id, unit_id, tenant_id, lease_start, lease_end, move_in_date, move_out_date,
    monthly_rent, deposit, status, notes, created_at
`

// LeaseRepository provides data access methods for the lease and rent_charge tables.
type LeaseRepository struct {
	db *sql.DB
}

// NewLeaseRepository creates a new LeaseRepository with the provided database connection.
func NewLeaseRepository(db *sql.DB) *LeaseRepository {
	return &LeaseRepository{db: db}
}

// CreateLease inserts a new lease, generating its ID and creation time.
func (r *LeaseRepository) CreateLease(l model.Lease) (model.Lease, error) {
	l.ID = uuid.New().String()
	l.CreatedAt = time.Now().UTC()
	if l.Status == "" {
		l.Status = "active"
	}

	query := `
        INSERT INTO lease (` + leaseColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.Exec(query,
		l.ID,
		l.UnitID,
		l.TenantID,
		formatDate(l.LeaseStart),
		nullDate(l.LeaseEnd),
		nullDate(l.MoveInDate),
		nullDate(l.MoveOutDate),
		l.MonthlyRent,
		l.Deposit,
		l.Status,
		nullString(l.Notes),
		formatDateTime(l.CreatedAt),
	)
	if err != nil {
		return model.Lease{}, fmt.Errorf("failed to insert lease: %w", err)
	}

	return l, nil
}

// GetLeasesOnUnitID retrieves all leases for a unit, newest first.
func (r *LeaseRepository) GetLeasesOnUnitID(unitID string) ([]model.Lease, error) {
	return r.getLeases(`unit_id = ? ORDER BY lease_start DESC`, unitID)
}

// GetLeasesOnPropertyID retrieves all leases across a property's units.
func (r *LeaseRepository) GetLeasesOnPropertyID(propertyID string) ([]model.Lease, error) {
	query := `
        SELECT l.id, l.unit_id, l.tenant_id, l.lease_start, l.lease_end, l.move_in_date, l.move_out_date,
               l.monthly_rent, l.deposit, l.status, l.notes, l.created_at
        FROM lease l
        INNER JOIN unit u ON u.id = l.unit_id
        WHERE u.property_id = ?
        ORDER BY l.lease_start
    `
	rows, err := r.db.Query(query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lease table: %w", err)
	}
	defer rows.Close()

	return collectLeases(rows)
}

func (r *LeaseRepository) getLeases(where string, args ...any) ([]model.Lease, error) {
	query := `
        SELECT ` + leaseColumns + `
        FROM lease
        WHERE ` + where

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query lease table: %w", err)
	}
	defer rows.Close()

	return collectLeases(rows)
}

func collectLeases(rows *sql.Rows) ([]model.Lease, error) {
	leases := []model.Lease{}

	for rows.Next() {
		l, err := scanLease(rows.Scan)
		if err != nil {
			return nil, err
		}
		leases = append(leases, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating lease table: %w", err)
	}

	return leases, nil
}

// GetLeaseOnID retrieves a single lease by ID.
func (r *LeaseRepository) GetLeaseOnID(leaseID string) (model.Lease, error) {
	query := `
        SELECT ` + leaseColumns + `
        FROM lease
        WHERE id = ?
    `
	row := r.db.QueryRow(query, leaseID)
	l, err := scanLease(row.Scan)
	if err == sql.ErrNoRows {
		return model.Lease{}, apperrors.ErrLeaseNotFound
	}
	if err != nil {
		return model.Lease{}, err
	}

	return l, nil
}

// UpdateLease updates the mutable fields of a lease.
func (r *LeaseRepository) UpdateLease(l model.Lease) error {
	query := `
        UPDATE lease
        SET lease_start = ?, lease_end = ?, move_in_date = ?, move_out_date = ?,
            monthly_rent = ?, deposit = ?, status = ?, notes = ?
        WHERE id = ?
    `
	result, err := r.db.Exec(query,
		formatDate(l.LeaseStart),
		nullDate(l.LeaseEnd),
		nullDate(l.MoveInDate),
		nullDate(l.MoveOutDate),
		l.MonthlyRent,
		l.Deposit,
		l.Status,
		nullString(l.Notes),
		l.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update lease: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrLeaseNotFound
	}

	return nil
}

// DeleteLease removes a lease; its charges and payments cascade.
func (r *LeaseRepository) DeleteLease(leaseID string) error {
	result, err := r.db.Exec(`DELETE FROM lease WHERE id = ?`, leaseID)
	if err != nil {
		return fmt.Errorf("failed to delete lease: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrLeaseNotFound
	}

	return nil
}

// CreateRentCharge inserts a billed charge against a lease.
func (r *LeaseRepository) CreateRentCharge(c model.RentCharge) (model.RentCharge, error) {
	c.ID = uuid.New().String()
	c.CreatedAt = time.Now().UTC()
	if c.ChargeType == "" {
		c.ChargeType = "rent"
	}

	query := `
        INSERT INTO rent_charge (id, lease_id, charge_date, amount, charge_type, notes, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.Exec(query,
		c.ID,
		c.LeaseID,
		formatDate(c.ChargeDate),
		c.Amount,
		c.ChargeType,
		nullString(c.Notes),
		formatDateTime(c.CreatedAt),
	)
	if err != nil {
		return model.RentCharge{}, fmt.Errorf("failed to insert rent charge: %w", err)
	}

	return c, nil
}

// GetRentChargesOnLeaseID retrieves all charges billed against a lease.
func (r *LeaseRepository) GetRentChargesOnLeaseID(leaseID string) ([]model.RentCharge, error) {
	query := `
        SELECT id, lease_id, charge_date, amount, charge_type, notes, created_at
        FROM rent_charge
        WHERE lease_id = ?
        ORDER BY charge_date
    `
	rows, err := r.db.Query(query, leaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query rent_charge table: %w", err)
	}
	defer rows.Close()

	charges := []model.RentCharge{}

	for rows.Next() {
		var c model.RentCharge
		var notes sql.NullString
		var chargeDate, createdAt string

		err := rows.Scan(
			&c.ID,
			&c.LeaseID,
			&chargeDate,
			&c.Amount,
			&c.ChargeType,
			&notes,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rent_charge table results: %w", err)
		}

		c.Notes = notes.String

		if c.ChargeDate, err = ParseTime(chargeDate); err != nil {
			return nil, err
		}
		if c.CreatedAt, err = ParseTime(createdAt); err != nil {
			return nil, err
		}

		charges = append(charges, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rent_charge table: %w", err)
	}

	return charges, nil
}

// DeleteRentCharge removes a billed charge.
func (r *LeaseRepository) DeleteRentCharge(chargeID string) error {
	result, err := r.db.Exec(`DELETE FROM rent_charge WHERE id = ?`, chargeID)
	if err != nil {
		return fmt.Errorf("failed to delete rent charge: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrRentChargeNotFound
	}

	return nil
}

func scanLease(scan func(dest ...any) error) (model.Lease, error) {
	var l model.Lease
	var notes sql.NullString
	var leaseStart, createdAt string
	var leaseEnd, moveIn, moveOut sql.NullString

	err := scan(
		&l.ID,
		&l.UnitID,
		&l.TenantID,
		&leaseStart,
		&leaseEnd,
		&moveIn,
		&moveOut,
		&l.MonthlyRent,
		&l.Deposit,
		&l.Status,
		&notes,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return model.Lease{}, err
	}
	if err != nil {
		return model.Lease{}, fmt.Errorf("failed to scan lease table results: %w", err)
	}

	l.Notes = notes.String

	if l.LeaseStart, err = ParseTime(leaseStart); err != nil {
		return model.Lease{}, err
	}
	if l.LeaseEnd, err = parseNullTime(leaseEnd); err != nil {
		return model.Lease{}, err
	}
	if l.MoveInDate, err = parseNullTime(moveIn); err != nil {
		return model.Lease{}, err
	}
	if l.MoveOutDate, err = parseNullTime(moveOut); err != nil {
		return model.Lease{}, err
	}
	if l.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.Lease{}, err
	}

	return l, nil
}
