package repository

import (
	"database/sql"
	"fmt"
	"time"

	"homeledger/internal/model"
)

// ReportRepository provides the period-scoped aggregate queries behind the
// property and portfolio reports. Charges and payments hang off leases, so
// every sum joins lease -> unit -> property, restricted to rentable units.
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new ReportRepository with the provided database connection.
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// SumRentCharged totals the rent charges billed across a property's rentable
// units within [start, end].
func (r *ReportRepository) SumRentCharged(propertyID string, start, end time.Time) (float64, error) {
	query := `
        SELECT COALESCE(SUM(CAST(rc.amount AS REAL)), 0)
        FROM rent_charge rc
        INNER JOIN lease l ON l.id = rc.lease_id
        INNER JOIN unit u ON u.id = l.unit_id
        WHERE u.property_id = ? AND u.is_rentable = 1
          AND rc.charge_date >= ? AND rc.charge_date <= ?
    `
	return r.sum(query, propertyID, formatDate(start), formatDate(end))
}

// SumRentCollected totals the payments collected across a property's rentable
// units within [start, end].
func (r *ReportRepository) SumRentCollected(propertyID string, start, end time.Time) (float64, error) {
	query := `
        SELECT COALESCE(SUM(CAST(p.amount AS REAL)), 0)
        FROM payment p
        INNER JOIN lease l ON l.id = p.lease_id
        INNER JOIN unit u ON u.id = l.unit_id
        WHERE u.property_id = ? AND u.is_rentable = 1
          AND p.payment_date >= ? AND p.payment_date <= ?
    `
	return r.sum(query, propertyID, formatDate(start), formatDate(end))
}

// SumActiveMonthlyRent totals monthly_rent over leases active in [start, end]
// on rentable units, for the rent-roll fallback when no charges are recorded.
func (r *ReportRepository) SumActiveMonthlyRent(propertyID string, start, end time.Time) (float64, error) {
	query := `
        SELECT COALESCE(SUM(CAST(l.monthly_rent AS REAL)), 0)
        FROM lease l
        INNER JOIN unit u ON u.id = l.unit_id
        WHERE u.property_id = ? AND u.is_rentable = 1
          AND l.status = 'active'
          AND l.lease_start <= ?
          AND (l.lease_end IS NULL OR l.lease_end >= ?)
    `
	return r.sum(query, propertyID, formatDate(end), formatDate(start))
}

// CountRentableUnits returns how many of a property's units are rentable.
func (r *ReportRepository) CountRentableUnits(propertyID string) (int, error) {
	return r.count(
		`SELECT COUNT(*) FROM unit WHERE property_id = ? AND is_rentable = 1`,
		propertyID,
	)
}

// CountActiveLeases returns the number of active leases on rentable units that
// started on or before asOf. Drives the occupancy percentage.
func (r *ReportRepository) CountActiveLeases(propertyID string, asOf time.Time) (int, error) {
	query := `
        SELECT COUNT(*)
        FROM lease l
        INNER JOIN unit u ON u.id = l.unit_id
        WHERE u.property_id = ? AND u.is_rentable = 1
          AND l.status = 'active'
          AND l.lease_start <= ?
    `
	return r.count(query, propertyID, formatDate(asOf))
}

// ExpenseTotalsByCategory groups a property's maintenance expenses within
// [start, end] by category, largest total first.
func (r *ReportRepository) ExpenseTotalsByCategory(propertyID string, start, end time.Time) ([]model.CategoryTotal, error) {
	query := `
        SELECT category, SUM(CAST(amount AS REAL)) AS total
        FROM maintenance_expense
        WHERE property_id = ? AND expense_date >= ? AND expense_date <= ?
        GROUP BY category
        ORDER BY total DESC
    `
	rows, err := r.db.Query(query, propertyID, formatDate(start), formatDate(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query expense totals: %w", err)
	}
	defer rows.Close()

	totals := []model.CategoryTotal{}

	for rows.Next() {
		var t model.CategoryTotal
		if err := rows.Scan(&t.Category, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan expense totals: %w", err)
		}
		totals = append(totals, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expense totals: %w", err)
	}

	return totals, nil
}

// EndedLeasesBetween returns the leases on rentable units that ended with a
// move-out date inside [start, end]. Drives the turnover count.
func (r *ReportRepository) EndedLeasesBetween(propertyID string, start, end time.Time) ([]model.Lease, error) {
	query := `
        SELECT l.id, l.unit_id, l.tenant_id, l.lease_start, l.lease_end, l.move_in_date, l.move_out_date,
               l.monthly_rent, l.deposit, l.status, l.notes, l.created_at
        FROM lease l
        INNER JOIN unit u ON u.id = l.unit_id
        WHERE u.property_id = ? AND u.is_rentable = 1
          AND l.status = 'ended'
          AND l.move_out_date >= ? AND l.move_out_date <= ?
    `
	rows, err := r.db.Query(query, propertyID, formatDate(start), formatDate(end))
	if err != nil {
		return nil, fmt.Errorf("failed to query ended leases: %w", err)
	}
	defer rows.Close()

	return collectLeases(rows)
}

// NextLeaseStartAfter returns the start date of the first lease on a unit that
// begins after the given date, or nil if the unit was never re-leased.
func (r *ReportRepository) NextLeaseStartAfter(unitID string, after time.Time) (*time.Time, error) {
	query := `
        SELECT lease_start
        FROM lease
        WHERE unit_id = ? AND lease_start > ?
        ORDER BY lease_start
        LIMIT 1
    `
	var dateStr string
	err := r.db.QueryRow(query, unitID, formatDate(after)).Scan(&dateStr)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query next lease start: %w", err)
	}

	t, err := ParseTime(dateStr)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// EarliestPaymentDate returns the date of the first payment ever collected on
// a property's rentable units, the fallback acquisition date for IRR.
func (r *ReportRepository) EarliestPaymentDate(propertyID string) (*time.Time, error) {
	query := `
        SELECT MIN(p.payment_date)
        FROM payment p
        INNER JOIN lease l ON l.id = p.lease_id
        INNER JOIN unit u ON u.id = l.unit_id
        WHERE u.property_id = ? AND u.is_rentable = 1
    `
	return r.minDate(query, propertyID)
}

// EarliestChargeDate returns the date of the first charge ever billed on a
// property's rentable units, the last-resort lifetime start date.
func (r *ReportRepository) EarliestChargeDate(propertyID string) (*time.Time, error) {
	query := `
        SELECT MIN(rc.charge_date)
        FROM rent_charge rc
        INNER JOIN lease l ON l.id = rc.lease_id
        INNER JOIN unit u ON u.id = l.unit_id
        WHERE u.property_id = ? AND u.is_rentable = 1
    `
	return r.minDate(query, propertyID)
}

func (r *ReportRepository) sum(query string, args ...any) (float64, error) {
	var total float64
	if err := r.db.QueryRow(query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to run aggregate query: %w", err)
	}
	return total, nil
}

func (r *ReportRepository) count(query string, args ...any) (int, error) {
	var n int
	if err := r.db.QueryRow(query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to run count query: %w", err)
	}
	return n, nil
}

func (r *ReportRepository) minDate(query string, args ...any) (*time.Time, error) {
	var dateStr sql.NullString
	if err := r.db.QueryRow(query, args...).Scan(&dateStr); err != nil {
		return nil, fmt.Errorf("failed to run min-date query: %w", err)
	}
	return parseNullTime(dateStr)
}
