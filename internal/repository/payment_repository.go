package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"homeledger/internal/apperrors"
	"homeledger/internal/model"
)

// PaymentRepository provides data access methods for the payment table.
type PaymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository creates a new PaymentRepository with the provided database connection.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// CreatePayment inserts a collected payment, generating its ID and creation time.
func (r *PaymentRepository) CreatePayment(p model.Payment) (model.Payment, error) {
	p.ID = uuid.New().String()
	p.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO payment (id, lease_id, payment_date, amount, method, applied_to_charge_id, notes, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.Exec(query,
		p.ID,
		p.LeaseID,
		formatDate(p.PaymentDate),
		p.Amount,
		nullString(p.Method),
		nullString(p.AppliedToChargeID),
		nullString(p.Notes),
		formatDateTime(p.CreatedAt),
	)
	if err != nil {
		return model.Payment{}, fmt.Errorf("failed to insert payment: %w", err)
	}

	return p, nil
}

// GetPaymentsOnLeaseID retrieves all payments collected against a lease.
func (r *PaymentRepository) GetPaymentsOnLeaseID(leaseID string) ([]model.Payment, error) {
	query := `
        SELECT id, lease_id, payment_date, amount, method, applied_to_charge_id, notes, created_at
        FROM payment
        WHERE lease_id = ?
        ORDER BY payment_date
    `
	rows, err := r.db.Query(query, leaseID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payment table: %w", err)
	}
	defer rows.Close()

	payments := []model.Payment{}

	for rows.Next() {
		var p model.Payment
		var method, appliedTo, notes sql.NullString
		var paymentDate, createdAt string

		err := rows.Scan(
			&p.ID,
			&p.LeaseID,
			&paymentDate,
			&p.Amount,
			&method,
			&appliedTo,
			&notes,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment table results: %w", err)
		}

		p.Method = method.String
		p.AppliedToChargeID = appliedTo.String
		p.Notes = notes.String

		if p.PaymentDate, err = ParseTime(paymentDate); err != nil {
			return nil, err
		}
		if p.CreatedAt, err = ParseTime(createdAt); err != nil {
			return nil, err
		}

		payments = append(payments, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payment table: %w", err)
	}

	return payments, nil
}

// DeletePayment removes a collected payment.
func (r *PaymentRepository) DeletePayment(paymentID string) error {
	result, err := r.db.Exec(`DELETE FROM payment WHERE id = ?`, paymentID)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrPaymentNotFound
	}

	return nil
}
