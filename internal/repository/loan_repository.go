package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"homeledger/internal/apperrors"
	"homeledger/internal/model"
)

const loanColumns = `
    id, property_id, account_id, lender_name, loan_type, original_amount,
    current_balance, interest_rate, monthly_payment, payment_due_day,
    escrow_included, escrow_amount, origination_date, maturity_date,
    term_months, notes, created_at
`

// LoanRepository provides data access methods for the loan table.
type LoanRepository struct {
	db *sql.DB
}

// NewLoanRepository creates a new LoanRepository with the provided database connection.
func NewLoanRepository(db *sql.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

// CreateLoan inserts a new loan, generating its ID and creation time.
func (r *LoanRepository) CreateLoan(l model.Loan) (model.Loan, error) {
	l.ID = uuid.New().String()
	l.CreatedAt = time.Now().UTC()
	if l.LoanType == "" {
		l.LoanType = "mortgage"
	}

	query := `
        INSERT INTO loan (` + loanColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.Exec(query,
		l.ID,
		l.PropertyID,
		nullString(l.AccountID),
		nullString(l.LenderName),
		l.LoanType,
		l.OriginalAmount,
		l.CurrentBalance,
		l.InterestRate,
		l.MonthlyPayment,
		l.PaymentDueDay,
		l.EscrowIncluded,
		l.EscrowAmount,
		nullDate(l.OriginationDate),
		nullDate(l.MaturityDate),
		l.TermMonths,
		nullString(l.Notes),
		formatDateTime(l.CreatedAt),
	)
	if err != nil {
		return model.Loan{}, fmt.Errorf("failed to insert loan: %w", err)
	}

	return l, nil
}

// GetLoansOnPropertyID retrieves all loans secured by a property.
func (r *LoanRepository) GetLoansOnPropertyID(propertyID string) ([]model.Loan, error) {
	query := `
        SELECT ` + loanColumns + `
        FROM loan
        WHERE property_id = ?
        ORDER BY created_at
    `
	rows, err := r.db.Query(query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query loan table: %w", err)
	}
	defer rows.Close()

	loans := []model.Loan{}

	for rows.Next() {
		l, err := scanLoan(rows.Scan)
		if err != nil {
			return nil, err
		}
		loans = append(loans, l)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating loan table: %w", err)
	}

	return loans, nil
}

// GetLoanOnID retrieves a single loan by ID.
func (r *LoanRepository) GetLoanOnID(loanID string) (model.Loan, error) {
	query := `
        SELECT ` + loanColumns + `
        FROM loan
        WHERE id = ?
    `
	row := r.db.QueryRow(query, loanID)
	l, err := scanLoan(row.Scan)
	if err == sql.ErrNoRows {
		return model.Loan{}, apperrors.ErrLoanNotFound
	}
	if err != nil {
		return model.Loan{}, err
	}

	return l, nil
}

// UpdateLoan updates the mutable fields of a loan.
func (r *LoanRepository) UpdateLoan(l model.Loan) error {
	query := `
        UPDATE loan
        SET account_id = ?, lender_name = ?, loan_type = ?, original_amount = ?,
            current_balance = ?, interest_rate = ?, monthly_payment = ?, payment_due_day = ?,
            escrow_included = ?, escrow_amount = ?, origination_date = ?, maturity_date = ?,
            term_months = ?, notes = ?
        WHERE id = ?
    `
	result, err := r.db.Exec(query,
		nullString(l.AccountID),
		nullString(l.LenderName),
		l.LoanType,
		l.OriginalAmount,
		l.CurrentBalance,
		l.InterestRate,
		l.MonthlyPayment,
		l.PaymentDueDay,
		l.EscrowIncluded,
		l.EscrowAmount,
		nullDate(l.OriginationDate),
		nullDate(l.MaturityDate),
		l.TermMonths,
		nullString(l.Notes),
		l.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update loan: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrLoanNotFound
	}

	return nil
}

// DeleteLoan removes a loan.
func (r *LoanRepository) DeleteLoan(loanID string) error {
	result, err := r.db.Exec(`DELETE FROM loan WHERE id = ?`, loanID)
	if err != nil {
		return fmt.Errorf("failed to delete loan: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrLoanNotFound
	}

	return nil
}

func scanLoan(scan func(dest ...any) error) (model.Loan, error) {
	var l model.Loan
	var accountID, lenderName, notes sql.NullString
	var origination, maturity sql.NullString
	var createdAt string

	err := scan(
		&l.ID,
		&l.PropertyID,
		&accountID,
		&lenderName,
		&l.LoanType,
		&l.OriginalAmount,
		&l.CurrentBalance,
		&l.InterestRate,
		&l.MonthlyPayment,
		&l.PaymentDueDay,
		&l.EscrowIncluded,
		&l.EscrowAmount,
		&origination,
		&maturity,
		&l.TermMonths,
		&notes,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return model.Loan{}, err
	}
	if err != nil {
		return model.Loan{}, fmt.Errorf("failed to scan loan table results: %w", err)
	}

	l.AccountID = accountID.String
	l.LenderName = lenderName.String
	l.Notes = notes.String

	if l.OriginationDate, err = parseNullTime(origination); err != nil {
		return model.Loan{}, err
	}
	if l.MaturityDate, err = parseNullTime(maturity); err != nil {
		return model.Loan{}, err
	}
	if l.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.Loan{}, err
	}

	return l, nil
}
