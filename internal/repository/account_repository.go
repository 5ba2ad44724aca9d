package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"homeledger/internal/apperrors"
	"homeledger/internal/model"
)

const accountColumns = `
    id, household_id, name, official_name, institution_name, owner_user_id,
    type, subtype, mask, current_balance, available_balance, currency_code,
    is_hidden, is_manual, created_at
`

// AccountRepository provides data access methods for the account table.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository with the provided database connection.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// CreateAccount inserts a new account, generating its ID and creation time.
func (r *AccountRepository) CreateAccount(a model.Account) (model.Account, error) {
	a.ID = uuid.New().String()
	a.CreatedAt = time.Now().UTC()
	if a.CurrencyCode == "" {
		a.CurrencyCode = "USD"
	}

	query := `
        INSERT INTO account (` + accountColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.Exec(query,
		a.ID,
		a.HouseholdID,
		a.Name,
		nullString(a.OfficialName),
		nullString(a.InstitutionName),
		nullString(a.OwnerUserID),
		a.Type,
		nullString(a.Subtype),
		nullString(a.Mask),
		a.CurrentBalance,
		a.AvailableBalance,
		a.CurrencyCode,
		a.IsHidden,
		a.IsManual,
		formatDateTime(a.CreatedAt),
	)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to insert account: %w", err)
	}

	return a, nil
}

// GetAccounts retrieves all accounts for a household, hidden ones included.
func (r *AccountRepository) GetAccounts(householdID string) ([]model.Account, error) {
	query := `
        SELECT ` + accountColumns + `
        FROM account
        WHERE household_id = ?
        ORDER BY name
    `
	rows, err := r.db.Query(query, householdID)
	if err != nil {
		return nil, fmt.Errorf("failed to query account table: %w", err)
	}
	defer rows.Close()

	accounts := []model.Account{}

	for rows.Next() {
		a, err := scanAccount(rows.Scan)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account table: %w", err)
	}

	return accounts, nil
}

// GetAccountOnID retrieves a single account by ID.
func (r *AccountRepository) GetAccountOnID(accountID string) (model.Account, error) {
	query := `
        SELECT ` + accountColumns + `
        FROM account
        WHERE id = ?
    `
	row := r.db.QueryRow(query, accountID)
	a, err := scanAccount(row.Scan)
	if err == sql.ErrNoRows {
		return model.Account{}, apperrors.ErrAccountNotFound
	}
	if err != nil {
		return model.Account{}, err
	}

	return a, nil
}

// UpdateAccount updates the mutable fields of an account.
func (r *AccountRepository) UpdateAccount(a model.Account) error {
	query := `
        UPDATE account
        SET name = ?, official_name = ?, institution_name = ?, owner_user_id = ?,
            type = ?, subtype = ?, mask = ?, current_balance = ?, available_balance = ?,
            currency_code = ?, is_hidden = ?
        WHERE id = ?
    `
	result, err := r.db.Exec(query,
		a.Name,
		nullString(a.OfficialName),
		nullString(a.InstitutionName),
		nullString(a.OwnerUserID),
		a.Type,
		nullString(a.Subtype),
		nullString(a.Mask),
		a.CurrentBalance,
		a.AvailableBalance,
		a.CurrencyCode,
		a.IsHidden,
		a.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAccountNotFound
	}

	return nil
}

// DeleteAccount removes an account; holdings cascade.
func (r *AccountRepository) DeleteAccount(accountID string) error {
	result, err := r.db.Exec(`DELETE FROM account WHERE id = ?`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrAccountNotFound
	}

	return nil
}

func scanAccount(scan func(dest ...any) error) (model.Account, error) {
	var a model.Account
	var officialName, institutionName, ownerUserID, subtype, mask sql.NullString
	var createdAt string

	err := scan(
		&a.ID,
		&a.HouseholdID,
		&a.Name,
		&officialName,
		&institutionName,
		&ownerUserID,
		&a.Type,
		&subtype,
		&mask,
		&a.CurrentBalance,
		&a.AvailableBalance,
		&a.CurrencyCode,
		&a.IsHidden,
		&a.IsManual,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return model.Account{}, err
	}
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to scan account table results: %w", err)
	}

	a.OfficialName = officialName.String
	a.InstitutionName = institutionName.String
	a.OwnerUserID = ownerUserID.String
	a.Subtype = subtype.String
	a.Mask = mask.String

	if a.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.Account{}, err
	}

	return a, nil
}
