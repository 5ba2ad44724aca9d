package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"homeledger/internal/apperrors"
	"homeledger/internal/model"
)

// UserRepository provides data access methods for the user table.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateUser inserts a new user and returns it with a generated ID.
func (r *UserRepository) CreateUser(householdID, email, name, passwordHash string) (model.User, error) {
	u := model.User{
		ID:           uuid.New().String(),
		HouseholdID:  householdID,
		Email:        email,
		Name:         name,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	query := `
        INSERT INTO user (id, household_id, email, name, password_hash, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	_, err := r.db.Exec(query, u.ID, u.HouseholdID, u.Email, u.Name, u.PasswordHash, formatDateTime(u.CreatedAt))
	if err != nil {
		return model.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return u, nil
}

// GetUserOnEmail retrieves a user by email address, for login.
func (r *UserRepository) GetUserOnEmail(email string) (model.User, error) {
	return r.getUser("email = ?", email)
}

// GetUserOnID retrieves a user by ID.
func (r *UserRepository) GetUserOnID(userID string) (model.User, error) {
	return r.getUser("id = ?", userID)
}

func (r *UserRepository) getUser(where string, arg any) (model.User, error) {
	query := `
        SELECT id, household_id, email, name, password_hash, created_at
        FROM user
        WHERE ` + where

	var u model.User
	var createdAt string

	err := r.db.QueryRow(query, arg).Scan(
		&u.ID,
		&u.HouseholdID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	if u.CreatedAt, err = ParseTime(createdAt); err != nil {
		return model.User{}, err
	}

	return u, nil
}

// EmailExists reports whether a user with the given email already exists.
func (r *UserRepository) EmailExists(email string) (bool, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM user WHERE email = ?`, email).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query user table: %w", err)
	}
	return count > 0, nil
}
