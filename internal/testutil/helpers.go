package testutil

import (
	"database/sql"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/google/uuid"

	"homeledger/internal/auth"
	"homeledger/internal/repository"
	"homeledger/internal/service"
)

// MakeID generates a unique UUID string for test entities.
func MakeID() string {
	return uuid.New().String()
}

// MakeEmail generates a unique email address to dodge the UNIQUE constraint
// when tests create several users.
func MakeEmail() string {
	return fmt.Sprintf("test-%06d@example.com", rand.Intn(1000000)) //nolint:gosec // Test data, not crypto
}

// TestSecretKey is a fixed fernet key used by test token managers.
const TestSecretKey = "cw_0x689RpI-jtRR7oE8h_eQsKImvJapLeSbXpwF4e4="

func NewTestTokenManager(t *testing.T) *auth.TokenManager {
	t.Helper()

	tm, err := auth.NewTokenManager(TestSecretKey, 15*time.Minute, 720*time.Hour)
	if err != nil {
		t.Fatalf("Failed to create test token manager: %v", err)
	}
	return tm
}

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

func NewTestAuthService(t *testing.T, db *sql.DB) *service.AuthService {
	t.Helper()

	return service.NewAuthService(
		repository.NewUserRepository(db),
		repository.NewHouseholdRepository(db),
		NewTestTokenManager(t),
	)
}

func NewTestAccountService(t *testing.T, db *sql.DB) *service.AccountService {
	t.Helper()

	return service.NewAccountService(
		repository.NewAccountRepository(db),
		repository.NewHoldingRepository(db),
	)
}

func NewTestPropertyService(t *testing.T, db *sql.DB) *service.PropertyService {
	t.Helper()

	return service.NewPropertyService(
		db,
		repository.NewPropertyRepository(db),
		repository.NewValuationRepository(db),
		repository.NewCapitalEventRepository(db),
	)
}

func NewTestRentalService(t *testing.T, db *sql.DB) *service.RentalService {
	t.Helper()

	return service.NewRentalService(
		repository.NewPropertyRepository(db),
		repository.NewUnitRepository(db),
		repository.NewTenantRepository(db),
		repository.NewLeaseRepository(db),
		repository.NewPaymentRepository(db),
	)
}

func NewTestPropertyDetailsService(t *testing.T, db *sql.DB) *service.PropertyDetailsService {
	t.Helper()

	return service.NewPropertyDetailsService(
		repository.NewPropertyRepository(db),
		repository.NewLoanRepository(db),
		repository.NewPropertyCostRepository(db),
		repository.NewExpenseRepository(db),
	)
}

func NewTestReportService(t *testing.T, db *sql.DB) *service.ReportService {
	t.Helper()

	return service.NewReportService(
		repository.NewPropertyRepository(db),
		repository.NewReportRepository(db),
		repository.NewLoanRepository(db),
		repository.NewPropertyCostRepository(db),
		repository.NewExpenseRepository(db),
		repository.NewCapitalEventRepository(db),
	)
}
