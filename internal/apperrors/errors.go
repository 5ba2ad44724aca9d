package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrHouseholdNotFound indicates that a household with the given ID does not exist.
	ErrHouseholdNotFound = errors.New("household not found")

	// ErrUserNotFound indicates that a user with the given ID or email does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrAccountNotFound indicates that an account with the given ID does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrHoldingNotFound indicates that a holding with the given ID does not exist.
	ErrHoldingNotFound = errors.New("holding not found")

	// ErrPropertyNotFound indicates that a property with the given ID does not exist.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrUnitNotFound indicates that a unit with the given ID does not exist.
	ErrUnitNotFound = errors.New("unit not found")

	// ErrTenantNotFound indicates that a tenant with the given ID does not exist.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrLeaseNotFound indicates that a lease with the given ID does not exist.
	ErrLeaseNotFound = errors.New("lease not found")

	// ErrPaymentNotFound indicates that a payment with the given ID does not exist.
	ErrPaymentNotFound = errors.New("payment not found")

	// ErrRentChargeNotFound indicates that a rent charge with the given ID does not exist.
	ErrRentChargeNotFound = errors.New("rent charge not found")

	// ErrLoanNotFound indicates that a loan with the given ID does not exist.
	ErrLoanNotFound = errors.New("loan not found")

	// ErrPropertyCostNotFound indicates that a property cost with the given ID does not exist.
	ErrPropertyCostNotFound = errors.New("property cost not found")

	// ErrExpenseNotFound indicates that a maintenance expense with the given ID does not exist.
	ErrExpenseNotFound = errors.New("maintenance expense not found")

	// ErrCapitalEventNotFound indicates that a capital event with the given ID does not exist.
	ErrCapitalEventNotFound = errors.New("capital event not found")

	// ErrValuationNotFound indicates that a property valuation with the given ID does not exist.
	ErrValuationNotFound = errors.New("property valuation not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken indicates an expired, malformed, or otherwise unverifiable bearer token.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrEmailTaken indicates that a user with the given email already exists.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrInvalidMonth indicates that a month parameter is not in YYYY-MM form.
	ErrInvalidMonth = errors.New("month must be YYYY-MM")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., start date is after end date).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrNoTicker indicates that a holding cannot be price-refreshed because it
	// has no ticker symbol.
	ErrNoTicker = errors.New("holding has no ticker symbol")

	// ErrAccountNotInvestment indicates a holdings operation against a
	// non-investment account.
	ErrAccountNotInvestment = errors.New("account is not an investment account")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These errors indicate that an operation failed, but not due
// to missing entities or validation issues.
var (
	// Account operation errors
	ErrFailedToRetrieveAccounts = errors.New("failed to retrieve accounts")
	ErrFailedToRetrieveHoldings = errors.New("failed to retrieve holdings")

	// Property operation errors
	ErrFailedToRetrieveProperties = errors.New("failed to retrieve properties")
	ErrFailedToRetrieveUnits      = errors.New("failed to retrieve units")
	ErrFailedToRetrieveLeases     = errors.New("failed to retrieve leases")
	ErrFailedToRetrieveTenants    = errors.New("failed to retrieve tenants")

	// Report operation errors
	ErrFailedToBuildReport = errors.New("failed to build report")

	// Price refresh operation errors
	ErrFailedToRefreshPrices = errors.New("failed to refresh prices")
	ErrQuoteSourceFailed     = errors.New("quote source request failed")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that the data is in an inconsistent state
	// (e.g., a lease references a unit that doesn't exist).
	ErrDataInconsistency = errors.New("data inconsistency detected")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
