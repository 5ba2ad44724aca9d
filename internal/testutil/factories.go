package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"homeledger/internal/model"
)

// Fluent builders for test fixtures. Each builder starts from sensible
// defaults, takes With* overrides, and Build(t, db) inserts the row and
// returns the model.
//
// Example usage:
//
//	household := testutil.NewHousehold().Build(t, db)
//	property := testutil.NewProperty(household.ID).
//	    WithPurchase("2022-06-15", 300000, 9000).
//	    Build(t, db)

// HouseholdBuilder creates test households.
type HouseholdBuilder struct {
	ID                          string
	Name                        string
	PriceRefreshEnabled         bool
	PriceRefreshIntervalMinutes int
}

// NewHousehold creates a HouseholdBuilder with sensible defaults.
func NewHousehold() *HouseholdBuilder {
	return &HouseholdBuilder{
		ID:                          MakeID(),
		Name:                        "Test Household",
		PriceRefreshEnabled:         true,
		PriceRefreshIntervalMinutes: 15,
	}
}

// WithName sets a custom name.
func (b *HouseholdBuilder) WithName(name string) *HouseholdBuilder {
	b.Name = name
	return b
}

// RefreshDisabled turns off automatic price refresh.
func (b *HouseholdBuilder) RefreshDisabled() *HouseholdBuilder {
	b.PriceRefreshEnabled = false
	return b
}

// WithRefreshInterval sets the refresh interval in minutes.
func (b *HouseholdBuilder) WithRefreshInterval(minutes int) *HouseholdBuilder {
	b.PriceRefreshIntervalMinutes = minutes
	return b
}

// Build creates the household in the database and returns it.
func (b *HouseholdBuilder) Build(t *testing.T, db *sql.DB) model.Household {
	t.Helper()

	query := `
		INSERT INTO household (id, name, price_refresh_enabled, price_refresh_interval_minutes)
		VALUES (?, ?, ?, ?)
	`
	_, err := db.Exec(query, b.ID, b.Name, b.PriceRefreshEnabled, b.PriceRefreshIntervalMinutes)
	if err != nil {
		t.Fatalf("Failed to create test household: %v", err)
	}

	return model.Household{
		ID:                          b.ID,
		Name:                        b.Name,
		PriceRefreshEnabled:         b.PriceRefreshEnabled,
		PriceRefreshIntervalMinutes: b.PriceRefreshIntervalMinutes,
	}
}

// UserBuilder creates test users.
type UserBuilder struct {
	ID           string
	HouseholdID  string
	Email        string
	Name         string
	PasswordHash string
}

// NewUser creates a UserBuilder attached to the given household.
func NewUser(householdID string) *UserBuilder {
	return &UserBuilder{
		ID:           MakeID(),
		HouseholdID:  householdID,
		Email:        MakeEmail(),
		Name:         "Test User",
		PasswordHash: "$2a$10$test.hash.not.a.real.bcrypt.value.0000000000000",
	}
}

// WithEmail sets a custom email.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.Email = email
	return b
}

// WithPasswordHash sets a real bcrypt hash for login tests.
func (b *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	b.PasswordHash = hash
	return b
}

// Build creates the user in the database and returns it.
func (b *UserBuilder) Build(t *testing.T, db *sql.DB) model.User {
	t.Helper()

	query := `
		INSERT INTO user (id, household_id, email, name, password_hash)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := db.Exec(query, b.ID, b.HouseholdID, b.Email, b.Name, b.PasswordHash)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return model.User{
		ID:           b.ID,
		HouseholdID:  b.HouseholdID,
		Email:        b.Email,
		Name:         b.Name,
		PasswordHash: b.PasswordHash,
	}
}

// AccountBuilder creates test accounts.
type AccountBuilder struct {
	ID          string
	HouseholdID string
	Name        string
	Type        string
	IsManual    bool
}

// NewAccount creates an AccountBuilder attached to the given household.
func NewAccount(householdID string) *AccountBuilder {
	return &AccountBuilder{
		ID:          MakeID(),
		HouseholdID: householdID,
		Name:        "Test Account",
		Type:        "depository",
		IsManual:    true,
	}
}

// WithName sets a custom name.
func (b *AccountBuilder) WithName(name string) *AccountBuilder {
	b.Name = name
	return b
}

// Investment marks the account as an investment account.
func (b *AccountBuilder) Investment() *AccountBuilder {
	b.Type = "investment"
	return b
}

// Build creates the account in the database and returns it.
func (b *AccountBuilder) Build(t *testing.T, db *sql.DB) model.Account {
	t.Helper()

	query := `
		INSERT INTO account (id, household_id, name, type, is_manual)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := db.Exec(query, b.ID, b.HouseholdID, b.Name, b.Type, b.IsManual)
	if err != nil {
		t.Fatalf("Failed to create test account: %v", err)
	}

	return model.Account{
		ID:           b.ID,
		HouseholdID:  b.HouseholdID,
		Name:         b.Name,
		Type:         b.Type,
		CurrencyCode: "USD",
		IsManual:     b.IsManual,
	}
}

// HoldingBuilder creates test holdings.
type HoldingBuilder struct {
	ID           string
	AccountID    string
	HouseholdID  string
	TickerSymbol string
	Name         string
	Quantity     decimal.Decimal
}

// NewHolding creates a HoldingBuilder attached to the given account.
func NewHolding(householdID, accountID string) *HoldingBuilder {
	return &HoldingBuilder{
		ID:           MakeID(),
		AccountID:    accountID,
		HouseholdID:  householdID,
		TickerSymbol: "VTI",
		Name:         "Test Holding",
		Quantity:     decimal.NewFromInt(10),
	}
}

// WithTicker sets the ticker symbol. An empty string stores NULL, which
// excludes the holding from price refresh.
func (b *HoldingBuilder) WithTicker(ticker string) *HoldingBuilder {
	b.TickerSymbol = ticker
	return b
}

// WithQuantity sets the share quantity.
func (b *HoldingBuilder) WithQuantity(q decimal.Decimal) *HoldingBuilder {
	b.Quantity = q
	return b
}

// Build creates the holding in the database and returns it.
func (b *HoldingBuilder) Build(t *testing.T, db *sql.DB) model.Holding {
	t.Helper()

	var ticker any
	if b.TickerSymbol != "" {
		ticker = b.TickerSymbol
	}

	query := `
		INSERT INTO holding (id, account_id, household_id, ticker_symbol, name, quantity)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := db.Exec(query, b.ID, b.AccountID, b.HouseholdID, ticker, b.Name, b.Quantity)
	if err != nil {
		t.Fatalf("Failed to create test holding: %v", err)
	}

	return model.Holding{
		ID:           b.ID,
		AccountID:    b.AccountID,
		HouseholdID:  b.HouseholdID,
		TickerSymbol: b.TickerSymbol,
		Name:         b.Name,
		Quantity:     b.Quantity,
		CurrencyCode: "USD",
	}
}

// PropertyBuilder creates test properties.
type PropertyBuilder struct {
	ID                string
	HouseholdID       string
	Address           string
	PurchasePrice     decimal.NullDecimal
	PurchaseDate      *time.Time
	ClosingCosts      decimal.NullDecimal
	CurrentValue      decimal.NullDecimal
	IsPropertyManaged bool
	ManagementFeePct  decimal.NullDecimal
}

// NewProperty creates a PropertyBuilder attached to the given household.
func NewProperty(householdID string) *PropertyBuilder {
	return &PropertyBuilder{
		ID:          MakeID(),
		HouseholdID: householdID,
		Address:     "123 Test St",
	}
}

// WithAddress sets a custom address.
func (b *PropertyBuilder) WithAddress(address string) *PropertyBuilder {
	b.Address = address
	return b
}

// WithPurchase sets the purchase date (YYYY-MM-DD), price, and closing costs.
func (b *PropertyBuilder) WithPurchase(date string, price, closing float64) *PropertyBuilder {
	d, _ := time.Parse("2006-01-02", date)
	b.PurchaseDate = &d
	b.PurchasePrice = decimal.NewNullDecimal(decimal.NewFromFloat(price))
	b.ClosingCosts = decimal.NewNullDecimal(decimal.NewFromFloat(closing))
	return b
}

// WithCurrentValue sets the tracked current value.
func (b *PropertyBuilder) WithCurrentValue(value float64) *PropertyBuilder {
	b.CurrentValue = decimal.NewNullDecimal(decimal.NewFromFloat(value))
	return b
}

// Managed marks the property as professionally managed at the given fee.
func (b *PropertyBuilder) Managed(feePct float64) *PropertyBuilder {
	b.IsPropertyManaged = true
	b.ManagementFeePct = decimal.NewNullDecimal(decimal.NewFromFloat(feePct))
	return b
}

// Build creates the property in the database and returns it.
func (b *PropertyBuilder) Build(t *testing.T, db *sql.DB) model.Property {
	t.Helper()

	var purchaseDate any
	if b.PurchaseDate != nil {
		purchaseDate = b.PurchaseDate.Format("2006-01-02")
	}

	query := `
		INSERT INTO property (id, household_id, address, purchase_price, purchase_date,
			closing_costs, current_value, is_property_managed, management_fee_pct)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := db.Exec(query, b.ID, b.HouseholdID, b.Address, b.PurchasePrice, purchaseDate,
		b.ClosingCosts, b.CurrentValue, b.IsPropertyManaged, b.ManagementFeePct)
	if err != nil {
		t.Fatalf("Failed to create test property: %v", err)
	}

	return model.Property{
		ID:                b.ID,
		HouseholdID:       b.HouseholdID,
		Address:           b.Address,
		PurchasePrice:     b.PurchasePrice,
		PurchaseDate:      b.PurchaseDate,
		ClosingCosts:      b.ClosingCosts,
		CurrentValue:      b.CurrentValue,
		IsPropertyManaged: b.IsPropertyManaged,
		ManagementFeePct:  b.ManagementFeePct,
	}
}

// UnitBuilder creates test units.
type UnitBuilder struct {
	ID         string
	PropertyID string
	UnitLabel  string
	IsRentable bool
}

// NewUnit creates a UnitBuilder attached to the given property.
func NewUnit(propertyID string) *UnitBuilder {
	return &UnitBuilder{
		ID:         MakeID(),
		PropertyID: propertyID,
		UnitLabel:  "Unit A",
		IsRentable: true,
	}
}

// WithLabel sets a custom unit label.
func (b *UnitBuilder) WithLabel(label string) *UnitBuilder {
	b.UnitLabel = label
	return b
}

// NotRentable excludes the unit from occupancy and rent calculations.
func (b *UnitBuilder) NotRentable() *UnitBuilder {
	b.IsRentable = false
	return b
}

// Build creates the unit in the database and returns it.
func (b *UnitBuilder) Build(t *testing.T, db *sql.DB) model.Unit {
	t.Helper()

	query := `
		INSERT INTO unit (id, property_id, unit_label, is_rentable)
		VALUES (?, ?, ?, ?)
	`
	_, err := db.Exec(query, b.ID, b.PropertyID, b.UnitLabel, b.IsRentable)
	if err != nil {
		t.Fatalf("Failed to create test unit: %v", err)
	}

	return model.Unit{
		ID:         b.ID,
		PropertyID: b.PropertyID,
		UnitLabel:  b.UnitLabel,
		IsRentable: b.IsRentable,
	}
}

// TenantBuilder creates test tenants.
type TenantBuilder struct {
	ID          string
	HouseholdID string
	Name        string
}

// NewTenant creates a TenantBuilder attached to the given household.
func NewTenant(householdID string) *TenantBuilder {
	return &TenantBuilder{
		ID:          MakeID(),
		HouseholdID: householdID,
		Name:        "Test Tenant",
	}
}

// WithName sets a custom name.
func (b *TenantBuilder) WithName(name string) *TenantBuilder {
	b.Name = name
	return b
}

// Build creates the tenant in the database and returns it.
func (b *TenantBuilder) Build(t *testing.T, db *sql.DB) model.Tenant {
	t.Helper()

	query := `INSERT INTO tenant (id, household_id, name) VALUES (?, ?, ?)`
	_, err := db.Exec(query, b.ID, b.HouseholdID, b.Name)
	if err != nil {
		t.Fatalf("Failed to create test tenant: %v", err)
	}

	return model.Tenant{
		ID:          b.ID,
		HouseholdID: b.HouseholdID,
		Name:        b.Name,
	}
}

// LeaseBuilder creates test leases.
type LeaseBuilder struct {
	ID          string
	UnitID      string
	TenantID    string
	LeaseStart  time.Time
	LeaseEnd    *time.Time
	MoveOutDate *time.Time
	MonthlyRent decimal.Decimal
	Status      string
}

// NewLease creates a LeaseBuilder binding the given tenant to the given unit.
func NewLease(unitID, tenantID string) *LeaseBuilder {
	return &LeaseBuilder{
		ID:          MakeID(),
		UnitID:      unitID,
		TenantID:    tenantID,
		LeaseStart:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		MonthlyRent: decimal.NewFromInt(1500),
		Status:      "active",
	}
}

// WithStart sets the lease start date (YYYY-MM-DD).
func (b *LeaseBuilder) WithStart(date string) *LeaseBuilder {
	b.LeaseStart, _ = time.Parse("2006-01-02", date)
	return b
}

// WithRent sets the monthly rent.
func (b *LeaseBuilder) WithRent(rent float64) *LeaseBuilder {
	b.MonthlyRent = decimal.NewFromFloat(rent)
	return b
}

// Ended marks the lease ended with the given move-out date (YYYY-MM-DD).
func (b *LeaseBuilder) Ended(moveOut string) *LeaseBuilder {
	d, _ := time.Parse("2006-01-02", moveOut)
	b.Status = "ended"
	b.MoveOutDate = &d
	b.LeaseEnd = &d
	return b
}

// Build creates the lease in the database and returns it.
func (b *LeaseBuilder) Build(t *testing.T, db *sql.DB) model.Lease {
	t.Helper()

	var leaseEnd, moveOut any
	if b.LeaseEnd != nil {
		leaseEnd = b.LeaseEnd.Format("2006-01-02")
	}
	if b.MoveOutDate != nil {
		moveOut = b.MoveOutDate.Format("2006-01-02")
	}

	query := `
		INSERT INTO lease (id, unit_id, tenant_id, lease_start, lease_end, move_out_date, monthly_rent, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err := db.Exec(query, b.ID, b.UnitID, b.TenantID, b.LeaseStart.Format("2006-01-02"),
		leaseEnd, moveOut, b.MonthlyRent, b.Status)
	if err != nil {
		t.Fatalf("Failed to create test lease: %v", err)
	}

	return model.Lease{
		ID:          b.ID,
		UnitID:      b.UnitID,
		TenantID:    b.TenantID,
		LeaseStart:  b.LeaseStart,
		LeaseEnd:    b.LeaseEnd,
		MoveOutDate: b.MoveOutDate,
		MonthlyRent: b.MonthlyRent,
		Status:      b.Status,
	}
}

// Convenience functions

// CreateRentCharge bills a charge against a lease on the given date (YYYY-MM-DD).
func CreateRentCharge(t *testing.T, db *sql.DB, leaseID, date string, amount float64) model.RentCharge {
	t.Helper()

	charge := model.RentCharge{
		ID:         MakeID(),
		LeaseID:    leaseID,
		Amount:     decimal.NewFromFloat(amount),
		ChargeType: "rent",
	}
	charge.ChargeDate, _ = time.Parse("2006-01-02", date)

	query := `INSERT INTO rent_charge (id, lease_id, charge_date, amount, charge_type) VALUES (?, ?, ?, ?, ?)`
	_, err := db.Exec(query, charge.ID, charge.LeaseID, date, charge.Amount, charge.ChargeType)
	if err != nil {
		t.Fatalf("Failed to create test rent charge: %v", err)
	}

	return charge
}

// CreatePayment records a payment against a lease on the given date (YYYY-MM-DD).
func CreatePayment(t *testing.T, db *sql.DB, leaseID, date string, amount float64) model.Payment {
	t.Helper()

	payment := model.Payment{
		ID:      MakeID(),
		LeaseID: leaseID,
		Amount:  decimal.NewFromFloat(amount),
	}
	payment.PaymentDate, _ = time.Parse("2006-01-02", date)

	query := `INSERT INTO payment (id, lease_id, payment_date, amount) VALUES (?, ?, ?, ?)`
	_, err := db.Exec(query, payment.ID, payment.LeaseID, date, payment.Amount)
	if err != nil {
		t.Fatalf("Failed to create test payment: %v", err)
	}

	return payment
}

// CreateLoan attaches a loan with the given balance figures to a property.
func CreateLoan(t *testing.T, db *sql.DB, propertyID string, original, balance, monthlyPayment float64) model.Loan {
	t.Helper()

	loan := model.Loan{
		ID:             MakeID(),
		PropertyID:     propertyID,
		LoanType:       "mortgage",
		OriginalAmount: decimal.NewNullDecimal(decimal.NewFromFloat(original)),
		CurrentBalance: decimal.NewNullDecimal(decimal.NewFromFloat(balance)),
		MonthlyPayment: decimal.NewNullDecimal(decimal.NewFromFloat(monthlyPayment)),
	}

	query := `
		INSERT INTO loan (id, property_id, loan_type, original_amount, current_balance, monthly_payment)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := db.Exec(query, loan.ID, loan.PropertyID, loan.LoanType,
		loan.OriginalAmount, loan.CurrentBalance, loan.MonthlyPayment)
	if err != nil {
		t.Fatalf("Failed to create test loan: %v", err)
	}

	return loan
}

// CreatePropertyCost attaches a recurring cost to a property.
func CreatePropertyCost(t *testing.T, db *sql.DB, propertyID, category, frequency string, amount float64) model.PropertyCost {
	t.Helper()

	cost := model.PropertyCost{
		ID:         MakeID(),
		PropertyID: propertyID,
		Category:   category,
		Amount:     decimal.NewFromFloat(amount),
		Frequency:  frequency,
		IsActive:   true,
	}

	query := `
		INSERT INTO property_cost (id, property_id, category, amount, frequency, is_active)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	_, err := db.Exec(query, cost.ID, cost.PropertyID, cost.Category, cost.Amount, cost.Frequency, cost.IsActive)
	if err != nil {
		t.Fatalf("Failed to create test property cost: %v", err)
	}

	return cost
}

// CreateExpense records a maintenance expense on the given date (YYYY-MM-DD).
func CreateExpense(t *testing.T, db *sql.DB, propertyID, date, category string, amount float64, isCapex bool) model.MaintenanceExpense {
	t.Helper()

	expense := model.MaintenanceExpense{
		ID:          MakeID(),
		PropertyID:  propertyID,
		Amount:      decimal.NewFromFloat(amount),
		Category:    category,
		Description: "Test expense",
		IsCapex:     isCapex,
	}
	expense.ExpenseDate, _ = time.Parse("2006-01-02", date)

	query := `
		INSERT INTO maintenance_expense (id, property_id, expense_date, amount, category, description, is_capex)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err := db.Exec(query, expense.ID, expense.PropertyID, date, expense.Amount,
		expense.Category, expense.Description, expense.IsCapex)
	if err != nil {
		t.Fatalf("Failed to create test expense: %v", err)
	}

	return expense
}

// CreateCapitalEvent records a signed capital event on the given date (YYYY-MM-DD).
func CreateCapitalEvent(t *testing.T, db *sql.DB, propertyID, date, eventType string, amount float64) model.CapitalEvent {
	t.Helper()

	event := model.CapitalEvent{
		ID:         MakeID(),
		PropertyID: propertyID,
		EventType:  eventType,
		Amount:     decimal.NewFromFloat(amount),
	}
	event.EventDate, _ = time.Parse("2006-01-02", date)

	query := `
		INSERT INTO capital_event (id, property_id, event_date, event_type, amount)
		VALUES (?, ?, ?, ?, ?)
	`
	_, err := db.Exec(query, event.ID, event.PropertyID, date, event.EventType, event.Amount)
	if err != nil {
		t.Fatalf("Failed to create test capital event: %v", err)
	}

	return event
}
