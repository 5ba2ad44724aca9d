package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unit is a rentable unit within a property. A single-family home is one unit.
type Unit struct {
	ID         string              `json:"id"`
	PropertyID string              `json:"property_id"`
	UnitLabel  string              `json:"unit_label"`
	Beds       *int                `json:"beds"`
	Baths      decimal.NullDecimal `json:"baths"`
	Sqft       *int                `json:"sqft"`
	IsRentable bool                `json:"is_rentable"`
	Notes      string              `json:"notes,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

// Tenant is a directory entry with minimal contact info.
type Tenant struct {
	ID          string    `json:"id"`
	HouseholdID string    `json:"household_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Lease binds a tenant to a unit and defines rent terms.
type Lease struct {
	ID          string              `json:"id"`
	UnitID      string              `json:"unit_id"`
	TenantID    string              `json:"tenant_id"`
	LeaseStart  time.Time           `json:"lease_start"`
	LeaseEnd    *time.Time          `json:"lease_end"`
	MoveInDate  *time.Time          `json:"move_in_date"`
	MoveOutDate *time.Time          `json:"move_out_date"`
	MonthlyRent decimal.Decimal     `json:"monthly_rent"`
	Deposit     decimal.NullDecimal `json:"deposit"`
	Status      string              `json:"status"` // active | ended
	Notes       string              `json:"notes,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}

// RentCharge is what was billed to the tenant; supports delinquency tracking.
type RentCharge struct {
	ID         string          `json:"id"`
	LeaseID    string          `json:"lease_id"`
	ChargeDate time.Time       `json:"charge_date"`
	Amount     decimal.Decimal `json:"amount"`
	ChargeType string          `json:"charge_type"` // rent | late_fee | pet | parking | other
	Notes      string          `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Payment is what was actually collected against a lease.
type Payment struct {
	ID                string          `json:"id"`
	LeaseID           string          `json:"lease_id"`
	PaymentDate       time.Time       `json:"payment_date"`
	Amount            decimal.Decimal `json:"amount"`
	Method            string          `json:"method,omitempty"` // cash | check | ach | zelle | other
	AppliedToChargeID string          `json:"applied_to_charge_id,omitempty"`
	Notes             string          `json:"notes,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}
