package request

import "github.com/shopspring/decimal"

// CreateUnitRequest represents the request body for adding a unit to a property.
type CreateUnitRequest struct {
	UnitLabel  string              `json:"unit_label"`
	Beds       *int                `json:"beds"`
	Baths      decimal.NullDecimal `json:"baths"`
	Sqft       *int                `json:"sqft"`
	IsRentable *bool               `json:"is_rentable"`
	Notes      string              `json:"notes"`
}

// UpdateUnitRequest mirrors CreateUnitRequest for full updates.
type UpdateUnitRequest = CreateUnitRequest

// CreateTenantRequest represents the request body for adding a tenant.
type CreateTenantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// UpdateTenantRequest mirrors CreateTenantRequest for full updates.
type UpdateTenantRequest = CreateTenantRequest

// CreateLeaseRequest represents the request body for binding a tenant to a
// unit. Dates are YYYY-MM-DD strings; empty means unset.
type CreateLeaseRequest struct {
	TenantID    string              `json:"tenant_id"`
	LeaseStart  string              `json:"lease_start"`
	LeaseEnd    string              `json:"lease_end"`
	MoveInDate  string              `json:"move_in_date"`
	MoveOutDate string              `json:"move_out_date"`
	MonthlyRent decimal.Decimal     `json:"monthly_rent"`
	Deposit     decimal.NullDecimal `json:"deposit"`
	Status      string              `json:"status"`
	Notes       string              `json:"notes"`
}

// UpdateLeaseRequest mirrors CreateLeaseRequest minus the tenant binding.
type UpdateLeaseRequest struct {
	LeaseStart  string              `json:"lease_start"`
	LeaseEnd    string              `json:"lease_end"`
	MoveInDate  string              `json:"move_in_date"`
	MoveOutDate string              `json:"move_out_date"`
	MonthlyRent decimal.Decimal     `json:"monthly_rent"`
	Deposit     decimal.NullDecimal `json:"deposit"`
	Status      string              `json:"status"`
	Notes       string              `json:"notes"`
}

// CreateRentChargeRequest represents the request body for billing a charge.
type CreateRentChargeRequest struct {
	ChargeDate string          `json:"charge_date"`
	Amount     decimal.Decimal `json:"amount"`
	ChargeType string          `json:"charge_type"`
	Notes      string          `json:"notes"`
}

// CreatePaymentRequest represents the request body for recording a payment.
type CreatePaymentRequest struct {
	PaymentDate       string          `json:"payment_date"`
	Amount            decimal.Decimal `json:"amount"`
	Method            string          `json:"method"`
	AppliedToChargeID string          `json:"applied_to_charge_id"`
	Notes             string          `json:"notes"`
}
