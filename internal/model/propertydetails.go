package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Loan is debt secured by a property. MonthlyPayment is total P&I (or PITI
// when escrow is included) and feeds the report's debt-service line.
type Loan struct {
	ID              string              `json:"id"`
	PropertyID      string              `json:"property_id"`
	AccountID       string              `json:"account_id,omitempty"`
	LenderName      string              `json:"lender_name,omitempty"`
	LoanType        string              `json:"loan_type"` // mortgage | heloc | second_mortgage | other
	OriginalAmount  decimal.NullDecimal `json:"original_amount"`
	CurrentBalance  decimal.NullDecimal `json:"current_balance"`
	InterestRate    decimal.NullDecimal `json:"interest_rate"` // 6.8750 = 6.875%
	MonthlyPayment  decimal.NullDecimal `json:"monthly_payment"`
	PaymentDueDay   *int                `json:"payment_due_day"`
	EscrowIncluded  bool                `json:"escrow_included"`
	EscrowAmount    decimal.NullDecimal `json:"escrow_amount"`
	OriginationDate *time.Time          `json:"origination_date"`
	MaturityDate    *time.Time          `json:"maturity_date"`
	TermMonths      *int                `json:"term_months"`
	Notes           string              `json:"notes,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

// PropertyCost is a recurring fixed cost (tax, insurance, HOA, ...). The
// report converts every frequency to a monthly equivalent.
type PropertyCost struct {
	ID         string          `json:"id"`
	PropertyID string          `json:"property_id"`
	Category   string          `json:"category"` // hoa | property_tax | insurance | maintenance | utility | other
	Label      string          `json:"label,omitempty"`
	Amount     decimal.Decimal `json:"amount"`
	Frequency  string          `json:"frequency"` // monthly | quarterly | annual | one_time
	IsActive   bool            `json:"is_active"`
	Notes      string          `json:"notes,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// MaintenanceExpense is a one-off spend on a property. IsCapex excludes it
// from NOI and routes it to the capex line instead.
type MaintenanceExpense struct {
	ID          string          `json:"id"`
	PropertyID  string          `json:"property_id"`
	ExpenseDate time.Time       `json:"expense_date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"` // repair | appliance | landscaping | plumbing | electrical | roofing | hvac | other
	Description string          `json:"description"`
	Vendor      string          `json:"vendor,omitempty"`
	IsCapex     bool            `json:"is_capex"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
