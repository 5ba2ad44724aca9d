package request

import "github.com/shopspring/decimal"

// CreateLoanRequest represents the request body for attaching a loan to a
// property. Dates are YYYY-MM-DD strings; empty means unset.
type CreateLoanRequest struct {
	AccountID       string              `json:"account_id"`
	LenderName      string              `json:"lender_name"`
	LoanType        string              `json:"loan_type"`
	OriginalAmount  decimal.NullDecimal `json:"original_amount"`
	CurrentBalance  decimal.NullDecimal `json:"current_balance"`
	InterestRate    decimal.NullDecimal `json:"interest_rate"`
	MonthlyPayment  decimal.NullDecimal `json:"monthly_payment"`
	PaymentDueDay   *int                `json:"payment_due_day"`
	EscrowIncluded  bool                `json:"escrow_included"`
	EscrowAmount    decimal.NullDecimal `json:"escrow_amount"`
	OriginationDate string              `json:"origination_date"`
	MaturityDate    string              `json:"maturity_date"`
	TermMonths      *int                `json:"term_months"`
	Notes           string              `json:"notes"`
}

// UpdateLoanRequest mirrors CreateLoanRequest for full updates.
type UpdateLoanRequest = CreateLoanRequest

// CreatePropertyCostRequest represents the request body for a recurring cost.
type CreatePropertyCostRequest struct {
	Category  string          `json:"category"`
	Label     string          `json:"label"`
	Amount    decimal.Decimal `json:"amount"`
	Frequency string          `json:"frequency"`
	IsActive  *bool           `json:"is_active"`
	Notes     string          `json:"notes"`
}

// UpdatePropertyCostRequest mirrors CreatePropertyCostRequest for full updates.
type UpdatePropertyCostRequest = CreatePropertyCostRequest

// CreateExpenseRequest represents the request body for a maintenance expense.
type CreateExpenseRequest struct {
	ExpenseDate string          `json:"expense_date"`
	Amount      decimal.Decimal `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Vendor      string          `json:"vendor"`
	IsCapex     bool            `json:"is_capex"`
	Notes       string          `json:"notes"`
}

// UpdateExpenseRequest mirrors CreateExpenseRequest for full updates.
type UpdateExpenseRequest = CreateExpenseRequest
