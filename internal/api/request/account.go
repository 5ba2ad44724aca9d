package request

import "github.com/shopspring/decimal"

// CreateAccountRequest represents the request body for creating a manual account.
type CreateAccountRequest struct {
	Name             string              `json:"name"`
	OfficialName     string              `json:"official_name"`
	InstitutionName  string              `json:"institution_name"`
	Type             string              `json:"type"`
	Subtype          string              `json:"subtype"`
	Mask             string              `json:"mask"`
	CurrentBalance   decimal.NullDecimal `json:"current_balance"`
	AvailableBalance decimal.NullDecimal `json:"available_balance"`
	CurrencyCode     string              `json:"currency_code"`
}

// UpdateAccountRequest represents the request body for updating an account.
type UpdateAccountRequest struct {
	Name             string              `json:"name"`
	OfficialName     string              `json:"official_name"`
	InstitutionName  string              `json:"institution_name"`
	Subtype          string              `json:"subtype"`
	Mask             string              `json:"mask"`
	CurrentBalance   decimal.NullDecimal `json:"current_balance"`
	AvailableBalance decimal.NullDecimal `json:"available_balance"`
	IsHidden         bool                `json:"is_hidden"`
}

// CreateHoldingRequest represents the request body for adding a holding to an
// investment account.
type CreateHoldingRequest struct {
	TickerSymbol string              `json:"ticker_symbol"`
	Name         string              `json:"name"`
	Quantity     decimal.Decimal     `json:"quantity"`
	CostBasis    decimal.NullDecimal `json:"cost_basis"`
	CurrentValue decimal.NullDecimal `json:"current_value"`
	CurrencyCode string              `json:"currency_code"`
}

// UpdateHoldingRequest represents the request body for updating a holding.
type UpdateHoldingRequest struct {
	TickerSymbol string              `json:"ticker_symbol"`
	Name         string              `json:"name"`
	Quantity     decimal.Decimal     `json:"quantity"`
	CostBasis    decimal.NullDecimal `json:"cost_basis"`
	CurrentValue decimal.NullDecimal `json:"current_value"`
}
