package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a bank, credit, brokerage, or loan account. Accounts arrive from
// an aggregation provider or are created manually; IsManual distinguishes the
// two. Balances are decimals and serialize as strings to avoid float drift.
type Account struct {
	ID               string              `json:"id"`
	HouseholdID      string              `json:"household_id"`
	Name             string              `json:"name"`
	OfficialName     string              `json:"official_name,omitempty"`
	InstitutionName  string              `json:"institution_name,omitempty"`
	OwnerUserID      string              `json:"owner_user_id,omitempty"`
	Type             string              `json:"type"` // depository | credit | loan | investment
	Subtype          string              `json:"subtype,omitempty"`
	Mask             string              `json:"mask,omitempty"`
	CurrentBalance   decimal.NullDecimal `json:"current_balance"`
	AvailableBalance decimal.NullDecimal `json:"available_balance"`
	CurrencyCode     string              `json:"currency_code"`
	IsHidden         bool                `json:"is_hidden"`
	IsManual         bool                `json:"is_manual"`
	CreatedAt        time.Time           `json:"created_at"`
}

// Holding is a position within an investment account. Quantity carries up to
// eight decimal places (fractional shares); CurrentValue is price x quantity
// as of AsOfDate.
type Holding struct {
	ID           string              `json:"id"`
	AccountID    string              `json:"account_id"`
	HouseholdID  string              `json:"household_id"`
	TickerSymbol string              `json:"ticker_symbol,omitempty"`
	Name         string              `json:"name,omitempty"`
	Quantity     decimal.Decimal     `json:"quantity"`
	CostBasis    decimal.NullDecimal `json:"cost_basis"`
	CurrentValue decimal.NullDecimal `json:"current_value"`
	CurrencyCode string              `json:"currency_code"`
	AsOfDate     *time.Time          `json:"as_of_date"`
	CreatedAt    time.Time           `json:"created_at"`
}
