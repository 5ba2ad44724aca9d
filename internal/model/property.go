package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Property is a real estate holding. Purchase fields feed equity and IRR
// calculations; CurrentValue tracks the latest valuation.
type Property struct {
	ID                 string              `json:"id"`
	HouseholdID        string              `json:"household_id"`
	Address            string              `json:"address"`
	City               string              `json:"city,omitempty"`
	State              string              `json:"state,omitempty"`
	ZipCode            string              `json:"zip_code,omitempty"`
	PropertyType       string              `json:"property_type,omitempty"` // single_family | condo | multi_family | ...
	PurchasePrice      decimal.NullDecimal `json:"purchase_price"`
	PurchaseDate       *time.Time          `json:"purchase_date"`
	ClosingCosts       decimal.NullDecimal `json:"closing_costs"`
	CurrentValue       decimal.NullDecimal `json:"current_value"`
	LastValuationDate  *time.Time          `json:"last_valuation_date"`
	IsPrimaryResidence bool                `json:"is_primary_residence"`
	IsPropertyManaged  bool                `json:"is_property_managed"`
	ManagementFeePct   decimal.NullDecimal `json:"management_fee_pct"`
	Notes              string              `json:"notes,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
}

// PropertyValuation is one point on a property's value history. Inserting a
// valuation also bumps the parent property's CurrentValue and
// LastValuationDate.
type PropertyValuation struct {
	ID            string          `json:"id"`
	PropertyID    string          `json:"property_id"`
	Value         decimal.Decimal `json:"value"`
	Source        string          `json:"source"` // manual | appraisal | zillow | redfin
	ValuationDate time.Time       `json:"valuation_date"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CapitalEvent is a signed cash flow on a property's capital timeline.
// Negative = cash out (investment), positive = cash in (proceeds).
type CapitalEvent struct {
	ID          string          `json:"id"`
	PropertyID  string          `json:"property_id"`
	EventDate   time.Time       `json:"event_date"`
	EventType   string          `json:"event_type"` // acquisition | additional_investment | refi_proceeds | sale | other
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}
