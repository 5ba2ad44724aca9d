package request

import "github.com/shopspring/decimal"

// CreatePropertyRequest represents the request body for creating a property.
// Dates are YYYY-MM-DD strings.
type CreatePropertyRequest struct {
	Address            string              `json:"address"`
	City               string              `json:"city"`
	State              string              `json:"state"`
	ZipCode            string              `json:"zip_code"`
	PropertyType       string              `json:"property_type"`
	PurchasePrice      decimal.NullDecimal `json:"purchase_price"`
	PurchaseDate       string              `json:"purchase_date"`
	ClosingCosts       decimal.NullDecimal `json:"closing_costs"`
	CurrentValue       decimal.NullDecimal `json:"current_value"`
	IsPrimaryResidence bool                `json:"is_primary_residence"`
	IsPropertyManaged  bool                `json:"is_property_managed"`
	ManagementFeePct   decimal.NullDecimal `json:"management_fee_pct"`
	Notes              string              `json:"notes"`
}

// UpdatePropertyRequest mirrors CreatePropertyRequest for full updates.
type UpdatePropertyRequest = CreatePropertyRequest

// CreateValuationRequest represents the request body for recording a valuation.
type CreateValuationRequest struct {
	Value         decimal.Decimal `json:"value"`
	Source        string          `json:"source"`
	ValuationDate string          `json:"valuation_date"`
	Notes         string          `json:"notes"`
}

// CreateCapitalEventRequest represents the request body for recording a
// capital event. Amount is signed: negative for cash in, positive for cash out.
type CreateCapitalEventRequest struct {
	EventDate   string          `json:"event_date"`
	EventType   string          `json:"event_type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Notes       string          `json:"notes"`
}
