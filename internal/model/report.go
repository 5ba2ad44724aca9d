package model

// Report structures mirror the JSON served by /reports/property/{id} and
// /reports/portfolio. Metric values are float64 rounded to two decimal places
// at computation time; nullable metrics (cap rate without a valuation, IRR
// without a solvable cash-flow timeline) are pointers so they serialize as
// null rather than zero.

// ExpenseBreakdown splits a period's expenses per category for the stacked
// expense chart.
type ExpenseBreakdown struct {
	LoanPayment   float64 `json:"loan_payment"`
	PropertyTax   float64 `json:"property_tax"`
	Insurance     float64 `json:"insurance"`
	HOA           float64 `json:"hoa"`
	OtherFixed    float64 `json:"other_fixed"`
	Repairs       float64 `json:"repairs"`
	ManagementFee float64 `json:"management_fee"`
}

// MonthlyMetrics is the selected month's block of a property report.
type MonthlyMetrics struct {
	RentCharged      float64          `json:"rent_charged"`
	RentCollected    float64          `json:"rent_collected"`
	Delinquency      float64          `json:"delinquency"`
	Opex             float64          `json:"opex"`
	Capex            float64          `json:"capex"`
	NOI              float64          `json:"noi"`
	DebtService      float64          `json:"debt_service"`
	CashFlow         float64          `json:"cash_flow"`
	OccupancyPct     float64          `json:"occupancy_pct"`
	RentableUnits    int              `json:"rentable_units"`
	OccupiedUnits    int              `json:"occupied_units"`
	ExpenseBreakdown ExpenseBreakdown `json:"expense_breakdown"`
}

// YTDMetrics covers January 1 through the end of the selected month.
type YTDMetrics struct {
	Months           int              `json:"months"`
	RentCharged      float64          `json:"rent_charged"`
	RentCollected    float64          `json:"rent_collected"`
	Delinquency      float64          `json:"delinquency"`
	Opex             float64          `json:"opex"`
	Capex            float64          `json:"capex"`
	NOI              float64          `json:"noi"`
	DebtService      float64          `json:"debt_service"`
	CashFlow         float64          `json:"cash_flow"`
	OccupancyPct     float64          `json:"occupancy_pct"`
	RentableUnits    int              `json:"rentable_units"`
	OccupiedUnits    int              `json:"occupied_units"`
	ExpenseBreakdown ExpenseBreakdown `json:"expense_breakdown"`
}

// CategoryTotal is one row of the quarterly expense-by-category table.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// QuarterlyMetrics covers the calendar quarter containing the selected month.
type QuarterlyMetrics struct {
	RentCharged       float64         `json:"rent_charged"`
	RentCollected     float64         `json:"rent_collected"`
	Opex              float64         `json:"opex"`
	NOI               float64         `json:"noi"`
	DebtService       float64         `json:"debt_service"`
	CashFlow          float64         `json:"cash_flow"`
	CashOnCashYTD     *float64        `json:"cash_on_cash_ytd"`
	ExpenseByCategory []CategoryTotal `json:"expense_by_category"`
	TurnoverCount     int             `json:"turnover_count"`
	AvgVacancyDays    float64         `json:"avg_vacancy_days"`
}

// AnnualMetrics covers the selected calendar year, with prior-year comparison.
type AnnualMetrics struct {
	RentCharged         float64          `json:"rent_charged"`
	RentCollected       float64          `json:"rent_collected"`
	Opex                float64          `json:"opex"`
	Capex               float64          `json:"capex"`
	NOI                 float64          `json:"noi"`
	DebtService         float64          `json:"debt_service"`
	CashFlow            float64          `json:"cash_flow"`
	CapRate             *float64         `json:"cap_rate"`
	IRR                 *float64         `json:"irr"`
	NOIPriorYear        float64          `json:"noi_prior_year"`
	NOIYoYPct           *float64         `json:"noi_yoy_pct"`
	PropertyTaxAnnual   float64          `json:"property_tax_annual"`
	InsuranceAnnual     float64          `json:"insurance_annual"`
	TotalEquityInvested float64          `json:"total_equity_invested"`
	CurrentEquity       float64          `json:"current_equity"`
	ExpenseBreakdown    ExpenseBreakdown `json:"expense_breakdown"`
}

// LifetimeMetrics is the since-acquisition block, present only when the
// report is requested with period=ltd.
type LifetimeMetrics struct {
	StartDate           string           `json:"start_date"`
	Months              int              `json:"months"`
	RentCharged         float64          `json:"rent_charged"`
	RentCollected       float64          `json:"rent_collected"`
	Delinquency         float64          `json:"delinquency"`
	Opex                float64          `json:"opex"`
	Capex               float64          `json:"capex"`
	NOI                 float64          `json:"noi"`
	DebtService         float64          `json:"debt_service"`
	CashFlow            float64          `json:"cash_flow"`
	AvgMonthlyNOI       float64          `json:"avg_monthly_noi"`
	AvgMonthlyCashFlow  float64          `json:"avg_monthly_cash_flow"`
	CapRate             *float64         `json:"cap_rate"`
	IRR                 *float64         `json:"irr"`
	CurrentEquity       float64          `json:"current_equity"`
	TotalEquityInvested float64          `json:"total_equity_invested"`
	ExpenseBreakdown    ExpenseBreakdown `json:"expense_breakdown"`
}

// PropertyReport is the full report for one property and one selected month.
type PropertyReport struct {
	PropertyID      string           `json:"property_id"`
	PropertyAddress string           `json:"property_address"`
	Year            int              `json:"year"`
	Month           string           `json:"month"`   // YYYY-MM
	Quarter         string           `json:"quarter"` // YYYY-Qn
	Monthly         MonthlyMetrics   `json:"monthly"`
	YTD             YTDMetrics       `json:"ytd"`
	Quarterly       QuarterlyMetrics `json:"quarterly"`
	Annual          AnnualMetrics    `json:"annual"`
	Lifetime        *LifetimeMetrics `json:"lifetime,omitempty"`
}

// PortfolioTotals aggregates the per-property reports.
type PortfolioTotals struct {
	Monthly MonthlyMetrics `json:"monthly"`
	YTD     YTDMetrics     `json:"ytd"`
	Annual  AnnualMetrics  `json:"annual"`
}

// PortfolioReport is the whole-household report for one selected month.
type PortfolioReport struct {
	Year           int              `json:"year"`
	Month          string           `json:"month"` // YYYY-MM
	Properties     []PropertyReport `json:"properties"`
	PortfolioTotal PortfolioTotals  `json:"portfolio_total"`
}
