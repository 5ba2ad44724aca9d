package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"homeledger/internal/model"
)

// Period arithmetic and the IRR solver behind the report service. All report
// math runs in float64; repositories hand back SQL aggregates as floats and
// the outputs are rounded per field.

// monthRange returns the first and last day of the given month.
func monthRange(year, month int) (time.Time, time.Time) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return start, end
}

// quarterRange returns the first and last day of the calendar quarter
// containing the given month.
func quarterRange(year, month int) (time.Time, time.Time) {
	qStartMonth := ((month-1)/3)*3 + 1
	start := time.Date(year, time.Month(qStartMonth), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, -1)
	return start, end
}

// yearRange returns January 1 and December 31 of the given year.
func yearRange(year int) (time.Time, time.Time) {
	return time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(year, 12, 31, 0, 0, 0, 0, time.UTC)
}

// boundByPurchase clips a period so it never reaches back before the property
// was bought. A period that ends entirely before the purchase collapses to the
// empty range (end, end).
func boundByPurchase(start, end time.Time, purchase *time.Time) (time.Time, time.Time) {
	if purchase == nil {
		return start, end
	}
	if end.Before(*purchase) {
		return end, end
	}
	if start.Before(*purchase) {
		return *purchase, end
	}
	return start, end
}

// monthsBetween counts calendar months touched by [start, end], inclusive.
func monthsBetween(start, end time.Time) int {
	return (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month()) + 1
}

// positiveMonths is monthsBetween floored at one, or zero for an inverted range.
func positiveMonths(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	months := monthsBetween(start, end)
	if months < 1 {
		return 1
	}
	return months
}

func monthLabel(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

func quarterLabel(year, month int) string {
	return fmt.Sprintf("%04d-Q%d", year, (month-1)/3+1)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func nullDecimalFloat(d decimal.NullDecimal) float64 {
	if !d.Valid {
		return 0
	}
	f, _ := d.Decimal.Float64()
	return f
}

// monthlyEquivalent normalizes recurring costs to a per-month figure.
// Quarterly costs count a third per month, annual a twelfth, and one-time
// costs are excluded. An empty category matches every cost.
func monthlyEquivalent(costs []model.PropertyCost, category string) float64 {
	var total float64
	for _, c := range costs {
		if category != "" && c.Category != category {
			continue
		}
		amount, _ := c.Amount.Float64()
		switch c.Frequency {
		case "monthly":
			total += amount
		case "quarterly":
			total += amount / 3
		case "annual":
			total += amount / 12
		}
	}
	return total
}

// cashFlow is one signed entry on the IRR timeline. Negative amounts are
// money in (acquisition equity, improvements), positive are money out
// (distributions, operating cash flow, terminal equity).
type cashFlow struct {
	date   time.Time
	amount float64
}

// irr solves for the annualized internal rate of return of the cash-flow
// timeline with Newton's method, returning the rate as a rounded percentage.
// Returns nil when the flows cannot produce a meaningful rate: fewer than two
// flows, no sign change, or no convergence.
func irr(flows []cashFlow) *float64 {
	if len(flows) < 2 {
		return nil
	}

	sorted := make([]cashFlow, len(flows))
	copy(sorted, flows)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].date.Before(sorted[j].date) })

	hasNegative, hasPositive := false, false
	for _, f := range sorted {
		if f.amount < 0 {
			hasNegative = true
		}
		if f.amount > 0 {
			hasPositive = true
		}
	}
	if !hasNegative || !hasPositive {
		return nil
	}

	t0 := sorted[0].date
	years := make([]float64, len(sorted))
	for i, f := range sorted {
		years[i] = f.date.Sub(t0).Hours() / 24 / 365.25
	}

	rate := 0.10
	for i := 0; i < 100; i++ {
		var npv, dnpv float64
		for j, f := range sorted {
			base := math.Pow(1+rate, years[j])
			npv += f.amount / base
			dnpv -= years[j] * f.amount / (base * (1 + rate))
		}
		if math.Abs(dnpv) < 1e-12 {
			break
		}
		next := rate - npv/dnpv
		if next <= -1 {
			next = -0.999
		}
		if math.Abs(next-rate) < 1e-8 {
			result := round2(next * 100)
			return &result
		}
		rate = next
	}

	return nil
}
