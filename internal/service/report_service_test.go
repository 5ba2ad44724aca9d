package service_test

import (
	"errors"
	"testing"
	"time"

	"homeledger/internal/apperrors"
	"homeledger/internal/testutil"
)

// reportClock pins "today" to 2025-07-15 so YTD months, lifetime months, and
// IRR terminal flows are deterministic.
func reportClock() time.Time {
	return time.Date(2025, 7, 15, 12, 0, 0, 0, time.UTC)
}

// TestReportService_BuildPropertyReport tests the single-property report.
//
// WHY: The report is the product's core output. These tests pin the NOI,
// cash flow, occupancy, and equity math against hand-computed figures for a
// fully populated duplex so regressions in any aggregate are caught.
func TestReportService_BuildPropertyReport(t *testing.T) {
	t.Run("computes monthly NOI and cash flow", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db).WithClock(reportClock)

		household := testutil.NewHousehold().Build(t, db)
		property := testutil.NewProperty(household.ID).
			WithPurchase("2022-06-15", 300000, 9000).
			WithCurrentValue(380000).
			Build(t, db)

		unitA := testutil.NewUnit(property.ID).WithLabel("Unit A").Build(t, db)
		unitB := testutil.NewUnit(property.ID).WithLabel("Unit B").Build(t, db)
		testutil.NewUnit(property.ID).WithLabel("Garage").NotRentable().Build(t, db)

		tenant := testutil.NewTenant(household.ID).Build(t, db)
		leaseA := testutil.NewLease(unitA.ID, tenant.ID).WithStart("2024-01-01").WithRent(1500).Build(t, db)
		leaseB := testutil.NewLease(unitB.ID, tenant.ID).WithStart("2024-03-01").WithRent(1400).Build(t, db)

		testutil.CreateRentCharge(t, db, leaseA.ID, "2025-06-01", 1500)
		testutil.CreateRentCharge(t, db, leaseB.ID, "2025-06-01", 1400)
		testutil.CreatePayment(t, db, leaseA.ID, "2025-06-03", 1500)
		testutil.CreatePayment(t, db, leaseB.ID, "2025-06-05", 1400)

		testutil.CreateLoan(t, db, property.ID, 240000, 220000, 1600)
		testutil.CreatePropertyCost(t, db, property.ID, "property_tax", "monthly", 400)
		testutil.CreatePropertyCost(t, db, property.ID, "insurance", "annual", 1800)
		testutil.CreatePropertyCost(t, db, property.ID, "hoa", "monthly", 50)

		testutil.CreateExpense(t, db, property.ID, "2025-06-10", "repair", 200, false)
		testutil.CreateExpense(t, db, property.ID, "2025-06-20", "roofing", 5000, true)

		report, err := svc.BuildPropertyReport(household.ID, property.ID, 2025, 6, false)
		if err != nil {
			t.Fatalf("BuildPropertyReport failed: %v", err)
		}

		// Monthly fixed costs: 400 tax + 150 insurance (1800/12) + 50 HOA = 600.
		if report.Monthly.RentCharged != 2900 {
			t.Errorf("Monthly.RentCharged = %v, want 2900", report.Monthly.RentCharged)
		}
		if report.Monthly.RentCollected != 2900 {
			t.Errorf("Monthly.RentCollected = %v, want 2900", report.Monthly.RentCollected)
		}
		if report.Monthly.Opex != 800 {
			t.Errorf("Monthly.Opex = %v, want 800 (200 repairs + 600 fixed)", report.Monthly.Opex)
		}
		if report.Monthly.Capex != 5000 {
			t.Errorf("Monthly.Capex = %v, want 5000", report.Monthly.Capex)
		}
		if report.Monthly.NOI != 2100 {
			t.Errorf("Monthly.NOI = %v, want 2100", report.Monthly.NOI)
		}
		if report.Monthly.CashFlow != 500 {
			t.Errorf("Monthly.CashFlow = %v, want 500 (2100 NOI - 1600 debt)", report.Monthly.CashFlow)
		}
		if report.Monthly.OccupancyPct != 100 {
			t.Errorf("Monthly.OccupancyPct = %v, want 100", report.Monthly.OccupancyPct)
		}
		if report.Monthly.RentableUnits != 2 {
			t.Errorf("Monthly.RentableUnits = %v, want 2 (garage excluded)", report.Monthly.RentableUnits)
		}

		// YTD: 6 months of fixed costs and debt service.
		if report.YTD.Months != 6 {
			t.Errorf("YTD.Months = %v, want 6", report.YTD.Months)
		}
		if report.YTD.Opex != 3800 {
			t.Errorf("YTD.Opex = %v, want 3800 (200 repairs + 3600 fixed)", report.YTD.Opex)
		}
		if report.YTD.CashFlow != -10500 {
			t.Errorf("YTD.CashFlow = %v, want -10500", report.YTD.CashFlow)
		}

		// Cash-on-cash: -10500 YTD cash flow over 69000 equity invested.
		if report.Quarterly.CashOnCashYTD == nil {
			t.Fatal("Quarterly.CashOnCashYTD is nil, want value")
		}
		if *report.Quarterly.CashOnCashYTD != -15.22 {
			t.Errorf("Quarterly.CashOnCashYTD = %v, want -15.22", *report.Quarterly.CashOnCashYTD)
		}

		// Annual: 12 months of fixed costs swamp one month of rent.
		if report.Annual.NOI != -4500 {
			t.Errorf("Annual.NOI = %v, want -4500", report.Annual.NOI)
		}
		if report.Annual.CapRate == nil {
			t.Fatal("Annual.CapRate is nil, want value")
		}
		if *report.Annual.CapRate != -1.18 {
			t.Errorf("Annual.CapRate = %v, want -1.18", *report.Annual.CapRate)
		}
		if report.Annual.TotalEquityInvested != 69000 {
			t.Errorf("Annual.TotalEquityInvested = %v, want 69000", report.Annual.TotalEquityInvested)
		}
		if report.Annual.CurrentEquity != 160000 {
			t.Errorf("Annual.CurrentEquity = %v, want 160000", report.Annual.CurrentEquity)
		}
		if report.Annual.IRR == nil {
			t.Error("Annual.IRR is nil, want solved rate")
		}

		// Expense breakdown: quarterly grouping includes capex spend.
		if len(report.Quarterly.ExpenseByCategory) != 2 {
			t.Fatalf("ExpenseByCategory has %d rows, want 2", len(report.Quarterly.ExpenseByCategory))
		}
		if report.Quarterly.ExpenseByCategory[0].Category != "roofing" {
			t.Errorf("largest expense category = %s, want roofing", report.Quarterly.ExpenseByCategory[0].Category)
		}

		if report.Lifetime != nil {
			t.Error("Lifetime block present without period=ltd")
		}
	})

	t.Run("falls back to lease rent when no charges recorded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db).WithClock(reportClock)

		household := testutil.NewHousehold().Build(t, db)
		property := testutil.NewProperty(household.ID).Build(t, db)
		unit := testutil.NewUnit(property.ID).Build(t, db)
		tenant := testutil.NewTenant(household.ID).Build(t, db)
		testutil.NewLease(unit.ID, tenant.ID).WithStart("2025-01-01").WithRent(2000).Build(t, db)

		report, err := svc.BuildPropertyReport(household.ID, property.ID, 2025, 6, false)
		if err != nil {
			t.Fatalf("BuildPropertyReport failed: %v", err)
		}

		if report.Monthly.RentCharged != 2000 {
			t.Errorf("Monthly.RentCharged = %v, want 2000 from lease fallback", report.Monthly.RentCharged)
		}
		if report.YTD.RentCharged != 12000 {
			t.Errorf("YTD.RentCharged = %v, want 12000 (2000 x 6 months)", report.YTD.RentCharged)
		}
	})

	t.Run("counts turnover and vacancy days", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db).WithClock(reportClock)

		household := testutil.NewHousehold().Build(t, db)
		property := testutil.NewProperty(household.ID).Build(t, db)
		unit := testutil.NewUnit(property.ID).Build(t, db)
		tenant := testutil.NewTenant(household.ID).Build(t, db)

		// Old tenant moved out April 10, unit re-leased May 1: 21 vacant days.
		testutil.NewLease(unit.ID, tenant.ID).WithStart("2024-05-01").Ended("2025-04-10").Build(t, db)
		testutil.NewLease(unit.ID, tenant.ID).WithStart("2025-05-01").Build(t, db)

		report, err := svc.BuildPropertyReport(household.ID, property.ID, 2025, 6, false)
		if err != nil {
			t.Fatalf("BuildPropertyReport failed: %v", err)
		}

		if report.Quarterly.TurnoverCount != 1 {
			t.Errorf("TurnoverCount = %v, want 1", report.Quarterly.TurnoverCount)
		}
		if report.Quarterly.AvgVacancyDays != 21 {
			t.Errorf("AvgVacancyDays = %v, want 21", report.Quarterly.AvgVacancyDays)
		}
	})

	t.Run("includes lifetime block when requested", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db).WithClock(reportClock)

		household := testutil.NewHousehold().Build(t, db)
		property := testutil.NewProperty(household.ID).
			WithPurchase("2022-06-15", 300000, 9000).
			Build(t, db)

		report, err := svc.BuildPropertyReport(household.ID, property.ID, 2025, 6, true)
		if err != nil {
			t.Fatalf("BuildPropertyReport failed: %v", err)
		}

		if report.Lifetime == nil {
			t.Fatal("Lifetime block missing")
		}
		if report.Lifetime.StartDate != "2022-06-15" {
			t.Errorf("Lifetime.StartDate = %s, want 2022-06-15", report.Lifetime.StartDate)
		}
		// June 2022 through July 2025 inclusive.
		if report.Lifetime.Months != 38 {
			t.Errorf("Lifetime.Months = %v, want 38", report.Lifetime.Months)
		}
	})

	t.Run("clips periods before the purchase date", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db).WithClock(reportClock)

		household := testutil.NewHousehold().Build(t, db)
		// Bought mid-March: YTD runs March through June, not January.
		property := testutil.NewProperty(household.ID).
			WithPurchase("2025-03-15", 200000, 5000).
			Build(t, db)
		testutil.CreatePropertyCost(t, db, property.ID, "property_tax", "monthly", 100)

		report, err := svc.BuildPropertyReport(household.ID, property.ID, 2025, 6, false)
		if err != nil {
			t.Fatalf("BuildPropertyReport failed: %v", err)
		}

		if report.YTD.Months != 4 {
			t.Errorf("YTD.Months = %v, want 4 (March through June)", report.YTD.Months)
		}
		if report.YTD.Opex != 400 {
			t.Errorf("YTD.Opex = %v, want 400 (100 x 4 bounded months)", report.YTD.Opex)
		}
	})

	t.Run("returns not found for property in another household", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db).WithClock(reportClock)

		mine := testutil.NewHousehold().Build(t, db)
		theirs := testutil.NewHousehold().Build(t, db)
		property := testutil.NewProperty(theirs.ID).Build(t, db)

		_, err := svc.BuildPropertyReport(mine.ID, property.ID, 2025, 6, false)
		if !errors.Is(err, apperrors.ErrPropertyNotFound) {
			t.Errorf("expected ErrPropertyNotFound, got %v", err)
		}
	})
}

// TestReportService_BuildPortfolioReport tests the whole-household rollup.
//
// WHY: The portfolio view sums per-property reports; a property dropped or
// double counted would silently corrupt the household's top-line numbers.
func TestReportService_BuildPortfolioReport(t *testing.T) {
	t.Run("sums per-property metrics", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db).WithClock(reportClock)

		household := testutil.NewHousehold().Build(t, db)
		tenant := testutil.NewTenant(household.ID).Build(t, db)

		for _, rent := range []float64{1500, 1100} {
			property := testutil.NewProperty(household.ID).Build(t, db)
			unit := testutil.NewUnit(property.ID).Build(t, db)
			lease := testutil.NewLease(unit.ID, tenant.ID).WithStart("2025-01-01").WithRent(rent).Build(t, db)
			testutil.CreateRentCharge(t, db, lease.ID, "2025-06-01", rent)
			testutil.CreatePayment(t, db, lease.ID, "2025-06-02", rent)
		}

		portfolio, err := svc.BuildPortfolioReport(household.ID, 2025, 6)
		if err != nil {
			t.Fatalf("BuildPortfolioReport failed: %v", err)
		}

		if len(portfolio.Properties) != 2 {
			t.Fatalf("got %d properties, want 2", len(portfolio.Properties))
		}
		if portfolio.PortfolioTotal.Monthly.RentCollected != 2600 {
			t.Errorf("total Monthly.RentCollected = %v, want 2600", portfolio.PortfolioTotal.Monthly.RentCollected)
		}
		if portfolio.PortfolioTotal.YTD.Months != 6 {
			t.Errorf("total YTD.Months = %v, want 6", portfolio.PortfolioTotal.YTD.Months)
		}
		if portfolio.Month != "2025-06" {
			t.Errorf("Month = %s, want 2025-06", portfolio.Month)
		}
	})

	t.Run("returns empty totals for household with no properties", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestReportService(t, db).WithClock(reportClock)

		household := testutil.NewHousehold().Build(t, db)

		portfolio, err := svc.BuildPortfolioReport(household.ID, 2025, 6)
		if err != nil {
			t.Fatalf("BuildPortfolioReport failed: %v", err)
		}
		if len(portfolio.Properties) != 0 {
			t.Errorf("got %d properties, want 0", len(portfolio.Properties))
		}
		if portfolio.PortfolioTotal.Monthly.NOI != 0 {
			t.Errorf("total Monthly.NOI = %v, want 0", portfolio.PortfolioTotal.Monthly.NOI)
		}
	})
}
