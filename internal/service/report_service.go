package service

import (
	"log"
	"math"
	"time"

	"homeledger/internal/apperrors"
	"homeledger/internal/model"
	"homeledger/internal/repository"
)

// ReportService computes the property and portfolio financial reports:
// rent roll, NOI, cash flow, cap rate, cash-on-cash, IRR, and expense
// breakdowns across monthly, quarterly, YTD, annual, and lifetime periods.
type ReportService struct {
	propertyRepo     *repository.PropertyRepository
	reportRepo       *repository.ReportRepository
	loanRepo         *repository.LoanRepository
	costRepo         *repository.PropertyCostRepository
	expenseRepo      *repository.ExpenseRepository
	capitalEventRepo *repository.CapitalEventRepository

	now func() time.Time
}

// NewReportService creates a new ReportService with the provided repositories.
func NewReportService(
	propertyRepo *repository.PropertyRepository,
	reportRepo *repository.ReportRepository,
	loanRepo *repository.LoanRepository,
	costRepo *repository.PropertyCostRepository,
	expenseRepo *repository.ExpenseRepository,
	capitalEventRepo *repository.CapitalEventRepository,
) *ReportService {
	return &ReportService{
		propertyRepo:     propertyRepo,
		reportRepo:       reportRepo,
		loanRepo:         loanRepo,
		costRepo:         costRepo,
		expenseRepo:      expenseRepo,
		capitalEventRepo: capitalEventRepo,
		now:              time.Now,
	}
}

// WithClock overrides the time source so tests can pin "today".
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// BuildPropertyReport computes the full report for one property and one
// selected month. period=ltd adds the lifetime block.
func (s *ReportService) BuildPropertyReport(householdID, propertyID string, year, month int, includeLifetime bool) (model.PropertyReport, error) {
	prop, err := s.propertyRepo.GetPropertyOnID(propertyID)
	if err != nil {
		return model.PropertyReport{}, err
	}
	if prop.HouseholdID != householdID {
		return model.PropertyReport{}, apperrors.ErrPropertyNotFound
	}
	return s.buildMetrics(prop, year, month, includeLifetime)
}

// BuildPortfolioReport computes per-property reports for every property in
// the household plus aggregate totals. Properties whose report fails are
// skipped with a warning so one bad property cannot take down the whole view.
func (s *ReportService) BuildPortfolioReport(householdID string, year, month int) (model.PortfolioReport, error) {
	properties, err := s.propertyRepo.GetProperties(householdID)
	if err != nil {
		return model.PortfolioReport{}, err
	}

	reports := []model.PropertyReport{}
	for _, prop := range properties {
		report, err := s.buildMetrics(prop, year, month, false)
		if err != nil {
			log.Printf("WARN: portfolio report skipping property %s: %v", prop.ID, err)
			continue
		}
		reports = append(reports, report)
	}

	return model.PortfolioReport{
		Year:           year,
		Month:          monthLabel(year, month),
		Properties:     reports,
		PortfolioTotal: aggregateTotals(reports, month),
	}, nil
}

func (s *ReportService) buildMetrics(prop model.Property, year, month int, includeLifetime bool) (model.PropertyReport, error) {
	today := s.now().UTC()

	mStart, mEnd := monthRange(year, month)
	qStart, qEnd := quarterRange(year, month)
	yStart, yEnd := yearRange(year)
	pyStart, pyEnd := yearRange(year - 1)

	mStart, mEnd = boundByPurchase(mStart, mEnd, prop.PurchaseDate)
	qStart, qEnd = boundByPurchase(qStart, qEnd, prop.PurchaseDate)
	yStart, yEnd = boundByPurchase(yStart, yEnd, prop.PurchaseDate)
	pyStart, pyEnd = boundByPurchase(pyStart, pyEnd, prop.PurchaseDate)

	rentableUnits, err := s.reportRepo.CountRentableUnits(prop.ID)
	if err != nil {
		return model.PropertyReport{}, err
	}
	occupied, err := s.reportRepo.CountActiveLeases(prop.ID, mEnd)
	if err != nil {
		return model.PropertyReport{}, err
	}

	// Scheduled rent roll: formal charges when present, else active-lease
	// monthly rent times months in period so the metric is never empty.
	rentRoll := func(start, end time.Time) (float64, error) {
		charged, err := s.reportRepo.SumRentCharged(prop.ID, start, end)
		if err != nil {
			return 0, err
		}
		if charged > 0 {
			return charged, nil
		}
		monthly, err := s.reportRepo.SumActiveMonthlyRent(prop.ID, start, end)
		if err != nil {
			return 0, err
		}
		return monthly * float64(monthsBetween(start, end)), nil
	}

	// Maintenance totals split into operating (deductible) and capex.
	maintenance := func(start, end time.Time) (opex, capex float64, err error) {
		expenses, err := s.expenseRepo.GetExpensesBetween(prop.ID, start, end)
		if err != nil {
			return 0, 0, err
		}
		for _, e := range expenses {
			amount, _ := e.Amount.Float64()
			if e.IsCapex {
				capex += amount
			} else {
				opex += amount
			}
		}
		return opex, capex, nil
	}

	activeCosts, err := s.costRepo.GetActiveCostsOnPropertyID(prop.ID)
	if err != nil {
		return model.PropertyReport{}, err
	}
	monthlyFixed := monthlyEquivalent(activeCosts, "")
	monthlyTax := monthlyEquivalent(activeCosts, "property_tax")
	monthlyInsurance := monthlyEquivalent(activeCosts, "insurance")
	monthlyHOA := monthlyEquivalent(activeCosts, "hoa")
	monthlyOtherFixed := monthlyFixed - monthlyTax - monthlyInsurance - monthlyHOA

	loans, err := s.loanRepo.GetLoansOnPropertyID(prop.ID)
	if err != nil {
		return model.PropertyReport{}, err
	}
	var monthlyDebt, originalLoans, loanBalance float64
	for _, l := range loans {
		monthlyDebt += nullDecimalFloat(l.MonthlyPayment)
		originalLoans += nullDecimalFloat(l.OriginalAmount)
		loanBalance += nullDecimalFloat(l.CurrentBalance)
	}

	// Management fee runs off gross rent billed, before the manager's cut.
	expenseBd := func(months int, repairs, charged float64) model.ExpenseBreakdown {
		var mgmtFee float64
		feePct := nullDecimalFloat(prop.ManagementFeePct)
		if prop.IsPropertyManaged && feePct != 0 {
			mgmtFee = charged * feePct / 100
		}
		return model.ExpenseBreakdown{
			LoanPayment:   round2(monthlyDebt * float64(months)),
			PropertyTax:   round2(monthlyTax * float64(months)),
			Insurance:     round2(monthlyInsurance * float64(months)),
			HOA:           round2(monthlyHOA * float64(months)),
			OtherFixed:    round2(monthlyOtherFixed * float64(months)),
			Repairs:       round2(repairs),
			ManagementFee: round2(mgmtFee),
		}
	}

	// Monthly block.
	mCharged, err := rentRoll(mStart, mEnd)
	if err != nil {
		return model.PropertyReport{}, err
	}
	mCollected, err := s.reportRepo.SumRentCollected(prop.ID, mStart, mEnd)
	if err != nil {
		return model.PropertyReport{}, err
	}
	mOpexMaint, mCapex, err := maintenance(mStart, mEnd)
	if err != nil {
		return model.PropertyReport{}, err
	}
	mOpex := mOpexMaint + monthlyFixed
	mNOI := mCollected - mOpex
	var occupancyPct float64
	if rentableUnits > 0 {
		occupancyPct = float64(occupied) / float64(rentableUnits) * 100
	}

	// Quarterly block.
	qCharged, err := rentRoll(qStart, qEnd)
	if err != nil {
		return model.PropertyReport{}, err
	}
	qCollected, err := s.reportRepo.SumRentCollected(prop.ID, qStart, qEnd)
	if err != nil {
		return model.PropertyReport{}, err
	}
	qOpexMaint, _, err := maintenance(qStart, qEnd)
	if err != nil {
		return model.PropertyReport{}, err
	}
	qMonths := monthsBetween(qStart, qEnd)
	qOpex := qOpexMaint + monthlyFixed*float64(qMonths)
	qDebt := monthlyDebt * float64(qMonths)
	qNOI := qCollected - qOpex

	expenseByCategory, err := s.reportRepo.ExpenseTotalsByCategory(prop.ID, qStart, qEnd)
	if err != nil {
		return model.PropertyReport{}, err
	}

	turnover, avgVacancy, err := s.turnoverStats(prop.ID, qStart, qEnd)
	if err != nil {
		return model.PropertyReport{}, err
	}

	// YTD block: January 1 through the end of the selected month.
	ytdStart, ytdEnd := boundByPurchase(time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC), mEnd, prop.PurchaseDate)
	ytdMonths := positiveMonths(ytdStart, ytdEnd)
	ytdCharged, err := rentRoll(ytdStart, ytdEnd)
	if err != nil {
		return model.PropertyReport{}, err
	}
	ytdCollected, err := s.reportRepo.SumRentCollected(prop.ID, ytdStart, ytdEnd)
	if err != nil {
		return model.PropertyReport{}, err
	}
	ytdOpexMaint, ytdCapex, err := maintenance(ytdStart, ytdEnd)
	if err != nil {
		return model.PropertyReport{}, err
	}
	ytdOpex := ytdOpexMaint + monthlyFixed*float64(ytdMonths)
	ytdDebt := monthlyDebt * float64(ytdMonths)
	ytdNOI := ytdCollected - ytdOpex
	ytdCashFlow := ytdNOI - ytdDebt

	purchasePrice := nullDecimalFloat(prop.PurchasePrice)
	closingCosts := nullDecimalFloat(prop.ClosingCosts)
	equityInvested := purchasePrice + closingCosts - originalLoans

	var cashOnCash *float64
	if equityInvested > 0 {
		v := round2(ytdCashFlow / equityInvested * 100)
		cashOnCash = &v
	}

	// Annual block.
	yCharged, err := rentRoll(yStart, yEnd)
	if err != nil {
		return model.PropertyReport{}, err
	}
	yCollected, err := s.reportRepo.SumRentCollected(prop.ID, yStart, yEnd)
	if err != nil {
		return model.PropertyReport{}, err
	}
	yOpexMaint, yCapex, err := maintenance(yStart, yEnd)
	if err != nil {
		return model.PropertyReport{}, err
	}
	yMonths := positiveMonths(yStart, yEnd)
	yOpex := yOpexMaint + monthlyFixed*float64(yMonths)
	yDebt := monthlyDebt * float64(yMonths)
	yNOI := yCollected - yOpex
	yCashFlow := yNOI - yDebt

	// Prior year NOI for the YoY comparison.
	pyCollected, err := s.reportRepo.SumRentCollected(prop.ID, pyStart, pyEnd)
	if err != nil {
		return model.PropertyReport{}, err
	}
	pyOpexMaint, _, err := maintenance(pyStart, pyEnd)
	if err != nil {
		return model.PropertyReport{}, err
	}
	pyMonths := positiveMonths(pyStart, pyEnd)
	pyNOI := pyCollected - (pyOpexMaint + monthlyFixed*float64(pyMonths))

	var noiYoY *float64
	if pyNOI != 0 {
		v := round1((yNOI - pyNOI) / math.Abs(pyNOI) * 100)
		noiYoY = &v
	}

	currentValue := nullDecimalFloat(prop.CurrentValue)
	var capRate *float64
	if currentValue > 0 {
		v := round2(yNOI / currentValue * 100)
		capRate = &v
	}

	currentEquity := currentValue - loanBalance

	irrValue, acquisitionDate, err := s.computeIRR(prop, year, equityInvested, currentEquity, monthlyFixed, monthlyDebt, today)
	if err != nil {
		return model.PropertyReport{}, err
	}

	report := model.PropertyReport{
		PropertyID:      prop.ID,
		PropertyAddress: prop.Address,
		Year:            year,
		Month:           monthLabel(year, month),
		Quarter:         quarterLabel(year, month),
		Monthly: model.MonthlyMetrics{
			RentCharged:      round2(mCharged),
			RentCollected:    round2(mCollected),
			Delinquency:      round2(mCharged - mCollected),
			Opex:             round2(mOpex),
			Capex:            round2(mCapex),
			NOI:              round2(mNOI),
			DebtService:      round2(monthlyDebt),
			CashFlow:         round2(mNOI - monthlyDebt),
			OccupancyPct:     round1(occupancyPct),
			RentableUnits:    rentableUnits,
			OccupiedUnits:    occupied,
			ExpenseBreakdown: expenseBd(1, mOpexMaint, mCharged),
		},
		YTD: model.YTDMetrics{
			Months:           ytdMonths,
			RentCharged:      round2(ytdCharged),
			RentCollected:    round2(ytdCollected),
			Delinquency:      round2(ytdCharged - ytdCollected),
			Opex:             round2(ytdOpex),
			Capex:            round2(ytdCapex),
			NOI:              round2(ytdNOI),
			DebtService:      round2(ytdDebt),
			CashFlow:         round2(ytdCashFlow),
			OccupancyPct:     round1(occupancyPct),
			RentableUnits:    rentableUnits,
			OccupiedUnits:    occupied,
			ExpenseBreakdown: expenseBd(ytdMonths, ytdOpexMaint, ytdCharged),
		},
		Quarterly: model.QuarterlyMetrics{
			RentCharged:       round2(qCharged),
			RentCollected:     round2(qCollected),
			Opex:              round2(qOpex),
			NOI:               round2(qNOI),
			DebtService:       round2(qDebt),
			CashFlow:          round2(qNOI - qDebt),
			CashOnCashYTD:     cashOnCash,
			ExpenseByCategory: expenseByCategory,
			TurnoverCount:     turnover,
			AvgVacancyDays:    round1(avgVacancy),
		},
		Annual: model.AnnualMetrics{
			RentCharged:         round2(yCharged),
			RentCollected:       round2(yCollected),
			Opex:                round2(yOpex),
			Capex:               round2(yCapex),
			NOI:                 round2(yNOI),
			DebtService:         round2(yDebt),
			CashFlow:            round2(yCashFlow),
			CapRate:             capRate,
			IRR:                 irrValue,
			NOIPriorYear:        round2(pyNOI),
			NOIYoYPct:           noiYoY,
			PropertyTaxAnnual:   round2(monthlyTax * 12),
			InsuranceAnnual:     round2(monthlyInsurance * 12),
			TotalEquityInvested: round2(equityInvested),
			CurrentEquity:       round2(currentEquity),
			ExpenseBreakdown:    expenseBd(yMonths, yOpexMaint, yCharged),
		},
	}

	if includeLifetime {
		lifetime, err := s.buildLifetime(prop, year, acquisitionDate, monthlyFixed, monthlyDebt,
			capRate, irrValue, currentEquity, equityInvested, expenseBd, rentRoll, maintenance, today)
		if err != nil {
			return model.PropertyReport{}, err
		}
		report.Lifetime = lifetime
	}

	return report, nil
}

// turnoverStats counts leases ended in the period and averages the vacancy gap
// between each move-out and the next lease on the same unit.
func (s *ReportService) turnoverStats(propertyID string, start, end time.Time) (int, float64, error) {
	ended, err := s.reportRepo.EndedLeasesBetween(propertyID, start, end)
	if err != nil {
		return 0, 0, err
	}

	var gaps []float64
	for _, lease := range ended {
		if lease.MoveOutDate == nil {
			continue
		}
		next, err := s.reportRepo.NextLeaseStartAfter(lease.UnitID, *lease.MoveOutDate)
		if err != nil {
			return 0, 0, err
		}
		if next != nil {
			gaps = append(gaps, next.Sub(*lease.MoveOutDate).Hours()/24)
		}
	}

	var avg float64
	if len(gaps) > 0 {
		var total float64
		for _, g := range gaps {
			total += g
		}
		avg = total / float64(len(gaps))
	}

	return len(ended), avg, nil
}

// computeIRR assembles the property's signed cash-flow timeline and solves it:
// acquisition equity out, capital events, annual operating cash flows, and the
// terminal current equity. Also returns the resolved acquisition date, reused
// as the lifetime start.
func (s *ReportService) computeIRR(prop model.Property, year int, equityInvested, currentEquity, monthlyFixed, monthlyDebt float64, today time.Time) (*float64, *time.Time, error) {
	events, err := s.capitalEventRepo.GetCapitalEventsOnPropertyID(prop.ID)
	if err != nil {
		return nil, nil, err
	}

	acquisitionDate := prop.PurchaseDate
	if acquisitionDate == nil {
		acquisitionDate, err = s.reportRepo.EarliestPaymentDate(prop.ID)
		if err != nil {
			return nil, nil, err
		}
	}

	if len(events) == 0 && (equityInvested == 0 || acquisitionDate == nil) {
		return nil, acquisitionDate, nil
	}

	var flows []cashFlow

	hasAcquisition := false
	for _, e := range events {
		if e.EventType == "acquisition" {
			hasAcquisition = true
			break
		}
	}
	if !hasAcquisition && acquisitionDate != nil && equityInvested > 0 {
		flows = append(flows, cashFlow{date: *acquisitionDate, amount: -equityInvested})
	}

	for _, e := range events {
		amount, _ := e.Amount.Float64()
		flows = append(flows, cashFlow{date: e.EventDate, amount: amount})
	}

	if len(flows) > 0 {
		earliest := flows[0].date
		for yr := earliest.Year(); yr <= year; yr++ {
			yrStart, yrEnd := yearRange(yr)
			yrStart, yrEnd = boundByPurchase(yrStart, yrEnd, prop.PurchaseDate)
			cap := yrEnd
			flowDate := yrEnd
			if yr == year {
				cap = today
				flowDate = today
			}

			collected, err := s.reportRepo.SumRentCollected(prop.ID, yrStart, cap)
			if err != nil {
				return nil, nil, err
			}
			expenses, err := s.expenseRepo.GetExpensesBetween(prop.ID, yrStart, cap)
			if err != nil {
				return nil, nil, err
			}
			var opexMaint float64
			for _, e := range expenses {
				if !e.IsCapex {
					amount, _ := e.Amount.Float64()
					opexMaint += amount
				}
			}

			months := monthsBetween(yrStart, cap)
			operating := collected - (opexMaint + monthlyFixed*float64(months)) - monthlyDebt*float64(months)
			flows = append(flows, cashFlow{date: flowDate, amount: operating})
		}

		if currentEquity > 0 {
			flows = append(flows, cashFlow{date: today, amount: currentEquity})
		}
	}

	return irr(flows), acquisitionDate, nil
}

func (s *ReportService) buildLifetime(
	prop model.Property,
	year int,
	acquisitionDate *time.Time,
	monthlyFixed, monthlyDebt float64,
	capRate, irrValue *float64,
	currentEquity, equityInvested float64,
	expenseBd func(int, float64, float64) model.ExpenseBreakdown,
	rentRoll func(time.Time, time.Time) (float64, error),
	maintenance func(time.Time, time.Time) (float64, float64, error),
	today time.Time,
) (*model.LifetimeMetrics, error) {
	start := acquisitionDate
	if start == nil {
		earliest, err := s.reportRepo.EarliestChargeDate(prop.ID)
		if err != nil {
			return nil, err
		}
		start = earliest
	}
	if start == nil {
		fallback := time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC)
		start = &fallback
	}

	months := monthsBetween(*start, today)
	if months < 1 {
		months = 1
	}

	charged, err := rentRoll(*start, today)
	if err != nil {
		return nil, err
	}
	collected, err := s.reportRepo.SumRentCollected(prop.ID, *start, today)
	if err != nil {
		return nil, err
	}
	opexMaint, capex, err := maintenance(*start, today)
	if err != nil {
		return nil, err
	}

	opex := opexMaint + monthlyFixed*float64(months)
	debt := monthlyDebt * float64(months)
	noi := collected - opex
	cashFlow := noi - debt

	return &model.LifetimeMetrics{
		StartDate:           start.Format("2006-01-02"),
		Months:              months,
		RentCharged:         round2(charged),
		RentCollected:       round2(collected),
		Delinquency:         round2(charged - collected),
		Opex:                round2(opex),
		Capex:               round2(capex),
		NOI:                 round2(noi),
		DebtService:         round2(debt),
		CashFlow:            round2(cashFlow),
		AvgMonthlyNOI:       round2(noi / float64(months)),
		AvgMonthlyCashFlow:  round2(cashFlow / float64(months)),
		CapRate:             capRate,
		IRR:                 irrValue,
		CurrentEquity:       round2(currentEquity),
		TotalEquityInvested: round2(equityInvested),
		ExpenseBreakdown:    expenseBd(months, opexMaint, charged),
	}, nil
}

// aggregateTotals sums the per-property reports into portfolio totals.
func aggregateTotals(reports []model.PropertyReport, month int) model.PortfolioTotals {
	var t model.PortfolioTotals
	t.YTD.Months = month

	for _, r := range reports {
		t.Monthly.RentCharged = round2(t.Monthly.RentCharged + r.Monthly.RentCharged)
		t.Monthly.RentCollected = round2(t.Monthly.RentCollected + r.Monthly.RentCollected)
		t.Monthly.Delinquency = round2(t.Monthly.Delinquency + r.Monthly.Delinquency)
		t.Monthly.Opex = round2(t.Monthly.Opex + r.Monthly.Opex)
		t.Monthly.Capex = round2(t.Monthly.Capex + r.Monthly.Capex)
		t.Monthly.NOI = round2(t.Monthly.NOI + r.Monthly.NOI)
		t.Monthly.DebtService = round2(t.Monthly.DebtService + r.Monthly.DebtService)
		t.Monthly.CashFlow = round2(t.Monthly.CashFlow + r.Monthly.CashFlow)
		t.Monthly.RentableUnits += r.Monthly.RentableUnits
		t.Monthly.OccupiedUnits += r.Monthly.OccupiedUnits
		t.Monthly.ExpenseBreakdown = addBreakdown(t.Monthly.ExpenseBreakdown, r.Monthly.ExpenseBreakdown)

		t.YTD.RentCharged = round2(t.YTD.RentCharged + r.YTD.RentCharged)
		t.YTD.RentCollected = round2(t.YTD.RentCollected + r.YTD.RentCollected)
		t.YTD.Delinquency = round2(t.YTD.Delinquency + r.YTD.Delinquency)
		t.YTD.Opex = round2(t.YTD.Opex + r.YTD.Opex)
		t.YTD.Capex = round2(t.YTD.Capex + r.YTD.Capex)
		t.YTD.NOI = round2(t.YTD.NOI + r.YTD.NOI)
		t.YTD.DebtService = round2(t.YTD.DebtService + r.YTD.DebtService)
		t.YTD.CashFlow = round2(t.YTD.CashFlow + r.YTD.CashFlow)
		t.YTD.RentableUnits += r.Monthly.RentableUnits
		t.YTD.OccupiedUnits += r.Monthly.OccupiedUnits
		t.YTD.ExpenseBreakdown = addBreakdown(t.YTD.ExpenseBreakdown, r.YTD.ExpenseBreakdown)

		t.Annual.RentCharged = round2(t.Annual.RentCharged + r.Annual.RentCharged)
		t.Annual.RentCollected = round2(t.Annual.RentCollected + r.Annual.RentCollected)
		t.Annual.Opex = round2(t.Annual.Opex + r.Annual.Opex)
		t.Annual.NOI = round2(t.Annual.NOI + r.Annual.NOI)
		t.Annual.DebtService = round2(t.Annual.DebtService + r.Annual.DebtService)
		t.Annual.CashFlow = round2(t.Annual.CashFlow + r.Annual.CashFlow)
		t.Annual.TotalEquityInvested = round2(t.Annual.TotalEquityInvested + r.Annual.TotalEquityInvested)
		t.Annual.CurrentEquity = round2(t.Annual.CurrentEquity + r.Annual.CurrentEquity)
	}

	return t
}

func addBreakdown(a, b model.ExpenseBreakdown) model.ExpenseBreakdown {
	return model.ExpenseBreakdown{
		LoanPayment:   round2(a.LoanPayment + b.LoanPayment),
		PropertyTax:   round2(a.PropertyTax + b.PropertyTax),
		Insurance:     round2(a.Insurance + b.Insurance),
		HOA:           round2(a.HOA + b.HOA),
		OtherFixed:    round2(a.OtherFixed + b.OtherFixed),
		Repairs:       round2(a.Repairs + b.Repairs),
		ManagementFee: round2(a.ManagementFee + b.ManagementFee),
	}
}
