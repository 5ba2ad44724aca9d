package view

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"homeledger/internal/model"
)

// Period is a named report period preset.
type Period int

const (
	// PeriodMTD is the current calendar month.
	PeriodMTD Period = iota
	// PeriodYTD is January through the current month.
	PeriodYTD
	// PeriodLTD is since acquisition; it has no previous period to compare.
	PeriodLTD
	// PeriodLastMonth is the month before the current one.
	PeriodLastMonth
	// PeriodLastYear is December of the previous year.
	PeriodLastYear
	// PeriodCustom is an explicit year/month chosen by the user.
	PeriodCustom
)

// ScopeAll selects the portfolio report instead of a single property.
const ScopeAll = "all"

// PeriodSelector owns the report page's period and property selection and
// the fetched report state. Every transition refetches in full; single
// property and portfolio state are never populated at the same time.
type PeriodSelector struct {
	fetchProperty  func(ctx context.Context, propertyID string, year, month int, lifetime bool) (model.PropertyReport, error)
	fetchPortfolio func(ctx context.Context, year, month int) (model.PortfolioReport, error)
	now            func() time.Time

	mu         sync.Mutex
	period     Period
	year       int
	month      int
	propertyID string

	report     *model.PropertyReport
	comparison *model.PropertyReport
	portfolio  *model.PortfolioReport
}

// SelectorOption configures a PeriodSelector.
type SelectorOption func(*PeriodSelector)

// WithSelectorClock pins "today" for preset computation.
func WithSelectorClock(now func() time.Time) SelectorOption {
	return func(s *PeriodSelector) {
		s.now = now
	}
}

// NewPeriodSelector creates a selector over the two report fetch functions,
// starting in MTD mode with no property selected.
func NewPeriodSelector(
	fetchProperty func(ctx context.Context, propertyID string, year, month int, lifetime bool) (model.PropertyReport, error),
	fetchPortfolio func(ctx context.Context, year, month int) (model.PortfolioReport, error),
	opts ...SelectorOption,
) *PeriodSelector {
	s := &PeriodSelector{
		fetchProperty:  fetchProperty,
		fetchPortfolio: fetchPortfolio,
		now:            time.Now,
		period:         PeriodMTD,
	}
	for _, opt := range opts {
		opt(s)
	}
	today := s.now()
	s.year, s.month = today.Year(), int(today.Month())
	return s
}

// SelectPreset sets the period tag and recomputes year/month from "today" at
// selection time, then refetches.
func (s *PeriodSelector) SelectPreset(ctx context.Context, period Period) error {
	today := s.now()
	year, month := today.Year(), int(today.Month())

	switch period {
	case PeriodLastMonth:
		year, month = previousMonth(year, month)
	case PeriodLastYear:
		year, month = year-1, 12
	case PeriodMTD, PeriodYTD, PeriodLTD:
		// current year/month as computed
	case PeriodCustom:
		// Custom keeps whatever year/month is already selected
		s.mu.Lock()
		year, month = s.year, s.month
		s.mu.Unlock()
	}

	s.mu.Lock()
	s.period = period
	s.year = year
	s.month = month
	s.mu.Unlock()

	return s.refetch(ctx)
}

// SetCustom sets an explicit year/month, implicitly transitioning the period
// tag to Custom, then refetches.
func (s *PeriodSelector) SetCustom(ctx context.Context, year, month int) error {
	s.mu.Lock()
	s.period = PeriodCustom
	s.year = year
	s.month = month
	s.mu.Unlock()

	return s.refetch(ctx)
}

// SelectProperty switches the property scope. ScopeAll switches to the
// portfolio report and clears single-property state; a specific id does the
// reverse. Either way the fetch sequence reruns in full.
func (s *PeriodSelector) SelectProperty(ctx context.Context, propertyID string) error {
	s.mu.Lock()
	s.propertyID = propertyID
	s.mu.Unlock()

	return s.refetch(ctx)
}

// refetch runs the fetch sequence for the current state. In portfolio scope
// only the portfolio report is fetched. In single-property scope the current
// period is fetched, plus the previous month in parallel for the trend
// arrows, except in LTD mode which has no previous period. A comparison
// failure degrades to "no trend data".
func (s *PeriodSelector) refetch(ctx context.Context) error {
	s.mu.Lock()
	period, year, month, propertyID := s.period, s.year, s.month, s.propertyID
	s.mu.Unlock()

	if propertyID == "" {
		return nil
	}

	if propertyID == ScopeAll {
		portfolio, err := s.fetchPortfolio(ctx, year, month)

		s.mu.Lock()
		s.report = nil
		s.comparison = nil
		if err != nil {
			s.portfolio = nil
		} else {
			s.portfolio = &portfolio
		}
		s.mu.Unlock()
		return err
	}

	var current, previous model.PropertyReport
	var prevErr error

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.fetchProperty(gctx, propertyID, year, month, period == PeriodLTD)
		return err
	})
	if period != PeriodLTD {
		prevYear, prevMonth := previousMonth(year, month)
		g.Go(func() error {
			previous, prevErr = s.fetchProperty(gctx, propertyID, prevYear, prevMonth, false)
			return nil
		})
	}

	err := g.Wait()

	s.mu.Lock()
	s.portfolio = nil
	if err != nil {
		s.report = nil
		s.comparison = nil
	} else {
		s.report = &current
		if period != PeriodLTD && prevErr == nil {
			s.comparison = &previous
		} else {
			s.comparison = nil
		}
	}
	s.mu.Unlock()
	return err
}

// Period returns the current period tag.
func (s *PeriodSelector) Period() Period {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.period
}

// Selection returns the current year and month.
func (s *PeriodSelector) Selection() (year, month int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.year, s.month
}

// Report returns the single-property report, nil in portfolio scope.
func (s *PeriodSelector) Report() *model.PropertyReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report
}

// Comparison returns the previous-month report backing the trend arrows, or
// nil when unavailable (LTD mode, portfolio scope, or a failed fetch).
func (s *PeriodSelector) Comparison() *model.PropertyReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.comparison
}

// Portfolio returns the portfolio report, nil in single-property scope.
func (s *PeriodSelector) Portfolio() *model.PortfolioReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.portfolio
}

func previousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, 12
	}
	return year, month - 1
}
