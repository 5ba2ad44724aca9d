package service

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"homeledger/internal/market"
	"homeledger/internal/model"
	"homeledger/internal/quotes"
	"homeledger/internal/repository"
)

// RefreshService keeps holding prices current. The cron sweep refreshes every
// due household while the market is open; the manual endpoint refreshes one
// household unconditionally.
type RefreshService struct {
	db            *sql.DB
	householdRepo *repository.HouseholdRepository
	holdingRepo   *repository.HoldingRepository
	quoteSource   quotes.Source
	calendar      *market.Calendar

	now func() time.Time
}

// NewRefreshService creates a new RefreshService with the provided dependencies.
func NewRefreshService(
	db *sql.DB,
	householdRepo *repository.HouseholdRepository,
	holdingRepo *repository.HoldingRepository,
	quoteSource quotes.Source,
	calendar *market.Calendar,
) *RefreshService {
	return &RefreshService{
		db:            db,
		householdRepo: householdRepo,
		holdingRepo:   holdingRepo,
		quoteSource:   quoteSource,
		calendar:      calendar,
		now:           time.Now,
	}
}

// WithClock overrides the time source so tests can pin "now".
func (s *RefreshService) WithClock(now func() time.Time) *RefreshService {
	s.now = now
	return s
}

// RefreshPrices fetches the latest close for every tickered holding in the
// household and recomputes current values. Runs regardless of market hours;
// a closed market just means the latest close is yesterday's. Returns how
// many holdings were updated.
func (s *RefreshService) RefreshPrices(ctx context.Context, householdID string) (int, error) {
	if _, err := s.householdRepo.GetHouseholdOnID(householdID); err != nil {
		return 0, err
	}

	holdings, err := s.holdingRepo.GetTickeredHoldings(householdID)
	if err != nil {
		return 0, err
	}
	if len(holdings) == 0 {
		return 0, nil
	}

	// One quote per distinct ticker, shared across holdings.
	prices := map[string]decimal.Decimal{}
	for _, h := range holdings {
		if _, done := prices[h.TickerSymbol]; done {
			continue
		}
		price, err := s.quoteSource.LatestClose(h.TickerSymbol)
		if err != nil {
			log.Printf("WARN: price refresh skipping ticker %s: %v", h.TickerSymbol, err)
			continue
		}
		prices[h.TickerSymbol] = price
	}

	asOf := s.now().UTC()

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after a successful commit is a no-op

	txRepo := s.holdingRepo.WithTx(tx)
	refreshed := 0
	for _, h := range holdings {
		price, ok := prices[h.TickerSymbol]
		if !ok {
			continue
		}
		if err := txRepo.UpdateValue(ctx, h.ID, price.Mul(h.Quantity), asOf); err != nil {
			return 0, err
		}
		refreshed++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit price refresh: %w", err)
	}

	if err := s.householdRepo.SetLastPriceRefreshAt(householdID, asOf); err != nil {
		return 0, err
	}

	return refreshed, nil
}

// RefreshDueHouseholds is the cron sweep. It does nothing while the market is
// closed, then refreshes each enabled household whose interval has elapsed.
// Per-household failures are logged and do not stop the sweep.
func (s *RefreshService) RefreshDueHouseholds(ctx context.Context) {
	if !s.calendar.IsOpen() {
		return
	}

	households, err := s.householdRepo.GetRefreshEnabledHouseholds()
	if err != nil {
		log.Printf("ERROR: price refresh sweep failed to list households: %v", err)
		return
	}

	now := s.now().UTC()
	for _, h := range households {
		if h.LastPriceRefreshAt != nil {
			due := h.LastPriceRefreshAt.Add(time.Duration(h.PriceRefreshIntervalMinutes) * time.Minute)
			if now.Before(due) {
				continue
			}
		}

		n, err := s.RefreshPrices(ctx, h.ID)
		if err != nil {
			log.Printf("ERROR: price refresh failed for household %s: %v", h.ID, err)
			continue
		}
		log.Printf("Price refresh updated %d holdings for household %s", n, h.ID)
	}
}

// RefreshStatus reports the household's refresh settings, last run, and the
// earliest time the sweep will pick it up again.
func (s *RefreshService) RefreshStatus(householdID string) (model.RefreshStatus, error) {
	h, err := s.householdRepo.GetHouseholdOnID(householdID)
	if err != nil {
		return model.RefreshStatus{}, err
	}

	status := model.RefreshStatus{
		LastRefresh:     h.LastPriceRefreshAt,
		Enabled:         h.PriceRefreshEnabled,
		IntervalMinutes: h.PriceRefreshIntervalMinutes,
	}
	if h.PriceRefreshEnabled && h.LastPriceRefreshAt != nil {
		next := h.LastPriceRefreshAt.Add(time.Duration(h.PriceRefreshIntervalMinutes) * time.Minute)
		status.NextRefresh = &next
	}

	return status, nil
}

// UpdateRefreshSettings changes the household's refresh toggle and interval.
func (s *RefreshService) UpdateRefreshSettings(householdID string, enabled bool, intervalMinutes int) (model.RefreshStatus, error) {
	if intervalMinutes < 1 {
		intervalMinutes = 1
	}
	if err := s.householdRepo.UpdateRefreshSettings(householdID, enabled, intervalMinutes); err != nil {
		return model.RefreshStatus{}, err
	}
	return s.RefreshStatus(householdID)
}

// MarketStatus reports whether the exchange is currently open and, when
// closed, the next opening time.
func (s *RefreshService) MarketStatus() model.MarketStatus {
	return model.MarketStatus{
		IsOpen:   s.calendar.IsOpen(),
		NextOpen: s.calendar.NextOpen(),
	}
}
