package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"homeledger/internal/market"
	"homeledger/internal/repository"
	"homeledger/internal/service"
)

// MockQuoteSource is a quotes.Source that serves canned prices instead of
// hitting the real quote API.
type MockQuoteSource struct {
	// Prices maps ticker symbols to the close to return.
	Prices map[string]decimal.Decimal
	// Err is returned for any symbol missing from Prices.
	Err error
	// CallCount tracks how many lookups were made.
	CallCount int
}

// NewMockQuoteSource creates a mock with the given symbol -> price pairs.
func NewMockQuoteSource(prices map[string]float64) *MockQuoteSource {
	m := &MockQuoteSource{Prices: map[string]decimal.Decimal{}}
	for symbol, price := range prices {
		m.Prices[symbol] = decimal.NewFromFloat(price)
	}
	return m
}

// LatestClose returns the canned price for the symbol.
func (m *MockQuoteSource) LatestClose(symbol string) (decimal.Decimal, error) {
	m.CallCount++
	if price, ok := m.Prices[symbol]; ok {
		return price, nil
	}
	if m.Err != nil {
		return decimal.Decimal{}, m.Err
	}
	return decimal.Decimal{}, &UnknownSymbolError{Symbol: symbol}
}

// UnknownSymbolError is returned for symbols the mock has no price for.
type UnknownSymbolError struct {
	Symbol string
}

func (e *UnknownSymbolError) Error() string {
	return "no mock price for symbol " + e.Symbol
}

// NewTestRefreshService creates a RefreshService wired to the mock quote
// source with the market clock pinned to a mid-session trading instant.
func NewTestRefreshService(t *testing.T, db *sql.DB, source *MockQuoteSource) *service.RefreshService {
	t.Helper()

	// Wednesday 2026-06-03 16:00 UTC is noon Eastern, market open.
	return newRefreshServiceAt(db, source, time.Date(2026, 6, 3, 16, 0, 0, 0, time.UTC))
}

// NewTestRefreshServiceClosedMarket pins the clock to a Saturday so the
// market gate is shut.
func NewTestRefreshServiceClosedMarket(t *testing.T, db *sql.DB, source *MockQuoteSource) *service.RefreshService {
	t.Helper()

	return newRefreshServiceAt(db, source, time.Date(2026, 6, 6, 16, 0, 0, 0, time.UTC))
}

func newRefreshServiceAt(db *sql.DB, source *MockQuoteSource, instant time.Time) *service.RefreshService {
	calendar := market.NewCalendar().WithClock(func() time.Time { return instant })

	return service.NewRefreshService(
		db,
		repository.NewHouseholdRepository(db),
		repository.NewHoldingRepository(db),
		source,
		calendar,
	).WithClock(func() time.Time { return instant })
}
