package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"homeledger/internal/testutil"
)

// TestRefreshService_RefreshPrices tests the manual price refresh.
//
// WHY: Manual refresh must work regardless of market hours, share one quote
// per ticker across holdings, and survive a failing symbol without losing
// the rest of the batch.
func TestRefreshService_RefreshPrices(t *testing.T) {
	t.Run("updates tickered holdings and stamps the household", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		source := testutil.NewMockQuoteSource(map[string]float64{"VTI": 273.92, "BND": 71.50})
		svc := testutil.NewTestRefreshService(t, db, source)

		household := testutil.NewHousehold().Build(t, db)
		account := testutil.NewAccount(household.ID).Investment().Build(t, db)
		vti := testutil.NewHolding(household.ID, account.ID).
			WithTicker("VTI").
			WithQuantity(decimal.NewFromInt(10)).
			Build(t, db)
		testutil.NewHolding(household.ID, account.ID).WithTicker("BND").Build(t, db)
		testutil.NewHolding(household.ID, account.ID).WithTicker("").Build(t, db)

		n, err := svc.RefreshPrices(context.Background(), household.ID)
		if err != nil {
			t.Fatalf("RefreshPrices failed: %v", err)
		}
		if n != 2 {
			t.Errorf("refreshed %d holdings, want 2 (untickered excluded)", n)
		}

		var value string
		if err := db.QueryRow(`SELECT current_value FROM holding WHERE id = ?`, vti.ID).Scan(&value); err != nil {
			t.Fatalf("Failed to read holding value: %v", err)
		}
		want := decimal.NewFromFloat(273.92).Mul(decimal.NewFromInt(10))
		got, err := decimal.NewFromString(value)
		if err != nil {
			t.Fatalf("Holding value %q is not a decimal: %v", value, err)
		}
		if !got.Equal(want) {
			t.Errorf("current_value = %s, want %s", got, want)
		}

		status, err := svc.RefreshStatus(household.ID)
		if err != nil {
			t.Fatalf("RefreshStatus failed: %v", err)
		}
		if status.LastRefresh == nil {
			t.Error("LastRefresh not stamped after refresh")
		}
		if status.NextRefresh == nil {
			t.Fatal("NextRefresh is nil for enabled household")
		}
		wantNext := status.LastRefresh.Add(15 * time.Minute)
		if !status.NextRefresh.Equal(wantNext) {
			t.Errorf("NextRefresh = %v, want %v", status.NextRefresh, wantNext)
		}
	})

	t.Run("fetches each ticker once across holdings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		source := testutil.NewMockQuoteSource(map[string]float64{"VTI": 273.92})
		svc := testutil.NewTestRefreshService(t, db, source)

		household := testutil.NewHousehold().Build(t, db)
		account := testutil.NewAccount(household.ID).Investment().Build(t, db)
		testutil.NewHolding(household.ID, account.ID).WithTicker("VTI").Build(t, db)
		testutil.NewHolding(household.ID, account.ID).WithTicker("VTI").Build(t, db)

		n, err := svc.RefreshPrices(context.Background(), household.ID)
		if err != nil {
			t.Fatalf("RefreshPrices failed: %v", err)
		}
		if n != 2 {
			t.Errorf("refreshed %d holdings, want 2", n)
		}
		if source.CallCount != 1 {
			t.Errorf("quote source called %d times, want 1", source.CallCount)
		}
	})

	t.Run("skips failing symbols and refreshes the rest", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		source := testutil.NewMockQuoteSource(map[string]float64{"VTI": 273.92})
		svc := testutil.NewTestRefreshService(t, db, source)

		household := testutil.NewHousehold().Build(t, db)
		account := testutil.NewAccount(household.ID).Investment().Build(t, db)
		testutil.NewHolding(household.ID, account.ID).WithTicker("VTI").Build(t, db)
		testutil.NewHolding(household.ID, account.ID).WithTicker("BOGUS").Build(t, db)

		n, err := svc.RefreshPrices(context.Background(), household.ID)
		if err != nil {
			t.Fatalf("RefreshPrices failed: %v", err)
		}
		if n != 1 {
			t.Errorf("refreshed %d holdings, want 1", n)
		}
	})

	t.Run("returns zero for household with no tickered holdings", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		source := testutil.NewMockQuoteSource(nil)
		svc := testutil.NewTestRefreshService(t, db, source)

		household := testutil.NewHousehold().Build(t, db)

		n, err := svc.RefreshPrices(context.Background(), household.ID)
		if err != nil {
			t.Fatalf("RefreshPrices failed: %v", err)
		}
		if n != 0 {
			t.Errorf("refreshed %d holdings, want 0", n)
		}
		if source.CallCount != 0 {
			t.Errorf("quote source called %d times, want 0", source.CallCount)
		}
	})
}

// TestRefreshService_RefreshDueHouseholds tests the cron sweep.
//
// WHY: The sweep must respect market hours and per-household intervals, or
// it would hammer the quote API all night for stale prices.
func TestRefreshService_RefreshDueHouseholds(t *testing.T) {
	t.Run("refreshes households whose interval elapsed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		source := testutil.NewMockQuoteSource(map[string]float64{"VTI": 273.92})
		svc := testutil.NewTestRefreshService(t, db, source)

		household := testutil.NewHousehold().WithRefreshInterval(15).Build(t, db)
		account := testutil.NewAccount(household.ID).Investment().Build(t, db)
		testutil.NewHolding(household.ID, account.ID).WithTicker("VTI").Build(t, db)

		// Never refreshed before, so it is due immediately.
		svc.RefreshDueHouseholds(context.Background())
		if source.CallCount != 1 {
			t.Fatalf("quote source called %d times, want 1", source.CallCount)
		}

		// Just stamped, interval not elapsed: second sweep is a no-op.
		svc.RefreshDueHouseholds(context.Background())
		if source.CallCount != 1 {
			t.Errorf("quote source called %d times after second sweep, want still 1", source.CallCount)
		}
	})

	t.Run("skips disabled households", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		source := testutil.NewMockQuoteSource(map[string]float64{"VTI": 273.92})
		svc := testutil.NewTestRefreshService(t, db, source)

		household := testutil.NewHousehold().RefreshDisabled().Build(t, db)
		account := testutil.NewAccount(household.ID).Investment().Build(t, db)
		testutil.NewHolding(household.ID, account.ID).WithTicker("VTI").Build(t, db)

		svc.RefreshDueHouseholds(context.Background())
		if source.CallCount != 0 {
			t.Errorf("quote source called %d times for disabled household, want 0", source.CallCount)
		}
	})

	t.Run("does nothing while the market is closed", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		source := testutil.NewMockQuoteSource(map[string]float64{"VTI": 273.92})
		svc := testutil.NewTestRefreshServiceClosedMarket(t, db, source)

		household := testutil.NewHousehold().Build(t, db)
		account := testutil.NewAccount(household.ID).Investment().Build(t, db)
		testutil.NewHolding(household.ID, account.ID).WithTicker("VTI").Build(t, db)

		svc.RefreshDueHouseholds(context.Background())
		if source.CallCount != 0 {
			t.Errorf("quote source called %d times while market closed, want 0", source.CallCount)
		}
	})
}

// TestRefreshService_UpdateRefreshSettings verifies settings round-trip and
// interval clamping.
func TestRefreshService_UpdateRefreshSettings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := testutil.NewTestRefreshService(t, db, testutil.NewMockQuoteSource(nil))

	household := testutil.NewHousehold().Build(t, db)

	status, err := svc.UpdateRefreshSettings(household.ID, false, 0)
	if err != nil {
		t.Fatalf("UpdateRefreshSettings failed: %v", err)
	}
	if status.Enabled {
		t.Error("Enabled = true, want false")
	}
	if status.IntervalMinutes != 1 {
		t.Errorf("IntervalMinutes = %d, want clamped to 1", status.IntervalMinutes)
	}
}

// TestRefreshService_MarketStatus verifies open and closed snapshots.
func TestRefreshService_MarketStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)

	open := testutil.NewTestRefreshService(t, db, testutil.NewMockQuoteSource(nil)).MarketStatus()
	if !open.IsOpen {
		t.Error("IsOpen = false for mid-session clock, want true")
	}
	if open.NextOpen != nil {
		t.Errorf("NextOpen = %v while open, want nil", open.NextOpen)
	}

	closed := testutil.NewTestRefreshServiceClosedMarket(t, db, testutil.NewMockQuoteSource(nil)).MarketStatus()
	if closed.IsOpen {
		t.Error("IsOpen = true for weekend clock, want false")
	}
	if closed.NextOpen == nil {
		t.Error("NextOpen is nil while closed, want next session")
	}
}
