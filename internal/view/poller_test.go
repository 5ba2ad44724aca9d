package view_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"homeledger/internal/model"
	"homeledger/internal/view"
)

// TestStatusPoller tests the background status poll loop.
//
// WHY: The dashboard shows "last refreshed" and "market open" without user
// action. The poller must fetch immediately on start, keep fetching on the
// interval, treat the two endpoints independently, and stop cleanly so
// navigation does not leak tickers.
func TestStatusPoller(t *testing.T) {
	refreshOK := func(ctx context.Context) (model.RefreshStatus, error) {
		return model.RefreshStatus{Enabled: true, IntervalMinutes: 15}, nil
	}
	marketOK := func(ctx context.Context) (model.MarketStatus, error) {
		return model.MarketStatus{IsOpen: true}, nil
	}

	t.Run("fetches both statuses immediately on start", func(t *testing.T) {
		poller := view.NewStatusPoller(refreshOK, marketOK, view.WithPollInterval(time.Hour))
		poller.Start(context.Background())
		defer poller.Stop()

		waitFor(t, func() bool {
			_, ok := poller.RefreshStatus()
			return ok
		})
		waitFor(t, func() bool {
			_, ok := poller.MarketStatus()
			return ok
		})

		status, _ := poller.RefreshStatus()
		if status.IntervalMinutes != 15 {
			t.Errorf("Expected interval 15, got %d", status.IntervalMinutes)
		}
		market, _ := poller.MarketStatus()
		if !market.IsOpen {
			t.Error("Expected market open")
		}
	})

	t.Run("keeps polling on the interval", func(t *testing.T) {
		var calls int32
		counting := func(ctx context.Context) (model.RefreshStatus, error) {
			atomic.AddInt32(&calls, 1)
			return model.RefreshStatus{}, nil
		}

		poller := view.NewStatusPoller(counting, marketOK, view.WithPollInterval(10*time.Millisecond))
		poller.Start(context.Background())
		defer poller.Stop()

		waitFor(t, func() bool {
			return atomic.LoadInt32(&calls) >= 3
		})
	})

	t.Run("a failing endpoint does not block the other", func(t *testing.T) {
		refreshBroken := func(ctx context.Context) (model.RefreshStatus, error) {
			return model.RefreshStatus{}, errors.New("backend down")
		}

		poller := view.NewStatusPoller(refreshBroken, marketOK, view.WithPollInterval(time.Hour))
		poller.Start(context.Background())
		defer poller.Stop()

		waitFor(t, func() bool {
			_, ok := poller.MarketStatus()
			return ok
		})

		if _, ok := poller.RefreshStatus(); ok {
			t.Error("Expected no refresh snapshot from a failing endpoint")
		}
	})

	t.Run("stop cancels the loop and is idempotent", func(t *testing.T) {
		var calls int32
		counting := func(ctx context.Context) (model.RefreshStatus, error) {
			atomic.AddInt32(&calls, 1)
			return model.RefreshStatus{}, nil
		}

		poller := view.NewStatusPoller(counting, marketOK, view.WithPollInterval(5*time.Millisecond))
		poller.Start(context.Background())

		waitFor(t, func() bool { return atomic.LoadInt32(&calls) >= 1 })
		poller.Stop()
		poller.Stop() // second stop must not panic

		settled := atomic.LoadInt32(&calls)
		time.Sleep(50 * time.Millisecond)
		if after := atomic.LoadInt32(&calls); after > settled+1 {
			t.Errorf("Expected polling to stop, calls went %d -> %d", settled, after)
		}
	})

	t.Run("manual push updates the snapshot immediately", func(t *testing.T) {
		poller := view.NewStatusPoller(refreshOK, marketOK, view.WithPollInterval(time.Hour))

		now := time.Now()
		poller.SetRefreshStatus(model.RefreshStatus{LastRefresh: &now})

		status, ok := poller.RefreshStatus()
		if !ok || status.LastRefresh == nil {
			t.Error("Expected pushed snapshot to be visible without polling")
		}
	})
}

// waitFor polls a condition for up to one second. The poller is asynchronous
// by design, so tests observe it rather than hook its internals.
func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("Condition not met within 1s")
}
