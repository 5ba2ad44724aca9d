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

// TestRefreshAction_SingleFlight tests the refresh guard.
//
// WHY: Hammering the refresh button must not stack HTTP calls. A second
// trigger while one is in flight is a no-op, and the guard resets even on
// failure so the user can retry immediately.
func TestRefreshAction_SingleFlight(t *testing.T) {
	t.Run("second trigger while in flight issues no second call", func(t *testing.T) {
		var calls int32
		release := make(chan struct{})
		trigger := func(ctx context.Context) (model.RefreshStatus, error) {
			atomic.AddInt32(&calls, 1)
			<-release
			return model.RefreshStatus{}, nil
		}

		cache := view.NewChildCache(func(ctx context.Context, id string) ([]model.Holding, error) {
			return nil, nil
		})
		action := view.NewRefreshAction(trigger, cache, nil)

		first := make(chan struct{})
		go func() {
			action.Trigger(context.Background())
			close(first)
		}()

		waitFor(t, func() bool { return action.State() == view.InFlight })
		action.Trigger(context.Background()) // no-op while in flight

		close(release)
		<-first

		if n := atomic.LoadInt32(&calls); n != 1 {
			t.Errorf("Expected 1 trigger call, got %d", n)
		}
		if action.State() != view.Idle {
			t.Errorf("Expected Idle after settle, got %v", action.State())
		}
	})

	t.Run("guard resets after failure so retry works", func(t *testing.T) {
		var calls int32
		trigger := func(ctx context.Context) (model.RefreshStatus, error) {
			atomic.AddInt32(&calls, 1)
			return model.RefreshStatus{}, errors.New("refresh failed")
		}

		cache := view.NewChildCache(func(ctx context.Context, id string) ([]model.Holding, error) {
			return nil, nil
		})
		action := view.NewRefreshAction(trigger, cache, nil)

		action.Trigger(context.Background())
		action.Trigger(context.Background())

		if n := atomic.LoadInt32(&calls); n != 2 {
			t.Errorf("Expected retry to go through, got %d calls", n)
		}
	})
}

// TestRefreshAction_FanOut tests the post-refresh cache invalidation.
//
// WHY: After a successful refresh every account the user has expanded this
// session holds stale values; all of them must refetch, and the poller must
// show the new last-refresh time without waiting for the next tick.
func TestRefreshAction_FanOut(t *testing.T) {
	refreshedAt := time.Now()
	trigger := func(ctx context.Context) (model.RefreshStatus, error) {
		return model.RefreshStatus{LastRefresh: &refreshedAt}, nil
	}

	var fetches int32
	cache := view.NewChildCache(func(ctx context.Context, id string) ([]model.Holding, error) {
		atomic.AddInt32(&fetches, 1)
		return []model.Holding{}, nil
	})

	// Two accounts expanded this session.
	<-cache.Toggle(context.Background(), "acct-1")
	<-cache.Toggle(context.Background(), "acct-2")
	atomic.StoreInt32(&fetches, 0)

	poller := view.NewStatusPoller(
		func(ctx context.Context) (model.RefreshStatus, error) { return model.RefreshStatus{}, nil },
		func(ctx context.Context) (model.MarketStatus, error) { return model.MarketStatus{}, nil },
	)

	action := view.NewRefreshAction(trigger, cache, poller)
	action.Trigger(context.Background())

	if n := atomic.LoadInt32(&fetches); n != 2 {
		t.Errorf("Expected refetch of both cached accounts, got %d", n)
	}

	status, ok := poller.RefreshStatus()
	if !ok || status.LastRefresh == nil || !status.LastRefresh.Equal(refreshedAt) {
		t.Error("Expected poller to carry the refresh response's timestamp")
	}
}

// TestRefreshAction_Toast tests the transient toast lifecycle.
//
// WHY: The toast is the only feedback the refresh gives. Success and failure
// produce different kinds, and both auto-dismiss.
func TestRefreshAction_Toast(t *testing.T) {
	cache := view.NewChildCache(func(ctx context.Context, id string) ([]model.Holding, error) {
		return nil, nil
	})

	t.Run("success toast appears and auto-dismisses", func(t *testing.T) {
		trigger := func(ctx context.Context) (model.RefreshStatus, error) {
			return model.RefreshStatus{}, nil
		}
		action := view.NewRefreshAction(trigger, cache, nil,
			view.WithToastDurations(20*time.Millisecond, 20*time.Millisecond))

		action.Trigger(context.Background())

		toast, ok := action.Toast()
		if !ok || toast.Kind != view.ToastSuccess {
			t.Fatalf("Expected success toast, got %+v (%v)", toast, ok)
		}

		waitFor(t, func() bool {
			_, showing := action.Toast()
			return !showing
		})
	})

	t.Run("failure produces a failure toast", func(t *testing.T) {
		trigger := func(ctx context.Context) (model.RefreshStatus, error) {
			return model.RefreshStatus{}, errors.New("backend down")
		}
		action := view.NewRefreshAction(trigger, cache, nil,
			view.WithToastDurations(time.Hour, time.Hour))

		action.Trigger(context.Background())

		toast, ok := action.Toast()
		if !ok || toast.Kind != view.ToastFailure {
			t.Errorf("Expected failure toast, got %+v (%v)", toast, ok)
		}
	})
}
