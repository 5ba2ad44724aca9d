package view

import (
	"context"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"homeledger/internal/model"
)

// RefreshState tags the manual refresh action's single-flight guard.
type RefreshState int

const (
	// Idle means no refresh is running; Trigger will start one.
	Idle RefreshState = iota
	// InFlight means a refresh is running; Trigger is a no-op.
	InFlight
)

// ToastKind classifies a transient notification.
type ToastKind int

const (
	// ToastSuccess auto-dismisses after 4 seconds.
	ToastSuccess ToastKind = iota
	// ToastFailure auto-dismisses after 3 seconds.
	ToastFailure
)

// Toast is the transient message shown after a manual refresh settles.
type Toast struct {
	Kind    ToastKind
	Message string
}

// HoldingsCache is the slice of ChildCache the refresh action needs for its
// fan-out. Satisfied by *ChildCache[model.Holding].
type HoldingsCache interface {
	Keys() []string
	Reload(ctx context.Context, parentID string) error
}

// RefreshAction runs the user-triggered price refresh: single-flight, fans a
// refetch out to every account whose holdings are cached, and pushes the
// fresh status into the poller rather than waiting for the next tick.
type RefreshAction struct {
	trigger func(ctx context.Context) (model.RefreshStatus, error)
	cache   HoldingsCache
	poller  *StatusPoller

	successTTL time.Duration
	failureTTL time.Duration

	mu    sync.Mutex
	state RefreshState
	toast *Toast
}

// RefreshOption configures a RefreshAction.
type RefreshOption func(*RefreshAction)

// WithToastDurations overrides the toast auto-dismiss delays.
func WithToastDurations(success, failure time.Duration) RefreshOption {
	return func(a *RefreshAction) {
		a.successTTL = success
		a.failureTTL = failure
	}
}

// NewRefreshAction wires the refresh trigger to the holdings cache and the
// status poller. The trigger runs the refresh server-side and returns the
// resulting refresh status.
func NewRefreshAction(
	trigger func(ctx context.Context) (model.RefreshStatus, error),
	cache HoldingsCache,
	poller *StatusPoller,
	opts ...RefreshOption,
) *RefreshAction {
	a := &RefreshAction{
		trigger:    trigger,
		cache:      cache,
		poller:     poller,
		successTTL: 4 * time.Second,
		failureTTL: 3 * time.Second,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// State returns the single-flight tag.
func (a *RefreshAction) State() RefreshState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Toast returns the current transient toast, if one is showing.
func (a *RefreshAction) Toast() (Toast, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.toast == nil {
		return Toast{}, false
	}
	return *a.toast, true
}

// Trigger runs the refresh. Invoking while one is already in flight is a
// no-op. The state tag resets on every exit path so a failure can be retried
// immediately.
func (a *RefreshAction) Trigger(ctx context.Context) {
	a.mu.Lock()
	if a.state == InFlight {
		a.mu.Unlock()
		return
	}
	a.state = InFlight
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.state = Idle
		a.mu.Unlock()
	}()

	status, err := a.trigger(ctx)
	if err != nil {
		a.showToast(Toast{Kind: ToastFailure, Message: "price refresh failed"}, a.failureTTL)
		return
	}

	if a.poller != nil {
		a.poller.SetRefreshStatus(status)
	}

	// Refetch every account the user has expanded this session. Individual
	// failures degrade those entries to empty, same as any lazy load; a plain
	// Group (no shared cancel) keeps the reloads independent.
	var g errgroup.Group
	for _, accountID := range a.cache.Keys() {
		accountID := accountID
		g.Go(func() error {
			return a.cache.Reload(ctx, accountID)
		})
	}
	if err := g.Wait(); err != nil {
		log.Printf("WARN: holdings refetch after refresh: %v", err)
	}

	a.showToast(Toast{Kind: ToastSuccess, Message: "prices refreshed"}, a.successTTL)
}

func (a *RefreshAction) showToast(toast Toast, ttl time.Duration) {
	a.mu.Lock()
	a.toast = &toast
	a.mu.Unlock()

	time.AfterFunc(ttl, func() {
		a.mu.Lock()
		if a.toast != nil && *a.toast == toast {
			a.toast = nil
		}
		a.mu.Unlock()
	})
}
