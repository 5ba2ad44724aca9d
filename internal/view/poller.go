package view

import (
	"context"
	"sync"
	"time"

	"homeledger/internal/model"
)

// StatusPoller keeps the refresh-status and market-status snapshots fresh
// without user action. Both are fetched immediately on Start and then on a
// fixed interval; the two fetches are independent and failures are ignored,
// stale status being acceptable. Last write wins.
type StatusPoller struct {
	refreshFetch func(ctx context.Context) (model.RefreshStatus, error)
	marketFetch  func(ctx context.Context) (model.MarketStatus, error)
	interval     time.Duration

	mu         sync.Mutex
	refresh    model.RefreshStatus
	hasRefresh bool
	market     model.MarketStatus
	hasMarket  bool

	stop     chan struct{}
	stopOnce sync.Once
	started  bool
}

// PollerOption configures a StatusPoller.
type PollerOption func(*StatusPoller)

// WithPollInterval overrides the default 60 second poll interval.
func WithPollInterval(d time.Duration) PollerOption {
	return func(p *StatusPoller) {
		p.interval = d
	}
}

// NewStatusPoller creates a poller over the two status fetch functions.
func NewStatusPoller(
	refreshFetch func(ctx context.Context) (model.RefreshStatus, error),
	marketFetch func(ctx context.Context) (model.MarketStatus, error),
	opts ...PollerOption,
) *StatusPoller {
	p := &StatusPoller{
		refreshFetch: refreshFetch,
		marketFetch:  marketFetch,
		interval:     60 * time.Second,
		stop:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start fetches both statuses immediately, then repeats on the interval
// until Stop is called. Calling Start twice is a no-op.
func (p *StatusPoller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		return
	}
	p.started = true
	p.mu.Unlock()

	go func() {
		p.poll(ctx)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-p.stop:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.poll(ctx)
			}
		}
	}()
}

// poll runs both fetches. Each failure is dropped independently so one slow
// or broken endpoint never blanks the other's snapshot.
func (p *StatusPoller) poll(ctx context.Context) {
	if status, err := p.refreshFetch(ctx); err == nil {
		p.SetRefreshStatus(status)
	}
	if status, err := p.marketFetch(ctx); err == nil {
		p.mu.Lock()
		p.market = status
		p.hasMarket = true
		p.mu.Unlock()
	}
}

// Stop cancels the poll loop. Idempotent; required on teardown so timers do
// not accumulate across navigation.
func (p *StatusPoller) Stop() {
	p.stopOnce.Do(func() {
		close(p.stop)
	})
}

// RefreshStatus returns the latest refresh snapshot, if any fetch succeeded.
func (p *StatusPoller) RefreshStatus() (model.RefreshStatus, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.refresh, p.hasRefresh
}

// MarketStatus returns the latest market snapshot, if any fetch succeeded.
func (p *StatusPoller) MarketStatus() (model.MarketStatus, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.market, p.hasMarket
}

// SetRefreshStatus applies a snapshot directly. The manual refresh action
// pushes its own response here instead of waiting for the next tick.
func (p *StatusPoller) SetRefreshStatus(status model.RefreshStatus) {
	p.mu.Lock()
	p.refresh = status
	p.hasRefresh = true
	p.mu.Unlock()
}
