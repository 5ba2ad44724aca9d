package client

import (
	"context"
	"net/http"

	"homeledger/internal/api/request"
	"homeledger/internal/model"
)

// RefreshResult reports how many holdings a manual refresh updated.
type RefreshResult struct {
	Refreshed int `json:"refreshed"`
}

// RefreshPrices triggers an immediate price refresh for the household.
func (c *Client) RefreshPrices(ctx context.Context) (RefreshResult, error) {
	var result RefreshResult
	err := c.do(ctx, http.MethodPost, "/api/investments/refresh", nil, &result)
	return result, err
}

// RefreshStatus reports the household's refresh settings and timing.
func (c *Client) RefreshStatus(ctx context.Context) (model.RefreshStatus, error) {
	var status model.RefreshStatus
	err := c.do(ctx, http.MethodGet, "/api/investments/refresh-status", nil, &status)
	return status, err
}

// UpdateRefreshSettings changes the household's refresh toggle and interval.
func (c *Client) UpdateRefreshSettings(ctx context.Context, enabled bool, intervalMinutes int) (model.RefreshStatus, error) {
	var status model.RefreshStatus
	err := c.do(ctx, http.MethodPut, "/api/investments/refresh-settings", request.UpdateRefreshSettingsRequest{
		Enabled:         enabled,
		IntervalMinutes: intervalMinutes,
	}, &status)
	return status, err
}

// MarketStatus reports whether the exchange is open.
func (c *Client) MarketStatus(ctx context.Context) (model.MarketStatus, error) {
	var status model.MarketStatus
	err := c.do(ctx, http.MethodGet, "/api/investments/market-status", nil, &status)
	return status, err
}
