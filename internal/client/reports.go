package client

import (
	"context"
	"fmt"
	"net/http"

	"homeledger/internal/model"
)

// PropertyReport fetches the full report for one property and month. Pass
// lifetime to include the since-acquisition block.
func (c *Client) PropertyReport(ctx context.Context, propertyID string, year, month int, lifetime bool) (model.PropertyReport, error) {
	path := fmt.Sprintf("/api/reports/property/%s?year=%d&month=%d", propertyID, year, month)
	if lifetime {
		path += "&period=ltd"
	}

	var report model.PropertyReport
	err := c.do(ctx, http.MethodGet, path, nil, &report)
	return report, err
}

// PortfolioReport fetches per-property reports plus portfolio totals.
func (c *Client) PortfolioReport(ctx context.Context, year, month int) (model.PortfolioReport, error) {
	path := fmt.Sprintf("/api/reports/portfolio?year=%d&month=%d", year, month)

	var report model.PortfolioReport
	err := c.do(ctx, http.MethodGet, path, nil, &report)
	return report, err
}
