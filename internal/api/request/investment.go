package request

// UpdateRefreshSettingsRequest changes the household's automatic price
// refresh toggle and interval.
type UpdateRefreshSettingsRequest struct {
	Enabled         bool `json:"enabled"`
	IntervalMinutes int  `json:"interval_minutes"`
}
