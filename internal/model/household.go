package model

import "time"

// Household groups users and owns every domain entity. Price refresh settings
// live here because refresh runs per household, not per user.
type Household struct {
	ID                          string     `json:"id"`
	Name                        string     `json:"name"`
	PriceRefreshEnabled         bool       `json:"price_refresh_enabled"`
	PriceRefreshIntervalMinutes int        `json:"price_refresh_interval_minutes"`
	LastPriceRefreshAt          *time.Time `json:"last_price_refresh_at"`
	CreatedAt                   time.Time  `json:"created_at"`
}

// User is a household member. PasswordHash never crosses the API boundary.
type User struct {
	ID           string    `json:"id"`
	HouseholdID  string    `json:"household_id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// RefreshStatus is the household's price-refresh snapshot served by
// GET /investments/refresh-status. The server is the sole source of truth;
// clients overwrite their copy wholesale on every poll.
type RefreshStatus struct {
	LastRefresh     *time.Time `json:"last_refresh"`
	NextRefresh     *time.Time `json:"next_refresh"`
	Enabled         bool       `json:"enabled"`
	IntervalMinutes int        `json:"interval_minutes"`
}

// MarketStatus reports whether the exchange is open and, when closed, the next
// opening time in UTC.
type MarketStatus struct {
	IsOpen   bool       `json:"is_open"`
	NextOpen *time.Time `json:"next_open"`
}
