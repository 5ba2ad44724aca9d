// Package market answers whether the NYSE is open for regular trading. The
// background price refresh skips its sweep while the market is closed, and
// the API exposes the status so clients can show when prices go stale.
package market

import (
	"time"
)

// NYSE observed holidays. Extend this table each year.
var nyseHolidays = map[string]bool{
	// 2025
	"2025-01-01": true, // New Year's Day
	"2025-01-20": true, // Martin Luther King Jr. Day
	"2025-02-17": true, // Presidents' Day
	"2025-04-18": true, // Good Friday
	"2025-05-26": true, // Memorial Day
	"2025-06-19": true, // Juneteenth
	"2025-07-04": true, // Independence Day
	"2025-09-01": true, // Labor Day
	"2025-11-27": true, // Thanksgiving Day
	"2025-12-25": true, // Christmas Day
	// 2026
	"2026-01-01": true, // New Year's Day
	"2026-01-19": true, // Martin Luther King Jr. Day
	"2026-02-16": true, // Presidents' Day
	"2026-04-03": true, // Good Friday
	"2026-05-25": true, // Memorial Day
	"2026-06-19": true, // Juneteenth
	"2026-07-03": true, // Independence Day (observed)
	"2026-09-07": true, // Labor Day
	"2026-11-26": true, // Thanksgiving Day
	"2026-12-25": true, // Christmas Day
	// 2027
	"2027-01-01": true, // New Year's Day
	"2027-01-18": true, // Martin Luther King Jr. Day
	"2027-02-15": true, // Presidents' Day
	"2027-03-26": true, // Good Friday
	"2027-05-31": true, // Memorial Day
	"2027-06-18": true, // Juneteenth (observed)
	"2027-07-05": true, // Independence Day (observed)
	"2027-09-06": true, // Labor Day
	"2027-11-25": true, // Thanksgiving Day
	"2027-12-24": true, // Christmas (observed)
}

// Calendar reports NYSE regular trading hours. The zero value is not usable;
// construct with NewCalendar. Now is injectable for tests.
type Calendar struct {
	loc *time.Location
	now func() time.Time
}

// NewCalendar returns a Calendar using America/New_York trading hours. It
// falls back to a fixed UTC-5 zone if the tz database is unavailable.
func NewCalendar() *Calendar {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		loc = time.FixedZone("ET", -5*60*60)
	}
	return &Calendar{loc: loc, now: time.Now}
}

// WithClock overrides the time source so tests can pin the instant.
func (c *Calendar) WithClock(now func() time.Time) *Calendar {
	c.now = now
	return c
}

func (c *Calendar) isTradingDay(t time.Time) bool {
	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return false
	}
	return !nyseHolidays[t.Format("2006-01-02")]
}

// IsOpen returns true if the NYSE is currently within regular trading hours
// (9:30 AM to 4:00 PM Eastern on a trading day).
func (c *Calendar) IsOpen() bool {
	now := c.now().In(c.loc)

	if !c.isTradingDay(now) {
		return false
	}

	open := time.Date(now.Year(), now.Month(), now.Day(), 9, 30, 0, 0, c.loc)
	close := time.Date(now.Year(), now.Month(), now.Day(), 16, 0, 0, 0, c.loc)
	return !now.Before(open) && !now.After(close)
}

// NextOpen returns the next NYSE open time in UTC, or nil when the market is
// currently open. Looks ahead up to ten days, which covers any holiday run.
func (c *Calendar) NextOpen() *time.Time {
	if c.IsOpen() {
		return nil
	}

	now := c.now().In(c.loc)
	day := now
	for i := 0; i < 10; i++ {
		candidate := time.Date(day.Year(), day.Month(), day.Day(), 9, 30, 0, 0, c.loc)
		if candidate.After(now) && c.isTradingDay(candidate) {
			utc := candidate.UTC()
			return &utc
		}
		day = day.AddDate(0, 0, 1)
	}

	return nil
}
