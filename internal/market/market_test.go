package market

import (
	"testing"
	"time"
)

func calendarAt(t *testing.T, instant time.Time) *Calendar {
	t.Helper()

	c := NewCalendar()
	c.now = func() time.Time { return instant }
	return c
}

func easternTime(t *testing.T, year int, month time.Month, day, hour, minute int) time.Time {
	t.Helper()

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("failed to load tz: %v", err)
	}
	return time.Date(year, month, day, hour, minute, 0, 0, loc)
}

func TestIsOpen(t *testing.T) {
	// Wednesday June 3 2026 is a regular trading day.
	tests := []struct {
		name string
		at   func(t *testing.T) time.Time
		want bool
	}{
		{
			name: "weekday mid-session",
			at:   func(t *testing.T) time.Time { return easternTime(t, 2026, time.June, 3, 12, 0) },
			want: true,
		},
		{
			name: "weekday before open",
			at:   func(t *testing.T) time.Time { return easternTime(t, 2026, time.June, 3, 9, 15) },
			want: false,
		},
		{
			name: "weekday after close",
			at:   func(t *testing.T) time.Time { return easternTime(t, 2026, time.June, 3, 16, 30) },
			want: false,
		},
		{
			name: "saturday",
			at:   func(t *testing.T) time.Time { return easternTime(t, 2026, time.June, 6, 12, 0) },
			want: false,
		},
		{
			name: "thanksgiving holiday",
			at:   func(t *testing.T) time.Time { return easternTime(t, 2026, time.November, 26, 12, 0) },
			want: false,
		},
		{
			name: "exactly at open",
			at:   func(t *testing.T) time.Time { return easternTime(t, 2026, time.June, 3, 9, 30) },
			want: true,
		},
		{
			name: "exactly at close",
			at:   func(t *testing.T) time.Time { return easternTime(t, 2026, time.June, 3, 16, 0) },
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := calendarAt(t, tt.at(t))
			if got := c.IsOpen(); got != tt.want {
				t.Errorf("IsOpen() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNextOpen(t *testing.T) {
	t.Run("returns nil while market is open", func(t *testing.T) {
		c := calendarAt(t, easternTime(t, 2026, time.June, 3, 12, 0))
		if got := c.NextOpen(); got != nil {
			t.Errorf("NextOpen() = %v, want nil", got)
		}
	})

	t.Run("same day before open", func(t *testing.T) {
		c := calendarAt(t, easternTime(t, 2026, time.June, 3, 8, 0))
		got := c.NextOpen()
		if got == nil {
			t.Fatal("NextOpen() = nil, want value")
		}
		want := easternTime(t, 2026, time.June, 3, 9, 30).UTC()
		if !got.Equal(want) {
			t.Errorf("NextOpen() = %v, want %v", got, want)
		}
	})

	t.Run("after close rolls to next day", func(t *testing.T) {
		c := calendarAt(t, easternTime(t, 2026, time.June, 3, 17, 0))
		got := c.NextOpen()
		if got == nil {
			t.Fatal("NextOpen() = nil, want value")
		}
		want := easternTime(t, 2026, time.June, 4, 9, 30).UTC()
		if !got.Equal(want) {
			t.Errorf("NextOpen() = %v, want %v", got, want)
		}
	})

	t.Run("friday evening rolls past weekend", func(t *testing.T) {
		c := calendarAt(t, easternTime(t, 2026, time.June, 5, 18, 0))
		got := c.NextOpen()
		if got == nil {
			t.Fatal("NextOpen() = nil, want value")
		}
		want := easternTime(t, 2026, time.June, 8, 9, 30).UTC()
		if !got.Equal(want) {
			t.Errorf("NextOpen() = %v, want %v", got, want)
		}
	})

	t.Run("skips thanksgiving", func(t *testing.T) {
		// Wednesday Nov 25 2026 after close; Thursday is a holiday.
		c := calendarAt(t, easternTime(t, 2026, time.November, 25, 17, 0))
		got := c.NextOpen()
		if got == nil {
			t.Fatal("NextOpen() = nil, want value")
		}
		want := easternTime(t, 2026, time.November, 27, 9, 30).UTC()
		if !got.Equal(want) {
			t.Errorf("NextOpen() = %v, want %v", got, want)
		}
	})
}
