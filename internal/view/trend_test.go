package view_test

import (
	"testing"

	"homeledger/internal/view"
)

// TestTrend tests the arrow derivation for metric comparisons.
//
// WHY: The arrow combines direction with metric polarity: rent going up is
// good, delinquency going up is bad, and a missing previous value means no
// arrow at all. The function is pure, so the table is the whole contract.
func TestTrend(t *testing.T) {
	prev := func(v float64) *float64 { return &v }

	cases := []struct {
		name           string
		current        float64
		previous       *float64
		higherIsBetter bool
		wantDirection  view.Direction
		wantSentiment  view.Sentiment
	}{
		{"up and higher is better", 100, prev(90), true, view.Up, view.Good},
		{"up and lower is better", 100, prev(90), false, view.Up, view.Bad},
		{"down and higher is better", 80, prev(90), true, view.Down, view.Bad},
		{"down and lower is better", 80, prev(90), false, view.Down, view.Good},
		{"equal values give no arrow", 90, prev(90), true, view.Flat, view.Neutral},
		{"missing previous gives no arrow", 100, nil, true, view.Flat, view.Neutral},
		{"negative cash flow improving", -200, prev(-500), true, view.Up, view.Good},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			direction, sentiment := view.Trend(tc.current, tc.previous, tc.higherIsBetter)
			if direction != tc.wantDirection {
				t.Errorf("Expected direction %v, got %v", tc.wantDirection, direction)
			}
			if sentiment != tc.wantSentiment {
				t.Errorf("Expected sentiment %v, got %v", tc.wantSentiment, sentiment)
			}
		})
	}
}
