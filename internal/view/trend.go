package view

// Direction is a trend arrow.
type Direction int

const (
	// Flat means equal values or no previous value; no arrow is drawn.
	Flat Direction = iota
	// Up means the current value exceeds the previous.
	Up
	// Down means the current value is below the previous.
	Down
)

// Sentiment colors a trend arrow by combining its direction with the
// metric's polarity (rent up is good, delinquency up is bad).
type Sentiment int

const (
	// Neutral accompanies Flat.
	Neutral Sentiment = iota
	// Good renders green.
	Good
	// Bad renders red.
	Bad
)

// Trend derives the arrow for a metric from its current and previous values.
// previous is nil when no comparison period is available, which yields no
// arrow. Pure and deterministic.
func Trend(current float64, previous *float64, higherIsBetter bool) (Direction, Sentiment) {
	if previous == nil || current == *previous {
		return Flat, Neutral
	}

	direction := Up
	if current < *previous {
		direction = Down
	}

	favorable := (direction == Up) == higherIsBetter
	if favorable {
		return direction, Good
	}
	return direction, Bad
}
