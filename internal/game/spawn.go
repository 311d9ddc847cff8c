package game

import (
	"math/rand"
	"time"
)

// Spawn timing helpers. All functions are pure: randomness comes from the
// caller's seeded source and no state is kept here. After acting on a true
// due() result the caller must reseed its last-fire timestamp to now, or the
// same frame will spawn again.

// due reports whether a time-gated event should fire. Strictly greater:
// an elapsed time exactly equal to the interval is not yet due.
func due(now, last time.Time, interval time.Duration) bool {
	return now.Sub(last) > interval
}

// gapStart returns a uniformly random vertical offset for an obstacle gap
// such that both barriers keep at least minMargin of body.
func gapStart(rng *rand.Rand, playfieldH, gapSize, minMargin float64) float64 {
	span := playfieldH - gapSize - 2*minMargin
	if span <= 0 {
		return minMargin
	}
	return minMargin + rng.Float64()*span
}

// bandY returns a uniformly random vertical position between the top and
// bottom margins, used to keep power-ups away from the playfield extremes.
func bandY(rng *rand.Rand, height, topMargin, bottomMargin float64) float64 {
	span := height - topMargin - bottomMargin
	if span <= 0 {
		return topMargin
	}
	return topMargin + rng.Float64()*span
}

// overflowX returns a random horizontal position in [-overflow, width),
// letting particles start slightly off-screen for a natural inflow.
func overflowX(rng *rand.Rand, width, overflow float64) float64 {
	return -overflow + rng.Float64()*(width+overflow)
}

// pick returns a uniformly random element of items.
func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}
