// Package rating implements the Elo paired-comparison rating update.
package rating

import "math"

// Elo constants.
const (
	// KFactor bounds how far a single result can move a rating.
	KFactor = 32
	// Spread is the rating difference at which the stronger side is
	// expected to win ten times as often.
	Spread = 400
)

// Update holds both ratings after one outcome.
type Update struct {
	Winner int `json:"winner"`
	Loser  int `json:"loser"`
}

// Expected returns the expected score of a against b, in (0, 1).
// Expected(a, b) + Expected(b, a) == 1.
func Expected(a, b float64) float64 {
	return 1 / (1 + math.Pow(10, (b-a)/Spread))
}

// ComputeUpdateFloat applies one outcome to real-valued ratings without rounding.
func ComputeUpdateFloat(winner, loser float64) (float64, float64) {
	ew := Expected(winner, loser)
	el := Expected(loser, winner)
	return winner + KFactor*(1-ew), loser + KFactor*(0-el)
}

// ComputeUpdate applies one outcome and rounds half up to whole ratings.
// It is pure: same inputs, same outputs.
func ComputeUpdate(winner, loser int) Update {
	w, l := ComputeUpdateFloat(float64(winner), float64(loser))
	return Update{Winner: roundHalfUp(w), Loser: roundHalfUp(l)}
}

// roundHalfUp rounds x.5 toward +Inf, so -0.5 becomes 0.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}
