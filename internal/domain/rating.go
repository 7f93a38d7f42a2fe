package domain

import "math"

const kFactor = 32.0

// UpdatedRating returns the new Elo rating for a player. score is 1.0
// for a win, 0.5 for a draw and 0.0 for a loss. Ratings never go below
// zero.
func UpdatedRating(rating, opponentRating int, score float64) int {
	expected := 1.0 / (1.0 + math.Pow(10.0, float64(opponentRating-rating)/400.0))
	updated := float64(rating) + kFactor*(score-expected)
	if updated < 0 {
		return 0
	}
	return int(updated)
}
