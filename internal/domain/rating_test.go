package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdatedRatingEqualOpponents(t *testing.T) {
	// even matchup transfers half the K factor
	assert.Equal(t, 1016, UpdatedRating(1000, 1000, 1))
	assert.Equal(t, 984, UpdatedRating(1000, 1000, 0))
	assert.Equal(t, 1000, UpdatedRating(1000, 1000, 0.5))
}

func TestUpdatedRatingUpsets(t *testing.T) {
	underdogWin := UpdatedRating(1000, 1400, 1)
	favoriteWin := UpdatedRating(1400, 1000, 1)

	assert.Greater(t, underdogWin-1000, favoriteWin-1400,
		"beating a stronger opponent should pay more")

	favoriteLoss := UpdatedRating(1400, 1000, 0)
	underdogLoss := UpdatedRating(1000, 1400, 0)
	assert.Less(t, favoriteLoss-1400, underdogLoss-1000,
		"losing to a weaker opponent should cost more")
}

func TestUpdatedRatingNeverNegative(t *testing.T) {
	assert.GreaterOrEqual(t, UpdatedRating(5, 2000, 0), 0)
}
