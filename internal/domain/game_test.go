package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGameStartsWithPlayer1(t *testing.T) {
	g := NewGame()

	assert.Equal(t, Player1, g.CurrentPlayer)
	assert.Equal(t, StatusActive, g.Status)
	assert.Equal(t, Empty, g.Winner)
	assert.Equal(t, 0, g.MoveCount)
	assert.False(t, g.IsFinished())
}

func TestMakeMoveAlternatesTurns(t *testing.T) {
	g := NewGame()

	row, err := g.MakeMove(Player1, 3)
	require.NoError(t, err)
	assert.Equal(t, Rows-1, row)
	assert.Equal(t, Player2, g.CurrentPlayer)
	assert.Equal(t, 1, g.MoveCount)

	row, err = g.MakeMove(Player2, 3)
	require.NoError(t, err)
	assert.Equal(t, Rows-2, row)
	assert.Equal(t, Player1, g.CurrentPlayer)
}

func TestMakeMoveOutOfTurn(t *testing.T) {
	g := NewGame()

	_, err := g.MakeMove(Player2, 0)
	assert.ErrorIs(t, err, ErrNotYourTurn)
	assert.Equal(t, 0, g.MoveCount)
}

func TestMakeMoveInvalidColumn(t *testing.T) {
	g := NewGame()

	_, err := g.MakeMove(Player1, -1)
	assert.ErrorIs(t, err, ErrInvalidColumn)

	_, err = g.MakeMove(Player1, Columns)
	assert.ErrorIs(t, err, ErrInvalidColumn)
}

func TestMakeMoveColumnFull(t *testing.T) {
	g := NewGame()

	// alternating colors can never connect four in one column
	for i := 0; i < Rows; i++ {
		_, err := g.MakeMove(g.CurrentPlayer, 0)
		require.NoError(t, err)
	}

	_, err := g.MakeMove(g.CurrentPlayer, 0)
	assert.ErrorIs(t, err, ErrColumnFull)
}

func TestVerticalWinEndsGame(t *testing.T) {
	g := NewGame()

	// P1 stacks column 0, P2 stacks column 1
	for i := 0; i < 3; i++ {
		_, err := g.MakeMove(Player1, 0)
		require.NoError(t, err)
		_, err = g.MakeMove(Player2, 1)
		require.NoError(t, err)
	}
	_, err := g.MakeMove(Player1, 0)
	require.NoError(t, err)

	assert.Equal(t, StatusWon, g.Status)
	assert.Equal(t, Player1, g.Winner)
	assert.True(t, g.IsFinished())

	_, err = g.MakeMove(Player2, 1)
	assert.ErrorIs(t, err, ErrGameFinished)
}

func TestHorizontalWinEndsGame(t *testing.T) {
	g := NewGame()

	for col := 0; col < 3; col++ {
		_, err := g.MakeMove(Player1, col)
		require.NoError(t, err)
		_, err = g.MakeMove(Player2, col)
		require.NoError(t, err)
	}
	_, err := g.MakeMove(Player1, 3)
	require.NoError(t, err)

	assert.Equal(t, StatusWon, g.Status)
	assert.Equal(t, Player1, g.Winner)
}
