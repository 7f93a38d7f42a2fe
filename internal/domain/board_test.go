package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoardIsEmpty(t *testing.T) {
	board := NewBoard()
	require.Len(t, board, Rows)
	for r := range board {
		require.Len(t, board[r], Columns)
		for c := range board[r] {
			assert.Equal(t, Empty, board[r][c])
		}
	}
}

func TestIsValidColumnMatchesNextOpenRow(t *testing.T) {
	board := NewBoard()

	// fill column 2 completely
	for i := 0; i < Rows; i++ {
		_, err := Drop(board, 2, Player1)
		require.NoError(t, err)
	}

	for col := -2; col < Columns+2; col++ {
		_, ok := NextOpenRow(board, col)
		inRange := col >= 0 && col < Columns
		assert.Equal(t, inRange && ok, IsValidColumn(board, col), "column %d", col)
	}
}

func TestDropRespectsGravity(t *testing.T) {
	board := NewBoard()

	moves := []struct {
		col    int
		player PlayerID
	}{
		{3, Player1}, {3, Player2}, {0, Player1}, {3, Player1}, {6, Player2},
	}
	for _, m := range moves {
		_, err := Drop(board, m.col, m.player)
		require.NoError(t, err)
	}

	// occupied cells in every column must be contiguous from the bottom
	for c := 0; c < Columns; c++ {
		seenEmpty := false
		for r := Rows - 1; r >= 0; r-- {
			if board[r][c] == Empty {
				seenEmpty = true
			} else {
				assert.False(t, seenEmpty, "floating piece in column %d", c)
			}
		}
	}

	assert.Equal(t, Player1, board[Rows-1][3])
	assert.Equal(t, Player2, board[Rows-2][3])
	assert.Equal(t, Player1, board[Rows-3][3])
}

func TestDropErrors(t *testing.T) {
	board := NewBoard()

	_, err := Drop(board, -1, Player1)
	assert.ErrorIs(t, err, ErrInvalidColumn)

	_, err = Drop(board, Columns, Player1)
	assert.ErrorIs(t, err, ErrInvalidColumn)

	for i := 0; i < Rows; i++ {
		_, err := Drop(board, 4, Player1)
		require.NoError(t, err)
	}
	_, err = Drop(board, 4, Player2)
	assert.ErrorIs(t, err, ErrColumnFull)
}

func TestLegalColumnsAscending(t *testing.T) {
	board := NewBoard()
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6}, LegalColumns(board))

	for i := 0; i < Rows; i++ {
		_, err := Drop(board, 1, Player1)
		require.NoError(t, err)
		_, err = Drop(board, 5, Player2)
		require.NoError(t, err)
	}
	assert.Equal(t, []int{0, 2, 3, 4, 6}, LegalColumns(board))
}

func TestIsFull(t *testing.T) {
	board := NewBoard()
	assert.False(t, IsFull(board))

	player := Player1
	for c := 0; c < Columns; c++ {
		for r := 0; r < Rows; r++ {
			_, err := Drop(board, c, player)
			require.NoError(t, err)
			player = Opponent(player)
		}
	}
	assert.True(t, IsFull(board))
	assert.Empty(t, LegalColumns(board))
}

func TestSimulateMoveDoesNotTouchOriginal(t *testing.T) {
	board := NewBoard()
	_, err := Drop(board, 3, Player1)
	require.NoError(t, err)

	snapshot := CopyBoard(board)

	child, row, err := SimulateMove(board, 3, Player2)
	require.NoError(t, err)
	assert.Equal(t, Rows-2, row)
	assert.Equal(t, Player2, child[Rows-2][3])
	assert.Equal(t, snapshot, board)
}
