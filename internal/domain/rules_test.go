package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boardFromRows builds a board from a top-to-bottom textual layout where
// '.' is empty, 'A' is Player1 and 'B' is Player2.
func boardFromRows(t *testing.T, rows []string) [][]PlayerID {
	t.Helper()
	require.Len(t, rows, Rows)

	board := NewBoard()
	for r, line := range rows {
		require.Len(t, line, Columns)
		for c, ch := range line {
			switch ch {
			case 'A':
				board[r][c] = Player1
			case 'B':
				board[r][c] = Player2
			}
		}
	}
	return board
}

func mirrorBoard(board [][]PlayerID) [][]PlayerID {
	mirrored := NewBoardSize(len(board), len(board[0]))
	for r := range board {
		for c := range board[r] {
			mirrored[r][len(board[r])-1-c] = board[r][c]
		}
	}
	return mirrored
}

func swapPlayers(board [][]PlayerID) [][]PlayerID {
	swapped := CopyBoard(board)
	for r := range swapped {
		for c := range swapped[r] {
			swapped[r][c] = Opponent(swapped[r][c])
		}
	}
	return swapped
}

func TestHasFourInARowHorizontal(t *testing.T) {
	board := boardFromRows(t, []string{
		".......",
		".......",
		".......",
		".......",
		".......",
		".AAAA..",
	})
	assert.True(t, HasFourInARow(board, Player1))
	assert.False(t, HasFourInARow(board, Player2))
}

func TestHasFourInARowVertical(t *testing.T) {
	board := boardFromRows(t, []string{
		".......",
		".......",
		"......B",
		"......B",
		"......B",
		"......B",
	})
	assert.True(t, HasFourInARow(board, Player2))
	assert.False(t, HasFourInARow(board, Player1))
}

func TestHasFourInARowDiagonals(t *testing.T) {
	downRight := boardFromRows(t, []string{
		".......",
		".......",
		"A......",
		"BA.....",
		"BBA....",
		"BBBA...",
	})
	assert.True(t, HasFourInARow(downRight, Player1))

	upRight := boardFromRows(t, []string{
		".......",
		".......",
		"...B...",
		"..BA...",
		".BAA...",
		"BAAA...",
	})
	assert.True(t, HasFourInARow(upRight, Player2))
}

func TestHasFourInARowNegative(t *testing.T) {
	board := boardFromRows(t, []string{
		".......",
		".......",
		".......",
		".......",
		"...B...",
		"AAABAA.",
	})
	assert.False(t, HasFourInARow(board, Player1))
	assert.False(t, HasFourInARow(board, Player2))
}

// The detector must be invariant under mirroring the column order and
// under swapping the two players' disks.
func TestHasFourInARowSymmetries(t *testing.T) {
	boards := [][]string{
		{
			".......",
			".......",
			".......",
			".......",
			".......",
			"AAAA...",
		},
		{
			".......",
			".......",
			"A......",
			"BA.....",
			"BBA....",
			"BBBAAA.",
		},
		{
			".......",
			".......",
			".......",
			"...A...",
			"...A...",
			"BBBA...",
		},
	}

	for _, layout := range boards {
		board := boardFromRows(t, layout)
		for _, player := range []PlayerID{Player1, Player2} {
			got := HasFourInARow(board, player)
			assert.Equal(t, got, HasFourInARow(mirrorBoard(board), player))
			assert.Equal(t, got, HasFourInARow(swapPlayers(board), Opponent(player)))
		}
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, IsTerminal(NewBoard()))

	win := boardFromRows(t, []string{
		".......",
		".......",
		".......",
		".......",
		".......",
		"..AAAA.",
	})
	assert.True(t, IsTerminal(win))

	// both players connected at once: representable, still just terminal
	double := boardFromRows(t, []string{
		".......",
		".......",
		"A.....B",
		"A.....B",
		"A.....B",
		"A.....B",
	})
	assert.True(t, IsTerminal(double))
	assert.True(t, HasFourInARow(double, Player1))
	assert.True(t, HasFourInARow(double, Player2))
}

func TestIsTerminalFullBoardDraw(t *testing.T) {
	// full board with no four in a row anywhere
	board := boardFromRows(t, []string{
		"BABBABA",
		"ABAAABB",
		"BABBBAA",
		"ABBAAAB",
		"BAAABBB",
		"BABBAAA",
	})
	require.True(t, IsFull(board))
	assert.False(t, HasFourInARow(board, Player1))
	assert.False(t, HasFourInARow(board, Player2))
	assert.True(t, IsTerminal(board))
}
