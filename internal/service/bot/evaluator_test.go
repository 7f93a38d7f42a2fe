package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"connectfour/internal/domain"
)

func window(cells ...domain.PlayerID) []domain.PlayerID {
	return cells
}

func TestScoreWindowTable(t *testing.T) {
	const (
		E = domain.Empty
		A = domain.Player1
		B = domain.Player2
	)

	cases := []struct {
		name   string
		window []domain.PlayerID
		player domain.PlayerID
		want   int
	}{
		{"four of player", window(A, A, A, A), A, 100000},
		{"three plus empty", window(A, A, A, E), A, 100},
		{"two plus two empty", window(A, E, A, E), A, 10},
		{"four of opponent", window(B, B, B, B), A, -100000},
		{"opponent three plus empty", window(B, E, B, B), A, -120},
		{"opponent two plus two empty", window(E, B, E, B), A, -12},
		{"mixed window scores zero", window(A, B, E, E), A, 0},
		{"contested window scores zero", window(A, A, B, B), A, 0},
		{"all empty", window(E, E, E, E), A, 0},
		{"same table from other side", window(A, A, A, E), B, -120},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, scoreWindow(tc.window, tc.player))
		})
	}
}

func TestScorePositionCenterBonus(t *testing.T) {
	board := domain.NewBoard()
	center := domain.Columns / 2

	board[domain.Rows-1][center] = domain.Player1
	board[domain.Rows-2][center] = domain.Player1

	// two own disks in the center column: +6 each, every window containing
	// them holds two of player and two empties, so windows add up too
	scoreA := ScorePosition(board, domain.Player1)
	assert.Greater(t, scoreA, 12)

	// the bonus is asymmetric: the opponent perspective gets no center
	// reward and sees the disks purely as threats
	scoreB := ScorePosition(board, domain.Player2)
	assert.Less(t, scoreB, 0)
}

func TestScorePositionEmptyBoard(t *testing.T) {
	board := domain.NewBoard()
	assert.Zero(t, ScorePosition(board, domain.Player1))
	assert.Zero(t, ScorePosition(board, domain.Player2))
}

func TestScorePositionPrefersCenterOverEdge(t *testing.T) {
	centerBoard := domain.NewBoard()
	centerBoard[domain.Rows-1][domain.Columns/2] = domain.Player1

	edgeBoard := domain.NewBoard()
	edgeBoard[domain.Rows-1][0] = domain.Player1

	assert.Greater(t,
		ScorePosition(centerBoard, domain.Player1),
		ScorePosition(edgeBoard, domain.Player1))
}
