package bot

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"connectfour/internal/domain"
)

func seededEngine(player domain.PlayerID, seed int64) *Engine {
	return NewEngine(player, rand.New(rand.NewSource(seed)))
}

func fillColumn(t *testing.T, board [][]domain.PlayerID, col int, player domain.PlayerID) {
	t.Helper()
	for {
		if _, err := domain.Drop(board, col, player); err != nil {
			return
		}
	}
}

func TestDecideMoveEmptyBoardClaimsCenter(t *testing.T) {
	// with no threats on the board the center-control bonus is the only
	// signal, so depth 3 always picks the middle column
	for seed := int64(0); seed < 10; seed++ {
		engine := seededEngine(domain.Player2, seed)
		col, err := engine.DecideMove(domain.NewBoard(), 3)
		require.NoError(t, err)
		assert.Equal(t, domain.Columns/2, col)
	}
}

func TestDecideMoveCompletesOwnFour(t *testing.T) {
	board := domain.NewBoard()
	for _, c := range []int{1, 2, 3} {
		_, err := domain.Drop(board, c, domain.Player2)
		require.NoError(t, err)
	}
	// right end closed off, only column 0 completes the four
	_, err := domain.Drop(board, 4, domain.Player1)
	require.NoError(t, err)

	engine := seededEngine(domain.Player2, 7)
	col, err := engine.DecideMove(board, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, col)

	// the winning line is confirmed as a guaranteed win, not a heuristic
	_, score := engine.minimax(board, 1, true)
	assert.Equal(t, WinScore, score)
}

func TestDecideMoveBlocksOpponentThree(t *testing.T) {
	board := domain.NewBoard()
	for _, c := range []int{2, 3, 4} {
		_, err := domain.Drop(board, c, domain.Player1)
		require.NoError(t, err)
	}
	// one end already blocked by the bot's own disk
	_, err := domain.Drop(board, 5, domain.Player2)
	require.NoError(t, err)

	for _, depth := range []int{1, 2, 3} {
		engine := seededEngine(domain.Player2, 99)
		col, err := engine.DecideMove(board, depth)
		require.NoError(t, err)
		assert.Equal(t, 1, col, "depth %d", depth)
	}
}

func TestDecideMoveDeterministicWithFixedSeed(t *testing.T) {
	board := domain.NewBoard()
	_, err := domain.Drop(board, 2, domain.Player1)
	require.NoError(t, err)

	first, err := seededEngine(domain.Player2, 42).DecideMove(board, 4)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		col, err := seededEngine(domain.Player2, 42).DecideMove(board, 4)
		require.NoError(t, err)
		assert.Equal(t, first, col)
	}
}

func TestDecideMoveFullBoard(t *testing.T) {
	board := domain.NewBoard()
	player := domain.Player1
	for c := 0; c < domain.Columns; c++ {
		fillColumn(t, board, c, player)
		player = domain.Opponent(player)
	}
	require.True(t, domain.IsFull(board))

	engine := seededEngine(domain.Player2, 1)
	_, err := engine.DecideMove(board, 3)
	assert.ErrorIs(t, err, domain.ErrNoLegalMoves)
}

func TestDecideMoveDepthZeroFallsBackToLegalColumn(t *testing.T) {
	board := domain.NewBoard()
	fillColumn(t, board, 0, domain.Player1)

	engine := seededEngine(domain.Player2, 5)
	col, err := engine.DecideMove(board, 0)
	require.NoError(t, err)
	assert.True(t, domain.IsValidColumn(board, col))
}

func TestEasyMoveTakesWinAndBlocks(t *testing.T) {
	engine := seededEngine(domain.Player2, 3)

	win := domain.NewBoard()
	for _, c := range []int{0, 1, 2} {
		_, err := domain.Drop(win, c, domain.Player2)
		require.NoError(t, err)
	}
	col, err := engine.easyMove(win)
	require.NoError(t, err)
	assert.Equal(t, 3, col)

	block := domain.NewBoard()
	for i := 0; i < 3; i++ {
		_, err := domain.Drop(block, 6, domain.Player1)
		require.NoError(t, err)
	}
	col, err = engine.easyMove(block)
	require.NoError(t, err)
	assert.Equal(t, 6, col)
}

func TestMoveForDifficultyDispatch(t *testing.T) {
	board := domain.NewBoard()
	for _, difficulty := range []string{"easy", "medium", "hard", "unknown"} {
		engine := seededEngine(domain.Player2, 11)
		col, err := engine.MoveForDifficulty(board, difficulty)
		require.NoError(t, err)
		assert.True(t, domain.IsValidColumn(board, col), "difficulty %s", difficulty)
	}
}
