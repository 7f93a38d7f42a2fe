package bot

import (
	"math/rand"
	"time"

	"connectfour/internal/domain"
)

// Engine computes moves for one side. It holds no board state; every
// call borrows the caller's board and explores copies of it.
type Engine struct {
	player   domain.PlayerID
	opponent domain.PlayerID
	rng      *rand.Rand
}

// NewEngine creates an engine playing as the given side. A nil rng gets
// a time-seeded source; tests pass a fixed seed for reproducible
// tie-breaks.
func NewEngine(player domain.PlayerID, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		player:   player,
		opponent: domain.Opponent(player),
		rng:      rng,
	}
}

// Player returns the side the engine plays.
func (e *Engine) Player() domain.PlayerID {
	return e.player
}

// DecideMove returns the column to play, searching the given number of
// plies ahead. Calling it on a full board is a contract violation and
// reported as ErrNoLegalMoves; if the search yields no column (depth 0,
// or a board that is already terminal) a random legal column is played
// instead.
func (e *Engine) DecideMove(board [][]domain.PlayerID, depth int) (int, error) {
	legal := domain.LegalColumns(board)
	if len(legal) == 0 {
		return -1, domain.ErrNoLegalMoves
	}

	col, _ := e.minimax(board, depth, true)
	if col < 0 {
		return legal[e.rng.Intn(len(legal))], nil
	}
	return col, nil
}
