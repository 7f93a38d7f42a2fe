package bot

import (
	"connectfour/internal/domain"
)

// Search depths per difficulty. Medium matches the depth the original
// demo played at; hard looks two plies further.
const (
	MediumDepth = 3
	HardDepth   = 5
)

// MoveForDifficulty selects the bot's move based on difficulty.
func (e *Engine) MoveForDifficulty(board [][]domain.PlayerID, difficulty string) (int, error) {
	switch difficulty {
	case "easy":
		return e.easyMove(board)
	case "hard":
		return e.DecideMove(board, HardDepth)
	default:
		return e.DecideMove(board, MediumDepth)
	}
}

// easyMove takes an immediate win if one exists, blocks an immediate
// opponent win, and otherwise plays a random legal column.
func (e *Engine) easyMove(board [][]domain.PlayerID) (int, error) {
	legal := domain.LegalColumns(board)
	if len(legal) == 0 {
		return -1, domain.ErrNoLegalMoves
	}

	for _, col := range legal {
		child, _, err := domain.SimulateMove(board, col, e.player)
		if err == nil && domain.HasFourInARow(child, e.player) {
			return col, nil
		}
	}

	for _, col := range legal {
		child, _, err := domain.SimulateMove(board, col, e.opponent)
		if err == nil && domain.HasFourInARow(child, e.opponent) {
			return col, nil
		}
	}

	return legal[e.rng.Intn(len(legal))], nil
}
