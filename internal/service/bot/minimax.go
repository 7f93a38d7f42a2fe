package bot

import (
	"math"

	"connectfour/internal/domain"
)

// Leaf sentinels. A guaranteed win or loss dominates every heuristic
// score, which is bounded by a few hundred thousand.
const (
	WinScore  = math.MaxInt32
	LossScore = math.MinInt32
	DrawScore = 0
)

// minimax runs a depth-limited search from the engine player's
// perspective and returns the chosen column and its score. The column is
// -1 at leaves (terminal position or exhausted depth).
//
// Columns are visited in ascending order and only a strictly better
// child replaces the current best, so the first best column wins ties.
// The initial best is drawn from the injected random source; it only
// survives when no child improves on the sentinel (every move loses, or
// every move wins for the minimizer).
func (e *Engine) minimax(board [][]domain.PlayerID, depth int, maximizing bool) (int, int) {
	legal := domain.LegalColumns(board)
	terminal := domain.IsTerminal(board)

	if depth == 0 || terminal {
		if terminal {
			if domain.HasFourInARow(board, e.player) {
				return -1, WinScore
			}
			if domain.HasFourInARow(board, e.opponent) {
				return -1, LossScore
			}
			return -1, DrawScore
		}
		return -1, ScorePosition(board, e.player)
	}

	if maximizing {
		value := LossScore
		best := legal[e.rng.Intn(len(legal))]
		for _, col := range legal {
			child, _, err := domain.SimulateMove(board, col, e.player)
			if err != nil {
				continue
			}
			_, score := e.minimax(child, depth-1, false)
			if score > value {
				value = score
				best = col
			}
		}
		return best, value
	}

	value := WinScore
	best := legal[e.rng.Intn(len(legal))]
	for _, col := range legal {
		child, _, err := domain.SimulateMove(board, col, e.opponent)
		if err != nil {
			continue
		}
		_, score := e.minimax(child, depth-1, true)
		if score < value {
			value = score
			best = col
		}
	}
	return best, value
}
