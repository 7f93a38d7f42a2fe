package bot

import (
	"connectfour/internal/domain"
)

// Window scoring weights. Opponent threats are weighted slightly higher
// than the symmetric values so the heuristic leans toward blocking.
const (
	winWindowScore   = 100000
	threeOpenScore   = 100
	twoOpenScore     = 10
	oppWinWindow     = -100000
	oppThreeOpen     = -120
	oppTwoOpen       = -12
	centerPieceBonus = 6
)

// scoreWindow rates a single 4-cell slice from the player's perspective.
// Windows containing disks of both players score zero.
func scoreWindow(window []domain.PlayerID, player domain.PlayerID) int {
	opponent := domain.Opponent(player)

	var countSelf, countOpp, countEmpty int
	for _, cell := range window {
		switch cell {
		case player:
			countSelf++
		case opponent:
			countOpp++
		case domain.Empty:
			countEmpty++
		}
	}

	score := 0
	switch {
	case countSelf == 4:
		score += winWindowScore
	case countSelf == 3 && countEmpty == 1:
		score += threeOpenScore
	case countSelf == 2 && countEmpty == 2:
		score += twoOpenScore
	}

	switch {
	case countOpp == 4:
		score += oppWinWindow
	case countOpp == 3 && countEmpty == 1:
		score += oppThreeOpen
	case countOpp == 2 && countEmpty == 2:
		score += oppTwoOpen
	}

	return score
}

// ScorePosition sums scoreWindow over every horizontal, vertical and
// diagonal 4-cell window, plus a center-control bonus of +6 per own disk
// in the middle column. The bonus is asymmetric: opponent disks in the
// center are not penalised.
func ScorePosition(board [][]domain.PlayerID, player domain.PlayerID) int {
	rows := len(board)
	cols := len(board[0])
	score := 0

	center := cols / 2
	for r := 0; r < rows; r++ {
		if board[r][center] == player {
			score += centerPieceBonus
		}
	}

	window := make([]domain.PlayerID, domain.ToWin)

	// horizontal
	for r := 0; r < rows; r++ {
		for c := 0; c <= cols-domain.ToWin; c++ {
			for i := 0; i < domain.ToWin; i++ {
				window[i] = board[r][c+i]
			}
			score += scoreWindow(window, player)
		}
	}

	// vertical
	for c := 0; c < cols; c++ {
		for r := 0; r <= rows-domain.ToWin; r++ {
			for i := 0; i < domain.ToWin; i++ {
				window[i] = board[r+i][c]
			}
			score += scoreWindow(window, player)
		}
	}

	// diagonal down-right
	for r := 0; r <= rows-domain.ToWin; r++ {
		for c := 0; c <= cols-domain.ToWin; c++ {
			for i := 0; i < domain.ToWin; i++ {
				window[i] = board[r+i][c+i]
			}
			score += scoreWindow(window, player)
		}
	}

	// diagonal up-right
	for r := domain.ToWin - 1; r < rows; r++ {
		for c := 0; c <= cols-domain.ToWin; c++ {
			for i := 0; i < domain.ToWin; i++ {
				window[i] = board[r-i][c+i]
			}
			score += scoreWindow(window, player)
		}
	}

	return score
}
