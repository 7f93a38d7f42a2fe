package domain

// HasFourInARow reports whether the player has four consecutive disks
// anywhere on the board. All four alignment families are scanned:
// horizontal, vertical and both diagonal directions.
func HasFourInARow(board [][]PlayerID, player PlayerID) bool {
	rows := len(board)
	cols := len(board[0])

	// horizontal
	for r := 0; r < rows; r++ {
		for c := 0; c <= cols-ToWin; c++ {
			if allEqual(board, r, c, 0, 1, player) {
				return true
			}
		}
	}

	// vertical
	for c := 0; c < cols; c++ {
		for r := 0; r <= rows-ToWin; r++ {
			if allEqual(board, r, c, 1, 0, player) {
				return true
			}
		}
	}

	// diagonal down-right
	for r := 0; r <= rows-ToWin; r++ {
		for c := 0; c <= cols-ToWin; c++ {
			if allEqual(board, r, c, 1, 1, player) {
				return true
			}
		}
	}

	// diagonal up-right
	for r := ToWin - 1; r < rows; r++ {
		for c := 0; c <= cols-ToWin; c++ {
			if allEqual(board, r, c, -1, 1, player) {
				return true
			}
		}
	}

	return false
}

func allEqual(board [][]PlayerID, row, col, deltaRow, deltaCol int, player PlayerID) bool {
	for i := 0; i < ToWin; i++ {
		if board[row+i*deltaRow][col+i*deltaCol] != player {
			return false
		}
	}
	return true
}

// IsTerminal reports whether the position is over: either player has
// connected four, or the board is full. A board where both players have
// four in a row is still just terminal.
func IsTerminal(board [][]PlayerID) bool {
	return HasFourInARow(board, Player1) || HasFourInARow(board, Player2) || IsFull(board)
}
