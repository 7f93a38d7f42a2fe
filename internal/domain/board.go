package domain

// NewBoard returns an empty board with the standard dimensions.
func NewBoard() [][]PlayerID {
	return NewBoardSize(Rows, Columns)
}

// NewBoardSize returns an empty board of the given dimensions. Only the
// standard 6x7 size is exercised, but the helpers below all derive their
// bounds from the slice so other sizes keep working.
func NewBoardSize(rows, cols int) [][]PlayerID {
	board := make([][]PlayerID, rows)
	for i := range board {
		board[i] = make([]PlayerID, cols)
	}
	return board
}

// IsValidColumn reports whether a disk can be dropped in the column.
// board[0] is the top row (0 -> top, Rows-1 -> bottom).
func IsValidColumn(board [][]PlayerID, column int) bool {
	if column < 0 || column >= len(board[0]) {
		return false
	}
	return board[0][column] == Empty
}

// NextOpenRow returns the lowest empty row in the column. The second
// return value is false when the column is full or out of range.
func NextOpenRow(board [][]PlayerID, column int) (int, bool) {
	if column < 0 || column >= len(board[0]) {
		return -1, false
	}
	for row := len(board) - 1; row >= 0; row-- {
		if board[row][column] == Empty {
			return row, true
		}
	}
	return -1, false
}

// Place writes a single cell. The caller must have validated the move
// (row from NextOpenRow on a valid column); Place itself does not
// re-check legality.
func Place(board [][]PlayerID, row, column int, player PlayerID) {
	board[row][column] = player
}

// Drop finds the open row in the column and places the disk there,
// returning the row it landed in. This is the validating mutation path;
// illegal drops fail with a domain error instead of touching the board.
func Drop(board [][]PlayerID, column int, player PlayerID) (int, error) {
	if column < 0 || column >= len(board[0]) {
		return -1, ErrInvalidColumn
	}
	row, ok := NextOpenRow(board, column)
	if !ok {
		return -1, ErrColumnFull
	}
	Place(board, row, column, player)
	return row, nil
}

// IsFull reports whether every column is filled to the top.
func IsFull(board [][]PlayerID) bool {
	for c := 0; c < len(board[0]); c++ {
		if board[0][c] == Empty {
			return false
		}
	}
	return true
}

// LegalColumns returns all columns that can accept a disk, in ascending
// order. The order matters: the search engine visits columns in this
// order and keeps the first best one on ties.
func LegalColumns(board [][]PlayerID) []int {
	legal := []int{}
	for col := 0; col < len(board[0]); col++ {
		if IsValidColumn(board, col) {
			legal = append(legal, col)
		}
	}
	return legal
}

// CopyBoard creates a deep copy of the board.
func CopyBoard(board [][]PlayerID) [][]PlayerID {
	newBoard := make([][]PlayerID, len(board))
	for i := range board {
		newBoard[i] = make([]PlayerID, len(board[i]))
		copy(newBoard[i], board[i])
	}
	return newBoard
}

// SimulateMove drops a disk on a copy of the board and returns the copy
// and the landing row. The original board is never touched.
func SimulateMove(board [][]PlayerID, column int, player PlayerID) ([][]PlayerID, int, error) {
	newBoard := CopyBoard(board)
	row, err := Drop(newBoard, column, player)
	if err != nil {
		return nil, -1, err
	}
	return newBoard, row, nil
}
